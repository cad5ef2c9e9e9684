package book

import "encoding/binary"

// Swap16 reverses the byte order of x.
func Swap16(x uint16) uint16 {
	return x>>8 | x<<8
}

// Swap32 reverses the byte order of x.
func Swap32(x uint32) uint32 {
	return x>>24 |
		(x<<8)&0x00ff0000 |
		(x>>8)&0x0000ff00 |
		x<<24
}

// Swap64 reverses the byte order of x.
func Swap64(x uint64) uint64 {
	return x>>56 |
		(x<<40)&0x00ff000000000000 |
		(x<<24)&0x0000ff0000000000 |
		(x<<8)&0x000000ff00000000 |
		(x>>8)&0x00000000ff000000 |
		(x>>24)&0x0000000000ff0000 |
		(x>>40)&0x000000000000ff00 |
		x<<56
}

// hostBigEndian reports whether values read in native order already match
// the on-disk layout.
var hostBigEndian = binary.NativeEndian.Uint16([]byte{0x00, 0x01}) == 0x0001

func fromBig16(x uint16) uint16 {
	if hostBigEndian {
		return x
	}
	return Swap16(x)
}

func fromBig32(x uint32) uint32 {
	if hostBigEndian {
		return x
	}
	return Swap32(x)
}

func fromBig64(x uint64) uint64 {
	if hostBigEndian {
		return x
	}
	return Swap64(x)
}
