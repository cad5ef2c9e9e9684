package book

import (
	"encoding/binary"
	"sort"
)

// record fields as they sit in memory; callers normalize with fromBig*.
func rawKey(buf []byte, i int) uint64 {
	return binary.NativeEndian.Uint64(buf[i*RecordSize:])
}

func rawMove(buf []byte, i int) uint16 {
	return binary.NativeEndian.Uint16(buf[i*RecordSize+8:])
}

func rawWeight(buf []byte, i int) uint16 {
	return binary.NativeEndian.Uint16(buf[i*RecordSize+10:])
}

func rawLearn(buf []byte, i int) uint32 {
	return binary.NativeEndian.Uint32(buf[i*RecordSize+12:])
}

func keyAt(buf []byte, i int) uint64 {
	return fromBig64(rawKey(buf, i))
}

func sortedByKey(buf []byte) bool {
	n := len(buf) / RecordSize
	for i := 1; i < n; i++ {
		if keyAt(buf, i-1) > keyAt(buf, i) {
			return false
		}
	}
	return true
}

// Moves returns the decoded moves of every record whose key equals key and
// whose weight is at least minWeight, in file order.
func (b *Book) Moves(key uint64, minWeight uint16) []Move {
	var out []Move
	b.scan(key, minWeight, func(i int, _ uint16) {
		out = append(out, DecodeMove(fromBig16(rawMove(b.buf, i))))
	})
	if out == nil {
		return []Move{}
	}
	return out
}

// Entries is Moves with the weight and learn value of each record.
func (b *Book) Entries(key uint64, minWeight uint16) []Entry {
	var out []Entry
	b.scan(key, minWeight, func(i int, weight uint16) {
		out = append(out, Entry{
			Move:   DecodeMove(fromBig16(rawMove(b.buf, i))),
			Weight: weight,
			Learn:  fromBig32(rawLearn(b.buf, i)),
		})
	})
	if out == nil {
		return []Entry{}
	}
	return out
}

// scan calls fn for each matching record index in file order. Books sorted by
// key are searched with a binary search; anything else is scanned linearly.
func (b *Book) scan(key uint64, minWeight uint16, fn func(i int, weight uint16)) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	start, end := 0, b.count
	if b.sorted {
		start = sort.Search(b.count, func(i int) bool {
			return keyAt(b.buf, i) >= key
		})
	}
	for i := start; i < end; i++ {
		k := keyAt(b.buf, i)
		if k != key {
			if b.sorted {
				break
			}
			continue
		}
		weight := fromBig16(rawWeight(b.buf, i))
		if weight < minWeight {
			continue
		}
		fn(i, weight)
	}
}
