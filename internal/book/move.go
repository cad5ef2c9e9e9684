package book

// Promotion piece kinds in the order they are packed into a book move.
const (
	NoPromotion uint8 = iota
	PromoteKnight
	PromoteBishop
	PromoteRook
	PromoteQueen
)

const (
	fileLetters  = "abcdefgh"
	rowDigits    = "12345678"
	promoLetters = "nbrq"
)

// Move is a decoded book move. Files and rows are zero based, so a1 is
// FromFile 0, FromRow 0.
type Move struct {
	FromFile  uint8
	FromRow   uint8
	ToFile    uint8
	ToRow     uint8
	Promotion uint8
}

// Entry is one matched record with its statistics.
type Entry struct {
	Move   Move
	Weight uint16
	Learn  uint32
}

// DecodeMove unpacks a host-order move field:
//
//	bits  0-2  to file
//	bits  3-5  to row
//	bits  6-8  from file
//	bits  9-11 from row
//	bits 12-14 promotion
func DecodeMove(bits uint16) Move {
	return Move{
		ToFile:    uint8(bits & 7),
		ToRow:     uint8((bits >> 3) & 7),
		FromFile:  uint8((bits >> 6) & 7),
		FromRow:   uint8((bits >> 9) & 7),
		Promotion: uint8((bits >> 12) & 7),
	}
}

// UCI returns the move in engine notation, e.g. "e2e4" or "e7e8q".
// Castling keeps the book's king-takes-rook form ("e1h1").
func (m Move) UCI() string {
	buf := make([]byte, 4, 5)
	buf[0] = fileLetters[m.FromFile&7]
	buf[1] = rowDigits[m.FromRow&7]
	buf[2] = fileLetters[m.ToFile&7]
	buf[3] = rowDigits[m.ToRow&7]
	if m.Promotion >= PromoteKnight && m.Promotion <= PromoteQueen {
		buf = append(buf, promoLetters[m.Promotion-1])
	}
	return string(buf)
}

func (m Move) String() string {
	return m.UCI()
}
