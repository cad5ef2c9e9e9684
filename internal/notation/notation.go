// Package notation checks book moves against a position and renders them in
// SAN. The book itself never validates moves; callers that hold a FEN use
// this to annotate results.
package notation

import (
	"errors"
	"fmt"

	"github.com/notnil/chess"

	"polybook/internal/book"
)

var ErrIllegal = errors.New("move not legal in position")

type Annotation struct {
	UCI     string `json:"uci"`
	SAN     string `json:"san"`
	NextFEN string `json:"next_fen"`
}

// Position parses a FEN.
func Position(fen string) (*chess.Position, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("parse fen: %w", err)
	}
	return chess.NewGame(opt).Position(), nil
}

// Annotate resolves m in pos. Castling stored as king-takes-rook is mapped
// to the king's destination square first.
func Annotate(pos *chess.Position, m book.Move) (Annotation, error) {
	from := square(m.FromFile, m.FromRow)
	to := square(m.ToFile, m.ToRow)
	to = castleTarget(pos, from, to)
	promo := promoType(m.Promotion)

	for _, mv := range pos.ValidMoves() {
		if mv.S1() != from || mv.S2() != to || mv.Promo() != promo {
			continue
		}
		return Annotation{
			UCI:     chess.UCINotation{}.Encode(pos, mv),
			SAN:     chess.AlgebraicNotation{}.Encode(pos, mv),
			NextFEN: pos.Update(mv).String(),
		}, nil
	}
	return Annotation{UCI: m.UCI()}, fmt.Errorf("%s: %w", m.UCI(), ErrIllegal)
}

func square(file, row uint8) chess.Square {
	return chess.NewSquare(chess.File(file&7), chess.Rank(row&7))
}

func castleTarget(pos *chess.Position, from, to chess.Square) chess.Square {
	board := pos.Board()
	king := board.Piece(from)
	rook := board.Piece(to)
	if king.Type() != chess.King || rook.Type() != chess.Rook || king.Color() != rook.Color() {
		return to
	}
	if to > from {
		return chess.NewSquare(chess.FileG, from.Rank())
	}
	return chess.NewSquare(chess.FileC, from.Rank())
}

func promoType(p uint8) chess.PieceType {
	switch p {
	case book.PromoteKnight:
		return chess.Knight
	case book.PromoteBishop:
		return chess.Bishop
	case book.PromoteRook:
		return chess.Rook
	case book.PromoteQueen:
		return chess.Queen
	default:
		return chess.NoPieceType
	}
}
