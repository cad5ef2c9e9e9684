package web

import (
	"strings"

	"github.com/notnil/chess"
)

// SquareView is one square of a board diagram, ranks listed from 8 down.
type SquareView struct {
	Square string `json:"square"`
	Piece  string `json:"piece,omitempty"`
	Light  bool   `json:"light"`
}

func boardFromPosition(pos *chess.Position) [][]SquareView {
	board := make([][]SquareView, 0, 8)
	b := pos.Board()

	for r := chess.Rank8; r >= chess.Rank1; r-- {
		row := make([]SquareView, 0, 8)
		for f := chess.FileA; f <= chess.FileH; f++ {
			sq := chess.NewSquare(f, r)
			// a1 is dark.
			row = append(row, SquareView{
				Square: sq.String(),
				Piece:  pieceCode(b.Piece(sq)),
				Light:  (int(f)+int(r))%2 == 1,
			})
		}
		board = append(board, row)
	}
	return board
}

// pieceCode uses FEN letters: upper case for white.
func pieceCode(p chess.Piece) string {
	if p == chess.NoPiece {
		return ""
	}
	letter := p.Type().String()
	if letter == "" {
		return ""
	}
	if p.Color() == chess.White {
		return strings.ToUpper(letter)
	}
	return strings.ToLower(letter)
}
