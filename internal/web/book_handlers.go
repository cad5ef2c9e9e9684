package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"polybook/internal/book"
	"polybook/internal/explorer"
	"polybook/internal/notation"
)

type BookMoveView struct {
	UCI     string  `json:"uci"`
	SAN     string  `json:"san,omitempty"`
	Weight  uint16  `json:"weight"`
	Learn   uint32  `json:"learn"`
	Percent float64 `json:"percent"`
	NextFEN string  `json:"next_fen,omitempty"`
}

type ArrowView struct {
	X1      float64 `json:"x1"`
	Y1      float64 `json:"y1"`
	X2      float64 `json:"x2"`
	Y2      float64 `json:"y2"`
	Opacity float64 `json:"opacity"`
}

type BookMovesResponse struct {
	Key       string         `json:"key"`
	MinWeight uint16         `json:"min_weight"`
	FEN       string         `json:"fen,omitempty"`
	Moves     []BookMoveView `json:"moves"`
	Board     [][]SquareView `json:"board,omitempty"`
	Arrows    []ArrowView    `json:"arrows,omitempty"`
}

type BookInfoResponse struct {
	Loaded        bool      `json:"loaded"`
	Path          string    `json:"path,omitempty"`
	Records       int       `json:"records"`
	SizeBytes     int64     `json:"size_bytes"`
	TrailingBytes int64     `json:"trailing_bytes"`
	Sorted        bool      `json:"sorted"`
	Compressed    bool      `json:"compressed"`
	LoadedAt      time.Time `json:"loaded_at"`
	ModTime       time.Time `json:"mod_time"`
}

func (h *Handler) handleBookInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, infoResponse(h.ex.Info()))
}

func (h *Handler) handleBookReload(w http.ResponseWriter, r *http.Request) {
	info, err := h.ex.Reload(r.Context())
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, infoResponse(info))
}

func (h *Handler) handleBookMoves(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key, minWeight, err := h.queryParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	fen := strings.TrimSpace(r.URL.Query().Get("fen"))
	resp := BookMovesResponse{
		Key:       book.FormatKey(key),
		MinWeight: minWeight,
		FEN:       fen,
	}

	entries, err := h.ex.Entries(ctx, key, minWeight)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}

	total := 0
	for _, e := range entries {
		total += int(e.Weight)
	}

	resp.Moves = make([]BookMoveView, 0, len(entries))
	for _, e := range entries {
		mv := BookMoveView{UCI: e.Move.UCI(), Weight: e.Weight, Learn: e.Learn}
		if total > 0 {
			mv.Percent = float64(e.Weight) * 100 / float64(total)
		}
		resp.Moves = append(resp.Moves, mv)
	}

	if fen != "" {
		pos, err := notation.Position(fen)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		for i, e := range entries {
			a, err := notation.Annotate(pos, e.Move)
			if err != nil {
				h.log.Debug().Err(err).Str("rid", GetRequestID(ctx)).Str("fen", fen).Msg("book move not legal")
				continue
			}
			resp.Moves[i].UCI = a.UCI
			resp.Moves[i].SAN = a.SAN
			resp.Moves[i].NextFEN = a.NextFEN
		}
		resp.Board = boardFromPosition(pos)
	}
	resp.Arrows = arrowsFromMoves(resp.Moves, total)

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleBookPick(w http.ResponseWriter, r *http.Request) {
	key, minWeight, err := h.queryParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	e, err := h.ex.Pick(r.Context(), key, minWeight)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, BookMoveView{UCI: e.Move.UCI(), Weight: e.Weight, Learn: e.Learn})
}

// queryParams reads key and min_weight; a missing min_weight uses the
// configured default.
func (h *Handler) queryParams(r *http.Request) (uint64, uint16, error) {
	q := r.URL.Query()
	key, err := book.ParseKey(q.Get("key"))
	if err != nil {
		return 0, 0, err
	}
	raw := strings.TrimSpace(q.Get("min_weight"))
	if raw == "" {
		return key, h.ex.DefaultMinWeight(r.Context()), nil
	}
	mw, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("parse min_weight %q: %w", raw, err)
	}
	return key, uint16(mw), nil
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, book.ErrEmptyCandidates):
		return http.StatusNotFound
	case errors.Is(err, book.ErrNotFound),
		errors.Is(err, book.ErrTooSmall),
		errors.Is(err, book.ErrTruncatedRead):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func infoResponse(info explorer.Info) BookInfoResponse {
	return BookInfoResponse{
		Loaded:        info.Loaded,
		Path:          info.Stats.Path,
		Records:       info.Stats.Records,
		SizeBytes:     info.Stats.SizeBytes,
		TrailingBytes: info.Stats.TrailingBytes,
		Sorted:        info.Stats.Sorted,
		Compressed:    info.Stats.Compressed,
		LoadedAt:      info.LoadedAt,
		ModTime:       info.ModTime,
	}
}

func arrowsFromMoves(moves []BookMoveView, total int) []ArrowView {
	if len(moves) == 0 {
		return nil
	}
	out := make([]ArrowView, 0, len(moves))
	for _, mv := range moves {
		if len(mv.UCI) < 4 {
			continue
		}
		x1, y1, ok1 := squareCenter(mv.UCI[0], mv.UCI[1])
		x2, y2, ok2 := squareCenter(mv.UCI[2], mv.UCI[3])
		if !ok1 || !ok2 {
			continue
		}
		opacity := 0.35
		if total > 0 {
			pct := float64(mv.Weight) / float64(total)
			opacity = 0.25 + 0.65*pct
		}
		out = append(out, ArrowView{X1: x1, Y1: y1, X2: x2, Y2: y2, Opacity: opacity})
	}
	return out
}

func squareCenter(file, rank byte) (float64, float64, bool) {
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return 0, 0, false
	}
	fileIdx := float64(file - 'a')
	rankIdx := float64(rank - '1')
	// viewBox is 0..8 with rank 8 at top.
	x := fileIdx + 0.5
	y := 8 - rankIdx - 0.5
	return x, y, true
}
