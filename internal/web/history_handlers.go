package web

import (
	"net/http"
	"strconv"

	"polybook/internal/book"
)

type loadView struct {
	LoadID        string `json:"load_id"`
	LoadedAt      string `json:"loaded_at"`
	Path          string `json:"path"`
	SizeBytes     int64  `json:"size_bytes"`
	Records       int    `json:"records"`
	TrailingBytes int64  `json:"trailing_bytes"`
	Sorted        bool   `json:"sorted"`
	Compressed    bool   `json:"compressed"`
	DurationMS    int64  `json:"duration_ms"`
	Error         string `json:"error,omitempty"`
}

type lookupView struct {
	Key           string `json:"key"`
	Hits          int64  `json:"hits"`
	LastMinWeight int    `json:"last_min_weight"`
	LastMatches   int    `json:"last_matches"`
	LastQueriedAt string `json:"last_queried_at"`
}

func (h *Handler) handleLoads(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, 20)
	loads, err := h.history.ListLoads(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	out := make([]loadView, 0, len(loads))
	for _, l := range loads {
		out = append(out, loadView{
			LoadID:        l.LoadID,
			LoadedAt:      l.LoadedAt,
			Path:          l.Path,
			SizeBytes:     l.SizeBytes,
			Records:       l.Records,
			TrailingBytes: l.TrailingBytes,
			Sorted:        l.Sorted,
			Compressed:    l.Compressed,
			DurationMS:    l.DurationMS,
			Error:         l.Error,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleTopLookups(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, 20)
	lookups, err := h.history.TopLookups(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	out := make([]lookupView, 0, len(lookups))
	for _, l := range lookups {
		out = append(out, lookupView{
			Key:           book.FormatKey(l.Key),
			Hits:          l.Hits,
			LastMinWeight: l.LastMinWeight,
			LastMatches:   l.LastMatches,
			LastQueriedAt: l.LastQueriedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func parseLimit(r *http.Request, def int) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		return def
	}
	if limit > 500 {
		return 500
	}
	return limit
}
