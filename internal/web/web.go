package web

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"polybook/internal/configstore"
	"polybook/internal/db"
	"polybook/internal/explorer"
)

// History lists recorded loads and lookups. *db.Store implements it.
type History interface {
	ListLoads(ctx context.Context, limit int) ([]db.BookLoad, error)
	TopLookups(ctx context.Context, limit int) ([]db.Lookup, error)
}

type Handler struct {
	ex      *explorer.Explorer
	conf    *configstore.Store
	history History
	log     zerolog.Logger

	adminToken string
}

func NewHandler(ex *explorer.Explorer, conf *configstore.Store, history History, adminToken string, log zerolog.Logger) *Handler {
	return &Handler{
		ex:         ex,
		conf:       conf,
		history:    history,
		log:        log,
		adminToken: adminToken,
	}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/book", h.handleBookInfo)
	mux.HandleFunc("GET /api/book/moves", h.handleBookMoves)
	mux.HandleFunc("GET /api/book/pick", h.handleBookPick)
	mux.HandleFunc("POST /api/book/reload", h.requireAdmin(h.handleBookReload))

	mux.HandleFunc("GET /api/settings", h.handleSettings)
	mux.HandleFunc("POST /api/settings", h.requireAdmin(h.handleSettingsSave))

	mux.HandleFunc("GET /api/loads", h.handleLoads)
	mux.HandleFunc("GET /api/lookups/top", h.handleTopLookups)
}

// Routes returns the full handler chain with request IDs and access logs.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return RequestID(AccessLog(h.log, mux))
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
