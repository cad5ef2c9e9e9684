package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"polybook/internal/configstore"
)

type settingsRequest struct {
	BookPath       string  `json:"book_path"`
	MinWeight      *uint16 `json:"min_weight"`
	ReloadOnChange *bool   `json:"reload_on_change"`
}

func (h *Handler) handleSettings(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.conf.GetConfig(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// handleSettingsSave applies a partial update; omitted fields keep their
// current values.
func (h *Handler) handleSettingsSave(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req settingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode settings: %w", err))
		return
	}

	cfg, err := h.conf.GetConfig(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	next := configstore.Config{
		BookPath:       cfg.BookPath,
		MinWeight:      cfg.MinWeight,
		ReloadOnChange: cfg.ReloadOnChange,
	}
	if req.BookPath != "" {
		next.BookPath = req.BookPath
	}
	if req.MinWeight != nil {
		next.MinWeight = *req.MinWeight
	}
	if req.ReloadOnChange != nil {
		next.ReloadOnChange = *req.ReloadOnChange
	}
	if err := h.conf.UpdateConfig(ctx, next); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	h.log.Info().
		Str("rid", GetRequestID(ctx)).
		Str("book_path", next.BookPath).
		Uint16("min_weight", next.MinWeight).
		Bool("reload_on_change", next.ReloadOnChange).
		Msg("settings updated")

	saved, _ := h.conf.GetConfig(ctx)
	writeJSON(w, http.StatusOK, saved)
}
