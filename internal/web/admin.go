package web

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
)

// requireAdmin guards mutating endpoints with the admin token, passed as an
// X-Admin-Token header or a token query parameter.
func (h *Handler) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.adminToken == "" {
			writeError(w, http.StatusForbidden, errors.New("admin disabled (no admin token)"))
			return
		}
		token := strings.TrimSpace(r.Header.Get("X-Admin-Token"))
		if token == "" {
			token = strings.TrimSpace(r.URL.Query().Get("token"))
		}
		if token == "" {
			writeError(w, http.StatusUnauthorized, errors.New("missing admin token"))
			return
		}
		if !tokensEqual(token, h.adminToken) {
			writeError(w, http.StatusUnauthorized, errors.New("invalid admin token"))
			return
		}
		next(w, r)
	}
}

func tokensEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
