package middleware

import (
	"log/slog"
	"net/http"

	"github.com/fintrackhq/fintrack-backend/internal/api/httpx"
)

// Recover is the top-level fallback: unanticipated panics become a generic
// 500 with nothing internal on the wire.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("panic", "err", rec, "path", r.URL.Path)
				httpx.WriteError(w, http.StatusInternalServerError, "internal error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
