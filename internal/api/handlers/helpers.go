package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fintrackhq/fintrack-backend/internal/api/httpx"
	"github.com/fintrackhq/fintrack-backend/internal/api/validate"
	"github.com/fintrackhq/fintrack-backend/internal/middleware"
	"github.com/fintrackhq/fintrack-backend/internal/services"
)

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// caller returns the authenticated user id. Empty only if the route was
// mounted outside the auth middleware, which is a wiring bug.
func caller(r *http.Request) string {
	uid, _ := middleware.UserID(r.Context())
	return uid
}

// writeErr maps the service error taxonomy onto HTTP statuses. Unclassified
// errors are logged and answered with a generic 500.
func writeErr(w http.ResponseWriter, err error) {
	var verrs validate.Errs
	switch {
	case errors.As(err, &verrs), errors.Is(err, services.ErrValidation):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, services.ErrUnauthorized):
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, services.ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, services.ErrNoData):
		httpx.WriteError(w, http.StatusNotFound, "no data")
	case errors.Is(err, services.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not found")
	case errors.Is(err, services.ErrConflict):
		httpx.WriteError(w, http.StatusConflict, err.Error())
	default:
		slog.Error("handler", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}

func pagination(r *http.Request) (limit, offset int) {
	limit, offset = 50, 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}
