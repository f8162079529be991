package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"wind-route-service/internal/domain"
	"wind-route-service/internal/platform/obs"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(r.Context(), "encode failed",
			"req_id", obs.RequestID(r.Context()), "method", r.Method, "path", r.URL.Path, "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeDomainError maps service errors onto HTTP statuses. Unexpected errors
// are logged and reported without detail.
func writeDomainError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrOutOfCoverage):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrUnknownVessel), errors.Is(err, domain.ErrInvalidVessel):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrDataUnavailable):
		slog.WarnContext(r.Context(), op+" failed", "req_id", obs.RequestID(r.Context()), "err", err)
		writeError(w, r, http.StatusServiceUnavailable, "forecast data unavailable")
	default:
		slog.ErrorContext(r.Context(), op+" failed", "req_id", obs.RequestID(r.Context()), "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	return false
}
