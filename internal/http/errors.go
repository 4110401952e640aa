// Package httpapi exposes the HTTP API layer of the service.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/fairyhunter13/sales-dashboard-service/internal/carts"
	"github.com/fairyhunter13/sales-dashboard-service/internal/catalog"
	"github.com/fairyhunter13/sales-dashboard-service/internal/obs"
	"github.com/fairyhunter13/sales-dashboard-service/internal/store"
)

// jsonError represents a JSON error payload.
type jsonError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// WriteJSONError writes a JSON error payload with the given status code.
func WriteJSONError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(jsonError{Error: message, Details: details})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		obs.Logger.Error("response_encode_failed", "error", err)
	}
}

// writeError maps domain errors onto HTTP responses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		ve *catalog.ValidationError
		ne *carts.NetworkError
	)
	switch {
	case errors.As(err, &ve):
		WriteJSONError(w, http.StatusBadRequest, "validation_error", flatten(err))
	case errors.Is(err, store.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, carts.ErrUpstreamUnavailable):
		WriteJSONError(w, http.StatusServiceUnavailable, "upstream_unavailable", err.Error())
	case errors.As(err, &ne):
		obs.Logger.Warn("upstream_error",
			"request_id", RequestIDFromContext(r.Context()),
			"status_code", ne.StatusCode,
			"error", err,
		)
		WriteJSONError(w, http.StatusBadGateway, "upstream_error", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		WriteJSONError(w, http.StatusGatewayTimeout, "timeout", "")
	default:
		obs.Logger.Error("internal_error", "request_id", RequestIDFromContext(r.Context()), "error", err)
		WriteJSONError(w, http.StatusInternalServerError, "internal_error", "")
	}
}

func flatten(err error) string {
	return strings.ReplaceAll(err.Error(), "\n", "; ")
}
