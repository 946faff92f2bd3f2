package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Felipecardosovargas/CardosoCheckout/internal/catalog"
	"github.com/Felipecardosovargas/CardosoCheckout/internal/repository"
	"github.com/Felipecardosovargas/CardosoCheckout/internal/service"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// respondServiceError maps the engine's error taxonomy onto HTTP statuses.
// Not-found conditions are kept distinguishable from upstream failures so
// clients know whether a retry makes sense.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrBasketNotFound):
		respondError(w, http.StatusNotFound, "basket_not_found", err.Error())
	case errors.Is(err, catalog.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "product_not_found", err.Error())
	case errors.Is(err, service.ErrBasketClosed):
		respondError(w, http.StatusConflict, "basket_closed", err.Error())
	case errors.Is(err, catalog.ErrUpstreamUnavailable):
		respondError(w, http.StatusServiceUnavailable, "upstream_unavailable", err.Error())
	default:
		slog.Error("unhandled service error", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
