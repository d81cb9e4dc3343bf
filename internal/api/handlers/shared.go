// Package handlers contains the HTTP handlers for the asset overview API.
package handlers

import (
	"errors"
	"net/http"

	"github.com/twatanabe/Asset-Overview-Backend/internal/api/response"
	"github.com/twatanabe/Asset-Overview-Backend/internal/apperrors"
)

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	response.RespondJSON(w, status, data)
}

// respondServiceError maps a service-layer error onto an HTTP status and
// sends a structured error response. Unknown errors become 500s.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrBrokerNotFound),
		errors.Is(err, apperrors.ErrStockNotFound),
		errors.Is(err, apperrors.ErrQuoteNotFound),
		errors.Is(err, apperrors.ErrFundNotFound):
		response.RespondError(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, apperrors.ErrInvalidSide),
		errors.Is(err, apperrors.ErrInvalidGroupBy),
		errors.Is(err, apperrors.ErrInvalidCurrency),
		errors.Is(err, apperrors.ErrInvalidSymbol),
		errors.Is(err, apperrors.ErrEmptyID):
		response.RespondError(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, apperrors.ErrAssetsNotLoaded):
		// No complete snapshot yet. The client should trigger a refresh
		// (or wait for the scheduled one) and retry.
		response.RespondError(w, http.StatusServiceUnavailable, err.Error(), nil)
	default:
		response.RespondError(w, http.StatusInternalServerError, "internal server error", err.Error())
	}
}
