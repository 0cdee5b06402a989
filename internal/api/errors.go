package api

import (
	"errors"
	"net/http"

	"github.com/bkjNprosoft/tarot-2026/internal/domain"
	"github.com/bkjNprosoft/tarot-2026/internal/generation"
	"github.com/bkjNprosoft/tarot-2026/internal/store"
)

// mapError translates service and store errors into an HTTP status and a
// client-safe message. Anything unrecognized is a plain 500.
func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidCategory):
		return http.StatusBadRequest, "Unknown category"
	case errors.Is(err, domain.ErrUnknownCard):
		return http.StatusBadRequest, "Unknown card"
	case errors.Is(err, domain.ErrReadingCardCount),
		errors.Is(err, domain.ErrReadingDuplicateCard),
		errors.Is(err, domain.ErrReadingOrientationMismatch):
		return http.StatusBadRequest, "Invalid card selection"
	case errors.Is(err, generation.ErrInvalidRequest):
		return http.StatusBadRequest, "Invalid interpretation request"
	case errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest, "Invalid request"
	case store.IsNotFoundError(err):
		return http.StatusNotFound, "Reading not found"
	case errors.Is(err, generation.ErrTimeout):
		return http.StatusGatewayTimeout, "Interpretation timed out"
	case errors.Is(err, generation.ErrMissingCredentials):
		return http.StatusInternalServerError, "Interpretation service not configured"
	case errors.Is(err, generation.ErrUpstream):
		return http.StatusInternalServerError, "Failed to generate interpretation"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
