package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/QuyTungDao/lingo-api/internal/domain"
	"github.com/QuyTungDao/lingo-api/internal/service/auth"
	"github.com/QuyTungDao/lingo-api/internal/service/review"
	"github.com/QuyTungDao/lingo-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, review.ErrCardNotFound),
		errors.Is(err, store.ErrCardNotFound),
		errors.Is(err, store.ErrReviewRecordNotFound),
		errors.Is(err, store.ErrLearningProfileNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, review.ErrConcurrencyConflict),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, review.ErrInvalidRating),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal
// details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, review.ErrCardNotFound),
		errors.Is(err, store.ErrCardNotFound):
		return "Card not found"

	case errors.Is(err, review.ErrConcurrencyConflict),
		errors.Is(err, store.ErrDuplicate):
		return "Card was rated concurrently, please retry"

	case errors.Is(err, review.ErrInvalidRating):
		return "Invalid rating"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns a validator error into a user-friendly
// message without echoing request contents back.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()
	if !strings.Contains(errMsg, "Field validation") {
		return "Validation error"
	}

	// Example: "Key: 'RateCardRequest.Rating' Error:Field validation for
	// 'Rating' failed on the 'oneof' tag"
	parts := strings.Split(errMsg, "Error:")
	if len(parts) < 2 {
		return "Validation error"
	}
	fieldParts := strings.Split(parts[1], "'")
	if len(fieldParts) < 3 {
		return "Validation error"
	}

	field := fieldParts[1]
	if len(fieldParts) >= 5 {
		return "Validation failed for field '" + field + "' on rule '" + fieldParts[3] + "'"
	}
	return "Validation failed for field '" + field + "'"
}
