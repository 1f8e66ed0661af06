package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidRating is returned when a rating value is not one of the
	// four defined values.
	ErrInvalidRating = errors.New("invalid rating")

	// ErrInvalidMasteryLevel is returned when a mastery level is not valid.
	ErrInvalidMasteryLevel = errors.New("invalid mastery level")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)
