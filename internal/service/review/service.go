// Package review implements the spaced-repetition engine's three operations:
// assembling the daily queue, processing rating events, and aggregating
// statistics.
package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/QuyTungDao/lingo-api/internal/domain"
)

// LearningDomainFlashcards is the learning-profile domain under which
// flashcard streaks and totals are tracked.
const LearningDomainFlashcards = "flashcards"

// DefaultDailyCap bounds how many new cards join the daily queue when no
// explicit configuration is provided. Due cards are never bounded.
const DefaultDailyCap = 20

// ReviewService provides the operations of the spaced-repetition engine.
type ReviewService interface {
	// GetTodayQueue produces the ordered list of cards the student should
	// review at the given time: every due card first, followed by up to
	// (dailyCap - dueCount) cards the student has never rated. The
	// operation is read-only; no review record is mutated.
	//
	// Returns ErrInvalidDailyCap if the service was configured with a
	// non-positive cap.
	GetTodayQueue(ctx context.Context, studentID uuid.UUID, now time.Time) ([]*domain.Card, error)

	// Rate applies one rating event for the given card, creating the
	// review record on first rating, rescheduling the card via the
	// interval policy, and updating the student's learning profile, all
	// within a single transaction.
	//
	// The operation is NOT idempotent: replaying it counts as a second
	// rating event. Callers must not resend on ambiguous failure.
	//
	// Returns ErrCardNotFound if the card does not exist,
	// ErrInvalidRating if the rating is not one of the defined values,
	// and ErrConcurrencyConflict if a concurrent transaction won a write
	// race (the one error safe to retry).
	Rate(
		ctx context.Context,
		studentID uuid.UUID,
		cardID uuid.UUID,
		rating domain.Rating,
		now time.Time,
	) (*domain.ReviewRecord, error)

	// GetStatistics summarizes the student's review records and learning
	// profile. Read-only and side-effect free. Students with no history
	// get zero-valued statistics, not an error.
	GetStatistics(ctx context.Context, studentID uuid.UUID) (*domain.Statistics, error)
}

// AccuracySource supplies the correctness signal for the accuracy figure in
// statistics. It is owned by the grading subsystem; the review engine passes
// its value through unchanged.
type AccuracySource interface {
	// Accuracy returns the student's overall answer accuracy as a
	// percentage in [0, 100]. Students with no graded work yield 0.
	Accuracy(ctx context.Context, studentID uuid.UUID) (float64, error)
}

// Common error types for ReviewService
var (
	// ErrCardNotFound indicates that the rated card does not exist.
	ErrCardNotFound = errors.New("card not found")

	// ErrInvalidRating indicates a rating outside the defined set.
	ErrInvalidRating = errors.New("invalid rating")

	// ErrInvalidDailyCap indicates a non-positive daily cap.
	ErrInvalidDailyCap = errors.New("daily cap must be at least 1")

	// ErrConcurrencyConflict indicates a write race with a concurrent
	// rating for the same card. Retrying re-reads the latest state and is
	// safe.
	ErrConcurrencyConflict = errors.New("concurrent rating conflict")
)

// ServiceError wraps errors from the review service with additional context.
// This allows consumers to differentiate between different types of service
// errors using errors.As instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g. "rate", "get_today_queue")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewRateError returns a new ServiceError for the rate operation.
func NewRateError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "rate",
		Message:   message,
		Err:       err,
	}
}

// NewGetTodayQueueError returns a new ServiceError for the get_today_queue operation.
func NewGetTodayQueueError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "get_today_queue",
		Message:   message,
		Err:       err,
	}
}

// NewGetStatisticsError returns a new ServiceError for the get_statistics operation.
func NewGetStatisticsError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "get_statistics",
		Message:   message,
		Err:       err,
	}
}
