package srs

import (
	"errors"
	"time"

	"github.com/QuyTungDao/lingo-api/internal/domain"
)

// Common errors
var (
	ErrNilRecord     = errors.New("review record cannot be nil")
	ErrInvalidRating = errors.New("invalid rating")
)

// Service defines the interface for scheduling policy operations.
type Service interface {
	// ApplyRating computes the review record's next state after one rating
	// event. It returns a new record and leaves the input unchanged.
	ApplyRating(
		record *domain.ReviewRecord,
		rating domain.Rating,
		now time.Time,
	) (*domain.ReviewRecord, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new scheduling service with default parameters.
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new scheduling service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// ApplyRating implements the Service interface.
//
// The repetition and total-review counts are incremented first, and the
// interval and mastery rules are evaluated against the post-increment
// count. Replaying the same event therefore counts as a second rating; the
// operation is deliberately not idempotent.
func (s *defaultService) ApplyRating(
	record *domain.ReviewRecord,
	rating domain.Rating,
	now time.Time,
) (*domain.ReviewRecord, error) {
	if record == nil {
		return nil, ErrNilRecord
	}

	if !rating.IsValid() {
		return nil, ErrInvalidRating
	}

	next := *record
	next.RepetitionCount = record.RepetitionCount + 1
	next.TotalReviews = record.TotalReviews + 1
	next.LastRating = rating
	next.LastReviewedAt = now
	next.NextDueAt, next.MasteryLevel = Schedule(rating, next.RepetitionCount, now, s.params)
	next.UpdatedAt = now

	return &next, nil
}
