package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Rating represents the self-reported difficulty a student submits after
// reviewing a card.
type Rating string

// Possible rating values
const (
	RatingEasy   Rating = "easy"
	RatingMedium Rating = "medium"
	RatingHard   Rating = "hard"
	RatingAgain  Rating = "again"
)

// IsValid reports whether the rating is one of the four defined values.
func (r Rating) IsValid() bool {
	switch r {
	case RatingEasy, RatingMedium, RatingHard, RatingAgain:
		return true
	default:
		return false
	}
}

// MasteryLevel classifies how well a student knows a given card.
type MasteryLevel string

// Possible mastery levels, ordered NEW < LEARNING < REVIEW < MASTERED.
const (
	MasteryNew      MasteryLevel = "new"
	MasteryLearning MasteryLevel = "learning"
	MasteryReview   MasteryLevel = "review"
	MasteryMastered MasteryLevel = "mastered"
)

// MasteryLevels lists all levels in ascending order. Aggregations report
// every level, including those with zero records.
var MasteryLevels = []MasteryLevel{MasteryNew, MasteryLearning, MasteryReview, MasteryMastered}

// Common validation errors for ReviewRecord
var (
	ErrEmptyRecordStudentID = errors.New("review record student ID cannot be empty")
	ErrEmptyRecordCardID    = errors.New("review record card ID cannot be empty")
	ErrNegativeRepetitions  = errors.New("repetition count must be greater than or equal to 0")
	ErrNegativeTotalReviews = errors.New("total reviews must be greater than or equal to 0")
)

// ReviewRecord tracks a student's spaced-repetition state for a specific
// card. A record exists only after at least one rating event has been
// submitted for the (student, card) pair; before that the pair is implicitly
// "new" and has no record.
//
// RepetitionCount and TotalReviews both increment on every rating event and
// stay equal in the current design; they are kept as two fields for forward
// compatibility.
type ReviewRecord struct {
	StudentID       uuid.UUID    `json:"student_id"`
	CardID          uuid.UUID    `json:"card_id"`
	MasteryLevel    MasteryLevel `json:"mastery_level"`
	RepetitionCount int          `json:"repetition_count"`
	TotalReviews    int          `json:"total_reviews"`
	LastRating      Rating       `json:"last_rating,omitempty"` // empty before first rating
	LastReviewedAt  time.Time    `json:"last_reviewed_at"`      // zero before first rating
	NextDueAt       time.Time    `json:"next_due_at"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// NewReviewRecord creates the initial review state for a student and card.
// The record starts at mastery NEW with zero counts; the first rating event
// transitions it immediately via the scheduling policy.
func NewReviewRecord(studentID, cardID uuid.UUID) (*ReviewRecord, error) {
	now := time.Now().UTC()
	record := &ReviewRecord{
		StudentID:       studentID,
		CardID:          cardID,
		MasteryLevel:    MasteryNew,
		RepetitionCount: 0,
		TotalReviews:    0,
		LastReviewedAt:  time.Time{},
		NextDueAt:       now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}

	return record, nil
}

// Validate checks if the ReviewRecord has valid data.
// Returns an error if any field fails validation.
func (r *ReviewRecord) Validate() error {
	if r.StudentID == uuid.Nil {
		return ErrEmptyRecordStudentID
	}

	if r.CardID == uuid.Nil {
		return ErrEmptyRecordCardID
	}

	if r.RepetitionCount < 0 {
		return ErrNegativeRepetitions
	}

	if r.TotalReviews < 0 {
		return ErrNegativeTotalReviews
	}

	switch r.MasteryLevel {
	case MasteryNew, MasteryLearning, MasteryReview, MasteryMastered:
	default:
		return ErrInvalidMasteryLevel
	}

	if r.LastRating != "" && !r.LastRating.IsValid() {
		return ErrInvalidRating
	}

	return nil
}

// IsDue reports whether the record is due for review at the given time.
func (r *ReviewRecord) IsDue(now time.Time) bool {
	return !r.NextDueAt.After(now)
}
