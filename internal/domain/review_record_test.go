package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReviewRecord(t *testing.T) {
	t.Parallel()
	studentID := uuid.New()
	cardID := uuid.New()

	record, err := NewReviewRecord(studentID, cardID)
	require.NoError(t, err)

	assert.Equal(t, studentID, record.StudentID)
	assert.Equal(t, cardID, record.CardID)
	assert.Equal(t, MasteryNew, record.MasteryLevel)
	assert.Equal(t, 0, record.RepetitionCount)
	assert.Equal(t, 0, record.TotalReviews)
	assert.Empty(t, record.LastRating)
	assert.True(t, record.LastReviewedAt.IsZero())
	// A fresh record is available for review immediately.
	assert.True(t, record.IsDue(time.Now().UTC()))
}

func TestNewReviewRecordValidation(t *testing.T) {
	t.Parallel()

	_, err := NewReviewRecord(uuid.Nil, uuid.New())
	assert.ErrorIs(t, err, ErrEmptyRecordStudentID)

	_, err = NewReviewRecord(uuid.New(), uuid.Nil)
	assert.ErrorIs(t, err, ErrEmptyRecordCardID)
}

func TestReviewRecordValidate(t *testing.T) {
	t.Parallel()

	base := func() *ReviewRecord {
		record, err := NewReviewRecord(uuid.New(), uuid.New())
		require.NoError(t, err)
		return record
	}

	record := base()
	record.RepetitionCount = -1
	assert.ErrorIs(t, record.Validate(), ErrNegativeRepetitions)

	record = base()
	record.TotalReviews = -1
	assert.ErrorIs(t, record.Validate(), ErrNegativeTotalReviews)

	record = base()
	record.MasteryLevel = "expert"
	assert.ErrorIs(t, record.Validate(), ErrInvalidMasteryLevel)

	record = base()
	record.LastRating = "perfect"
	assert.ErrorIs(t, record.Validate(), ErrInvalidRating)
}

func TestReviewRecordIsDue(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	record := &ReviewRecord{NextDueAt: now.Add(-time.Minute)}
	assert.True(t, record.IsDue(now))

	record.NextDueAt = now
	assert.True(t, record.IsDue(now))

	record.NextDueAt = now.Add(time.Minute)
	assert.False(t, record.IsDue(now))
}

func TestRatingIsValid(t *testing.T) {
	t.Parallel()

	for _, rating := range []Rating{RatingEasy, RatingMedium, RatingHard, RatingAgain} {
		assert.True(t, rating.IsValid(), "expected %s to be valid", rating)
	}

	assert.False(t, Rating("").IsValid())
	assert.False(t, Rating("good").IsValid())
}
