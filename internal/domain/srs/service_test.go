package srs

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QuyTungDao/lingo-api/internal/domain"
)

func newTestRecord(t *testing.T) *domain.ReviewRecord {
	t.Helper()
	record, err := domain.NewReviewRecord(uuid.New(), uuid.New())
	require.NoError(t, err)
	return record
}

func TestApplyRatingFirstEasy(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()
	record := newTestRecord(t)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	next, err := service.ApplyRating(record, domain.RatingEasy, now)
	require.NoError(t, err)

	assert.Equal(t, 1, next.RepetitionCount)
	assert.Equal(t, 1, next.TotalReviews)
	assert.Equal(t, domain.RatingEasy, next.LastRating)
	assert.Equal(t, now, next.LastReviewedAt)
	assert.Equal(t, domain.MasteryLearning, next.MasteryLevel)
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), next.NextDueAt)

	// Input record is untouched.
	assert.Equal(t, 0, record.RepetitionCount)
	assert.Equal(t, domain.MasteryNew, record.MasteryLevel)
}

func TestApplyRatingFiveConsecutiveEasy(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()
	record := newTestRecord(t)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		next, err := service.ApplyRating(record, domain.RatingEasy, now)
		require.NoError(t, err)
		record = next
		now = now.AddDate(0, 0, 1) // distinct days
	}

	lastRatedAt := now.AddDate(0, 0, -1)
	assert.Equal(t, 5, record.RepetitionCount)
	assert.Equal(t, 5, record.TotalReviews)
	assert.Equal(t, domain.MasteryMastered, record.MasteryLevel)
	// 2^5 = 32 days, capped to 30.
	assert.Equal(t, lastRatedAt.Add(30*24*time.Hour), record.NextDueAt)
}

func TestApplyRatingAgainOnNewRecord(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()
	record := newTestRecord(t)
	now := time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC)

	next, err := service.ApplyRating(record, domain.RatingAgain, now)
	require.NoError(t, err)

	assert.Equal(t, 1, next.RepetitionCount)
	assert.Equal(t, domain.MasteryLearning, next.MasteryLevel)
	assert.Equal(t, now.Add(10*time.Minute), next.NextDueAt)
}

func TestApplyRatingMasteryDoesNotRegress(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()
	record := newTestRecord(t)
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	var err error
	for i := 0; i < 3; i++ {
		record, err = service.ApplyRating(record, domain.RatingMedium, now)
		require.NoError(t, err)
	}
	require.Equal(t, domain.MasteryReview, record.MasteryLevel)

	record, err = service.ApplyRating(record, domain.RatingAgain, now)
	require.NoError(t, err)
	assert.Equal(t, domain.MasteryReview, record.MasteryLevel)
}

func TestApplyRatingInvalidInputs(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()
	now := time.Now().UTC()

	_, err := service.ApplyRating(nil, domain.RatingEasy, now)
	assert.ErrorIs(t, err, ErrNilRecord)

	record := newTestRecord(t)
	_, err = service.ApplyRating(record, domain.Rating("perfect"), now)
	assert.ErrorIs(t, err, ErrInvalidRating)
}
