package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProfile(t *testing.T) *LearningProfile {
	t.Helper()
	profile, err := NewLearningProfile(uuid.New(), "flashcards")
	require.NoError(t, err)
	return profile
}

func TestNewLearningProfileValidation(t *testing.T) {
	t.Parallel()

	_, err := NewLearningProfile(uuid.Nil, "flashcards")
	assert.ErrorIs(t, err, ErrEmptyProfileStudentID)

	_, err = NewLearningProfile(uuid.New(), "")
	assert.ErrorIs(t, err, ErrEmptyProfileDomain)
}

func TestTouchFirstActivityStartsStreak(t *testing.T) {
	t.Parallel()
	profile := newTestProfile(t)
	now := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

	next := profile.Touch(now)

	assert.Equal(t, 1, next.CurrentStreakDays)
	assert.Equal(t, 1, next.LongestStreakDays)
	assert.Equal(t, 1, next.TotalItemsLearned)
	assert.Equal(t, now, next.LastActivityAt)

	// Original profile is untouched.
	assert.Equal(t, 0, profile.CurrentStreakDays)
	assert.Equal(t, 0, profile.TotalItemsLearned)
}

func TestTouchSameDayDoesNotChangeStreak(t *testing.T) {
	t.Parallel()
	profile := newTestProfile(t)
	morning := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 1, 1, 22, 30, 0, 0, time.UTC)

	next := profile.Touch(morning).Touch(evening)

	assert.Equal(t, 1, next.CurrentStreakDays)
	assert.Equal(t, 1, next.LongestStreakDays)
	// Counts still move on every rating event.
	assert.Equal(t, 2, next.TotalItemsLearned)
	// Last activity stays on the first event of the day.
	assert.Equal(t, morning, next.LastActivityAt)
}

func TestTouchConsecutiveDayExtendsStreak(t *testing.T) {
	t.Parallel()
	profile := newTestProfile(t)
	day1 := time.Date(2024, 1, 1, 23, 55, 0, 0, time.UTC)
	day2 := time.Date(2024, 1, 2, 0, 5, 0, 0, time.UTC)

	next := profile.Touch(day1).Touch(day2)

	assert.Equal(t, 2, next.CurrentStreakDays)
	assert.Equal(t, 2, next.LongestStreakDays)
	assert.Equal(t, day2, next.LastActivityAt)
}

func TestTouchGapResetsStreak(t *testing.T) {
	t.Parallel()
	profile := newTestProfile(t)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	// Build a three-day streak, then skip two days.
	for i := 0; i < 3; i++ {
		profile = profile.Touch(now.AddDate(0, 0, i))
	}
	require.Equal(t, 3, profile.CurrentStreakDays)

	next := profile.Touch(now.AddDate(0, 0, 5))

	assert.Equal(t, 1, next.CurrentStreakDays)
	// Longest streak is preserved after a reset.
	assert.Equal(t, 3, next.LongestStreakDays)
}

func TestTouchLongestStreakOnlyGrows(t *testing.T) {
	t.Parallel()
	profile := newTestProfile(t)
	profile.CurrentStreakDays = 0
	profile.LongestStreakDays = 10
	profile.LastActivityAt = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	next := profile.Touch(time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC))

	assert.Equal(t, 1, next.CurrentStreakDays)
	assert.Equal(t, 10, next.LongestStreakDays)
}
