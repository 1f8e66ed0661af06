package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for LearningProfile
var (
	ErrEmptyProfileStudentID = errors.New("learning profile student ID cannot be empty")
	ErrEmptyProfileDomain    = errors.New("learning profile domain cannot be empty")
	ErrNegativeStreak        = errors.New("streak days must be greater than or equal to 0")
)

// LearningProfile holds a student's streak and cumulative-count state for
// one learning domain (e.g. flashcards). It is created lazily on the first
// rating event for that domain and mutated on every subsequent one.
//
// TotalItemsLearned counts rating events, not distinct learned items: it is
// incremented once per rating regardless of the streak branch. This mirrors
// the product's current accounting and must not be silently changed.
type LearningProfile struct {
	StudentID         uuid.UUID `json:"student_id"`
	Domain            string    `json:"domain"`
	CurrentStreakDays int       `json:"current_streak_days"`
	LongestStreakDays int       `json:"longest_streak_days"`
	TotalItemsLearned int       `json:"total_items_learned"`
	LastActivityAt    time.Time `json:"last_activity_at"` // zero before first activity
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// NewLearningProfile creates an empty profile for a student and domain.
func NewLearningProfile(studentID uuid.UUID, domain string) (*LearningProfile, error) {
	now := time.Now().UTC()
	profile := &LearningProfile{
		StudentID:      studentID,
		Domain:         domain,
		LastActivityAt: time.Time{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	return profile, nil
}

// Validate checks if the LearningProfile has valid data.
// Returns an error if any field fails validation.
func (p *LearningProfile) Validate() error {
	if p.StudentID == uuid.Nil {
		return ErrEmptyProfileStudentID
	}

	if p.Domain == "" {
		return ErrEmptyProfileDomain
	}

	if p.CurrentStreakDays < 0 || p.LongestStreakDays < 0 {
		return ErrNegativeStreak
	}

	return nil
}

// Touch applies one rating event to the profile and returns a new profile,
// leaving the receiver unchanged. Streak accounting uses calendar dates
// only; time of day is ignored and all dates are compared in UTC.
//
// Multiple ratings on the same calendar day leave the streak fields
// untouched. Activity on the day after the previous activity extends the
// streak; any longer gap resets it to 1. TotalItemsLearned increments on
// every call.
func (p *LearningProfile) Touch(now time.Time) *LearningProfile {
	next := *p

	today := dateOf(now)
	switch {
	case p.LastActivityAt.IsZero() || dateOf(p.LastActivityAt) != today:
		if !p.LastActivityAt.IsZero() && dateOf(p.LastActivityAt) == today.AddDate(0, 0, -1) {
			next.CurrentStreakDays = p.CurrentStreakDays + 1
		} else {
			next.CurrentStreakDays = 1
		}
		if next.CurrentStreakDays > next.LongestStreakDays {
			next.LongestStreakDays = next.CurrentStreakDays
		}
		next.LastActivityAt = now
	default:
		// Same calendar day: streak fields stay as they are.
	}

	next.TotalItemsLearned = p.TotalItemsLearned + 1
	next.UpdatedAt = now

	return &next
}

// dateOf truncates a timestamp to its UTC calendar date.
func dateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
