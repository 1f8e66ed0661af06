package srs

import (
	"time"

	"github.com/QuyTungDao/lingo-api/internal/domain"
)

// calculateInterval determines how long to wait before the next review of a
// card, given the rating just submitted and the post-increment repetition
// count.
//
// All intervals are measured from "now", never from the previous due date:
//   - EASY: min(EasyMaxIntervalDays, 2^repetitions) days
//   - MEDIUM: min(MediumMaxIntervalDays, repetitions*2) days
//   - HARD: HardIntervalDays days
//   - AGAIN: AgainReviewMinutes minutes
//
// The function is total over the four ratings and all non-negative
// repetition counts; the EASY doubling saturates at the cap, so large
// counts cannot overflow.
func calculateInterval(
	rating domain.Rating,
	repetitions int,
	params *Params,
) time.Duration {
	const day = 24 * time.Hour

	switch rating {
	case domain.RatingEasy:
		days := params.EasyMaxIntervalDays
		// 2^repetitions, saturating once it reaches the cap.
		if repetitions < 31 && (1<<repetitions) < params.EasyMaxIntervalDays {
			days = 1 << repetitions
		}
		return time.Duration(days) * day
	case domain.RatingMedium:
		days := repetitions * 2
		if days > params.MediumMaxIntervalDays {
			days = params.MediumMaxIntervalDays
		}
		return time.Duration(days) * day
	case domain.RatingHard:
		return time.Duration(params.HardIntervalDays) * day
	default: // domain.RatingAgain
		return time.Duration(params.AgainReviewMinutes) * time.Minute
	}
}

// calculateMastery classifies the card after a rating event, using the same
// post-increment repetition count as the interval rule.
//
// MASTERED is gated on an EASY rating at or past the mastered threshold;
// REVIEW and LEARNING depend on the repetition count alone. Because the
// count never resets, a HARD or AGAIN rating after reaching REVIEW cannot
// regress the level below REVIEW.
func calculateMastery(
	rating domain.Rating,
	repetitions int,
	params *Params,
) domain.MasteryLevel {
	switch {
	case repetitions >= params.MasteredMinRepetitions && rating == domain.RatingEasy:
		return domain.MasteryMastered
	case repetitions >= params.ReviewMinRepetitions:
		return domain.MasteryReview
	case repetitions >= params.LearningMinRepetitions:
		return domain.MasteryLearning
	default:
		return domain.MasteryNew
	}
}

// Schedule computes the next due timestamp and mastery level for a rating
// event. repetitions is the repetition count after the event has been
// counted. The function is pure: identical inputs always yield identical
// outputs.
func Schedule(
	rating domain.Rating,
	repetitions int,
	now time.Time,
	params *Params,
) (time.Time, domain.MasteryLevel) {
	nextDueAt := now.Add(calculateInterval(rating, repetitions, params))
	level := calculateMastery(rating, repetitions, params)
	return nextDueAt, level
}
