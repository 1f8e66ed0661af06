package api

import (
	"time"

	"github.com/QuyTungDao/lingo-api/internal/domain"
)

// Common request/response structures

// RateCardRequest defines the payload for the card rating endpoint.
type RateCardRequest struct {
	Rating string `json:"rating" validate:"required,oneof=easy medium hard again"`
}

// CardResponse represents the response data for a single card.
type CardResponse struct {
	ID            string    `json:"id"`
	Word          string    `json:"word"`
	Meaning       string    `json:"meaning"`
	Example       string    `json:"example,omitempty"`
	Pronunciation string    `json:"pronunciation,omitempty"`
	Difficulty    string    `json:"difficulty"`
	CreatedAt     time.Time `json:"created_at"`
}

// TodayQueueResponse represents the assembled daily review queue.
type TodayQueueResponse struct {
	Cards []CardResponse `json:"cards"`
	Total int            `json:"total"`
}

// ReviewRecordResponse represents the schedule state of one (student, card)
// pair after a rating.
type ReviewRecordResponse struct {
	CardID          string    `json:"card_id"`
	MasteryLevel    string    `json:"mastery_level"`
	RepetitionCount int       `json:"repetition_count"`
	TotalReviews    int       `json:"total_reviews"`
	LastRating      string    `json:"last_rating"`
	LastReviewedAt  time.Time `json:"last_reviewed_at"`
	NextDueAt       time.Time `json:"next_due_at"`
}

// StatisticsResponse represents a student's aggregated review statistics.
type StatisticsResponse struct {
	CurrentStreakDays int            `json:"current_streak_days"`
	LongestStreakDays int            `json:"longest_streak_days"`
	TotalItemsLearned int            `json:"total_items_learned"`
	Accuracy          float64        `json:"accuracy"`
	MasteryBreakdown  map[string]int `json:"mastery_breakdown"`
}

// cardToResponse converts a domain.Card to a CardResponse.
func cardToResponse(card *domain.Card) CardResponse {
	return CardResponse{
		ID:            card.ID.String(),
		Word:          card.Word,
		Meaning:       card.Meaning,
		Example:       card.Example,
		Pronunciation: card.Pronunciation,
		Difficulty:    string(card.Difficulty),
		CreatedAt:     card.CreatedAt,
	}
}

// recordToResponse converts a domain.ReviewRecord to a ReviewRecordResponse.
func recordToResponse(record *domain.ReviewRecord) ReviewRecordResponse {
	return ReviewRecordResponse{
		CardID:          record.CardID.String(),
		MasteryLevel:    string(record.MasteryLevel),
		RepetitionCount: record.RepetitionCount,
		TotalReviews:    record.TotalReviews,
		LastRating:      string(record.LastRating),
		LastReviewedAt:  record.LastReviewedAt,
		NextDueAt:       record.NextDueAt,
	}
}

// statisticsToResponse converts a domain.Statistics to a StatisticsResponse.
func statisticsToResponse(stats *domain.Statistics) StatisticsResponse {
	breakdown := make(map[string]int, len(stats.MasteryBreakdown))
	for level, count := range stats.MasteryBreakdown {
		breakdown[string(level)] = count
	}
	return StatisticsResponse{
		CurrentStreakDays: stats.CurrentStreakDays,
		LongestStreakDays: stats.LongestStreakDays,
		TotalItemsLearned: stats.TotalItemsLearned,
		Accuracy:          stats.Accuracy,
		MasteryBreakdown:  breakdown,
	}
}
