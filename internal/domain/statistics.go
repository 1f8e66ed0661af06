package domain

// Statistics summarizes a student's review history for reporting.
//
// Accuracy comes from a correctness signal owned outside the review engine
// (test grading) and is passed through unchanged. MasteryBreakdown maps
// every mastery level to the count of review records at that level; levels
// with no records are reported as zero, not omitted.
type Statistics struct {
	CurrentStreakDays int                  `json:"current_streak_days"`
	LongestStreakDays int                  `json:"longest_streak_days"`
	TotalItemsLearned int                  `json:"total_items_learned"`
	Accuracy          float64              `json:"accuracy"`
	MasteryBreakdown  map[MasteryLevel]int `json:"mastery_breakdown"`
}

// NewStatistics returns a Statistics value with a zero-filled mastery
// breakdown covering all four levels.
func NewStatistics() *Statistics {
	breakdown := make(map[MasteryLevel]int, len(MasteryLevels))
	for _, level := range MasteryLevels {
		breakdown[level] = 0
	}
	return &Statistics{MasteryBreakdown: breakdown}
}
