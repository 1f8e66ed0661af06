package srs

// Params defines all configurable parameters for the scheduling policy.
type Params struct {
	// Interval caps, in days
	EasyMaxIntervalDays   int
	MediumMaxIntervalDays int

	// Fixed intervals
	HardIntervalDays   int
	AgainReviewMinutes int

	// Mastery thresholds, applied to the post-increment repetition count
	LearningMinRepetitions int
	ReviewMinRepetitions   int
	MasteredMinRepetitions int
}

// ParamsConfig allows overriding the default parameters when creating a new
// Params instance. Zero values leave the corresponding default in place.
type ParamsConfig struct {
	EasyMaxIntervalDays   int
	MediumMaxIntervalDays int
	HardIntervalDays      int
	AgainReviewMinutes    int

	LearningMinRepetitions int
	ReviewMinRepetitions   int
	MasteredMinRepetitions int
}

// NewDefaultParams creates a new Params instance with default values.
//
// The defaults encode the production schedule: EASY doubles the interval per
// repetition up to 30 days, MEDIUM grows linearly up to 14 days, HARD always
// comes back in a day, and AGAIN re-queues the card within minutes.
func NewDefaultParams() *Params {
	return &Params{
		EasyMaxIntervalDays:   30,
		MediumMaxIntervalDays: 14,
		HardIntervalDays:      1,
		AgainReviewMinutes:    10,

		LearningMinRepetitions: 1,
		ReviewMinRepetitions:   2,
		MasteredMinRepetitions: 5,
	}
}

// NewParams creates a new Params instance with custom configuration.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.EasyMaxIntervalDays > 0 {
		params.EasyMaxIntervalDays = config.EasyMaxIntervalDays
	}
	if config.MediumMaxIntervalDays > 0 {
		params.MediumMaxIntervalDays = config.MediumMaxIntervalDays
	}
	if config.HardIntervalDays > 0 {
		params.HardIntervalDays = config.HardIntervalDays
	}
	if config.AgainReviewMinutes > 0 {
		params.AgainReviewMinutes = config.AgainReviewMinutes
	}

	if config.LearningMinRepetitions > 0 {
		params.LearningMinRepetitions = config.LearningMinRepetitions
	}
	if config.ReviewMinRepetitions > 0 {
		params.ReviewMinRepetitions = config.ReviewMinRepetitions
	}
	if config.MasteredMinRepetitions > 0 {
		params.MasteredMinRepetitions = config.MasteredMinRepetitions
	}

	return params
}
