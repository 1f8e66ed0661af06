package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Review   ReviewConfig   `mapstructure:"review" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
// The request layer only verifies bearer tokens minted elsewhere; no
// credential management lives in this service.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`
}

// ReviewConfig contains the tunable parameters of the review scheduler.
// The defaults reproduce the production schedule; see internal/domain/srs.
type ReviewConfig struct {
	// DailyNewCardLimit bounds how many never-reviewed cards join the
	// daily queue. Due cards are never bounded by it.
	DailyNewCardLimit int `mapstructure:"daily_new_card_limit" validate:"required,gte=1"`

	// AgainReviewMinutes is how soon an AGAIN-rated card comes back.
	AgainReviewMinutes int `mapstructure:"again_review_minutes" validate:"required,gte=1"`

	// EasyMaxIntervalDays caps the doubling interval for EASY ratings.
	EasyMaxIntervalDays int `mapstructure:"easy_max_interval_days" validate:"required,gte=1"`

	// MediumMaxIntervalDays caps the linear interval for MEDIUM ratings.
	MediumMaxIntervalDays int `mapstructure:"medium_max_interval_days" validate:"required,gte=1"`
}
