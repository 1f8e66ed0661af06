package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/QuyTungDao/lingo-api/internal/config"
	"github.com/QuyTungDao/lingo-api/internal/domain/srs"
	"github.com/QuyTungDao/lingo-api/internal/platform/postgres"
	"github.com/QuyTungDao/lingo-api/internal/service/auth"
	"github.com/QuyTungDao/lingo-api/internal/service/review"
	"github.com/QuyTungDao/lingo-api/internal/store"
)

// application holds the initialized dependency graph of the server.
type application struct {
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	cardStore    store.CardStore
	reviewStore  store.ReviewRecordStore
	profileStore store.LearningProfileStore

	// Service interfaces
	jwtService    auth.JWTService
	srsService    srs.Service
	reviewService review.ReviewService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized")

	// Initialize stores
	app.cardStore = postgres.NewPostgresCardStore(db, logger)
	app.reviewStore = postgres.NewPostgresReviewRecordStore(db, logger)
	app.profileStore = postgres.NewPostgresLearningProfileStore(db, logger)

	// Initialize the scheduler with the configured intervals
	app.srsService = srs.NewServiceWithParams(srs.NewParams(srs.ParamsConfig{
		EasyMaxIntervalDays:   cfg.Review.EasyMaxIntervalDays,
		MediumMaxIntervalDays: cfg.Review.MediumMaxIntervalDays,
		AgainReviewMinutes:    cfg.Review.AgainReviewMinutes,
	}))

	// Initialize the review service
	app.reviewService = review.NewReviewService(
		store.NewTransactor(db),
		app.cardStore,
		app.reviewStore,
		app.profileStore,
		app.srsService,
		postgres.NewPostgresAccuracySource(db, logger),
		cfg.Review.DailyNewCardLimit,
		logger,
	)

	logger.Info("Application initialized successfully")
	return app, nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
