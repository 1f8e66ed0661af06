package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/QuyTungDao/lingo-api/internal/service/review"
	"github.com/QuyTungDao/lingo-api/internal/store"
)

// PostgresAccuracySource implements review.AccuracySource by reading the
// grading subsystem's test_attempts table. The review engine does not own
// that schema; it only consumes the aggregate.
type PostgresAccuracySource struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAccuracySource creates a new accuracy source backed by the
// grading tables. If logger is nil, a default logger will be used.
func NewPostgresAccuracySource(db store.DBTX, logger *slog.Logger) *PostgresAccuracySource {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAccuracySource{
		db:     db,
		logger: logger.With(slog.String("component", "accuracy_source")),
	}
}

// Ensure PostgresAccuracySource implements review.AccuracySource interface
var _ review.AccuracySource = (*PostgresAccuracySource)(nil)

// Accuracy returns the student's overall answer accuracy as a percentage.
// Students with no graded attempts yield 0, not an error.
func (s *PostgresAccuracySource) Accuracy(ctx context.Context, studentID uuid.UUID) (float64, error) {
	query := `
		SELECT COALESCE(
			SUM(correct_count)::float8 / NULLIF(SUM(question_count), 0) * 100,
			0
		)
		FROM test_attempts
		WHERE student_id = $1`

	var accuracy float64
	if err := s.db.QueryRowContext(ctx, query, studentID).Scan(&accuracy); err != nil {
		return 0, fmt.Errorf("failed to compute accuracy: %w", err)
	}

	return accuracy, nil
}
