package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/QuyTungDao/lingo-api/internal/domain"
	"github.com/QuyTungDao/lingo-api/internal/store"
)

// PostgresLearningProfileStore implements the store.LearningProfileStore
// interface using a PostgreSQL database as the storage backend.
type PostgresLearningProfileStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresLearningProfileStore creates a new PostgreSQL implementation of
// the LearningProfileStore interface. If logger is nil, a default logger
// will be used.
func NewPostgresLearningProfileStore(db store.DBTX, logger *slog.Logger) *PostgresLearningProfileStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresLearningProfileStore{
		db:     db,
		logger: logger.With(slog.String("component", "learning_profile_store")),
	}
}

// Ensure PostgresLearningProfileStore implements store.LearningProfileStore interface
var _ store.LearningProfileStore = (*PostgresLearningProfileStore)(nil)

const learningProfileColumns = `student_id, domain, current_streak_days,
	longest_streak_days, total_items_learned, last_activity_at, created_at, updated_at`

// Create implements store.LearningProfileStore.Create.
func (s *PostgresLearningProfileStore) Create(ctx context.Context, profile *domain.LearningProfile) error {
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := fmt.Sprintf(`
		INSERT INTO learning_profiles (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`, learningProfileColumns)

	_, err := s.db.ExecContext(ctx, query,
		profile.StudentID,
		profile.Domain,
		profile.CurrentStreakDays,
		profile.LongestStreakDays,
		profile.TotalItemsLearned,
		nullableTime(profile.LastActivityAt),
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrDuplicate
		}
		if isSerializationFailure(err) {
			return store.ErrConcurrencyConflict
		}
		return fmt.Errorf("failed to create learning profile: %w", err)
	}

	return nil
}

// Get implements store.LearningProfileStore.Get.
func (s *PostgresLearningProfileStore) Get(
	ctx context.Context,
	studentID uuid.UUID,
	domainName string,
) (*domain.LearningProfile, error) {
	query := fmt.Sprintf(`SELECT %s FROM learning_profiles
		WHERE student_id = $1 AND domain = $2`, learningProfileColumns)

	return s.getProfile(ctx, query, studentID, domainName)
}

// GetForUpdate implements store.LearningProfileStore.GetForUpdate.
func (s *PostgresLearningProfileStore) GetForUpdate(
	ctx context.Context,
	studentID uuid.UUID,
	domainName string,
) (*domain.LearningProfile, error) {
	query := fmt.Sprintf(`SELECT %s FROM learning_profiles
		WHERE student_id = $1 AND domain = $2 FOR UPDATE`, learningProfileColumns)

	return s.getProfile(ctx, query, studentID, domainName)
}

// Update implements store.LearningProfileStore.Update.
func (s *PostgresLearningProfileStore) Update(ctx context.Context, profile *domain.LearningProfile) error {
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE learning_profiles
		SET current_streak_days = $3, longest_streak_days = $4,
		    total_items_learned = $5, last_activity_at = $6, updated_at = $7
		WHERE student_id = $1 AND domain = $2`

	result, err := s.db.ExecContext(ctx, query,
		profile.StudentID,
		profile.Domain,
		profile.CurrentStreakDays,
		profile.LongestStreakDays,
		profile.TotalItemsLearned,
		nullableTime(profile.LastActivityAt),
		profile.UpdatedAt,
	)
	if err != nil {
		if isSerializationFailure(err) {
			return store.ErrConcurrencyConflict
		}
		return fmt.Errorf("failed to update learning profile: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.ErrLearningProfileNotFound
	}

	return nil
}

// WithTx implements store.LearningProfileStore.WithTx.
func (s *PostgresLearningProfileStore) WithTx(tx *sql.Tx) store.LearningProfileStore {
	return &PostgresLearningProfileStore{
		db:     tx,
		logger: s.logger,
	}
}

func (s *PostgresLearningProfileStore) getProfile(
	ctx context.Context,
	query string,
	studentID uuid.UUID,
	domainName string,
) (*domain.LearningProfile, error) {
	var profile domain.LearningProfile
	var lastActivityAt sql.NullTime

	err := s.db.QueryRowContext(ctx, query, studentID, domainName).Scan(
		&profile.StudentID,
		&profile.Domain,
		&profile.CurrentStreakDays,
		&profile.LongestStreakDays,
		&profile.TotalItemsLearned,
		&lastActivityAt,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrLearningProfileNotFound
		}
		return nil, fmt.Errorf("failed to get learning profile: %w", err)
	}

	if lastActivityAt.Valid {
		profile.LastActivityAt = lastActivityAt.Time
	}

	return &profile, nil
}
