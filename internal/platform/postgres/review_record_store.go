package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/QuyTungDao/lingo-api/internal/domain"
	"github.com/QuyTungDao/lingo-api/internal/store"
)

// PostgresReviewRecordStore implements the store.ReviewRecordStore interface
// using a PostgreSQL database as the storage backend.
type PostgresReviewRecordStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReviewRecordStore creates a new PostgreSQL implementation of
// the ReviewRecordStore interface. It accepts a database connection or
// transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresReviewRecordStore(db store.DBTX, logger *slog.Logger) *PostgresReviewRecordStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReviewRecordStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_record_store")),
	}
}

// Ensure PostgresReviewRecordStore implements store.ReviewRecordStore interface
var _ store.ReviewRecordStore = (*PostgresReviewRecordStore)(nil)

const reviewRecordColumns = `student_id, card_id, mastery_level, repetition_count,
	total_reviews, last_rating, last_reviewed_at, next_due_at, created_at, updated_at`

// Create implements store.ReviewRecordStore.Create.
// It validates the record and inserts it; a duplicate (student, card) pair
// maps to store.ErrDuplicate.
func (s *PostgresReviewRecordStore) Create(ctx context.Context, record *domain.ReviewRecord) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := fmt.Sprintf(`
		INSERT INTO review_records (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`, reviewRecordColumns)

	_, err := s.db.ExecContext(ctx, query,
		record.StudentID,
		record.CardID,
		record.MasteryLevel,
		record.RepetitionCount,
		record.TotalReviews,
		nullableRating(record.LastRating),
		nullableTime(record.LastReviewedAt),
		record.NextDueAt,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrDuplicate
		}
		if isSerializationFailure(err) {
			return store.ErrConcurrencyConflict
		}
		return fmt.Errorf("failed to create review record: %w", err)
	}

	return nil
}

// Get implements store.ReviewRecordStore.Get.
func (s *PostgresReviewRecordStore) Get(
	ctx context.Context,
	studentID, cardID uuid.UUID,
) (*domain.ReviewRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM review_records
		WHERE student_id = $1 AND card_id = $2`, reviewRecordColumns)

	return s.getRecord(ctx, query, studentID, cardID)
}

// GetForUpdate implements store.ReviewRecordStore.GetForUpdate.
// The row lock serializes concurrent rating events for the same
// (student, card) pair; the lock is held until the enclosing transaction
// commits or rolls back.
func (s *PostgresReviewRecordStore) GetForUpdate(
	ctx context.Context,
	studentID, cardID uuid.UUID,
) (*domain.ReviewRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM review_records
		WHERE student_id = $1 AND card_id = $2 FOR UPDATE`, reviewRecordColumns)

	return s.getRecord(ctx, query, studentID, cardID)
}

// Update implements store.ReviewRecordStore.Update.
func (s *PostgresReviewRecordStore) Update(ctx context.Context, record *domain.ReviewRecord) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE review_records
		SET mastery_level = $3, repetition_count = $4, total_reviews = $5,
		    last_rating = $6, last_reviewed_at = $7, next_due_at = $8,
		    updated_at = $9
		WHERE student_id = $1 AND card_id = $2`

	result, err := s.db.ExecContext(ctx, query,
		record.StudentID,
		record.CardID,
		record.MasteryLevel,
		record.RepetitionCount,
		record.TotalReviews,
		nullableRating(record.LastRating),
		nullableTime(record.LastReviewedAt),
		record.NextDueAt,
		record.UpdatedAt,
	)
	if err != nil {
		if isSerializationFailure(err) {
			return store.ErrConcurrencyConflict
		}
		return fmt.Errorf("failed to update review record: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.ErrReviewRecordNotFound
	}

	return nil
}

// CountByMasteryLevel implements store.ReviewRecordStore.CountByMasteryLevel.
// Levels with no records are absent from the result.
func (s *PostgresReviewRecordStore) CountByMasteryLevel(
	ctx context.Context,
	studentID uuid.UUID,
) (map[domain.MasteryLevel]int, error) {
	query := `
		SELECT mastery_level, COUNT(*)
		FROM review_records
		WHERE student_id = $1
		GROUP BY mastery_level`

	rows, err := s.db.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to count review records: %w", err)
	}
	defer closeRows(rows, s.logger)

	counts := make(map[domain.MasteryLevel]int)
	for rows.Next() {
		var level domain.MasteryLevel
		var count int
		if err := rows.Scan(&level, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count row: %w", err)
		}
		counts[level] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate count rows: %w", err)
	}

	return counts, nil
}

// WithTx implements store.ReviewRecordStore.WithTx.
func (s *PostgresReviewRecordStore) WithTx(tx *sql.Tx) store.ReviewRecordStore {
	return &PostgresReviewRecordStore{
		db:     tx,
		logger: s.logger,
	}
}

func (s *PostgresReviewRecordStore) getRecord(
	ctx context.Context,
	query string,
	studentID, cardID uuid.UUID,
) (*domain.ReviewRecord, error) {
	var record domain.ReviewRecord
	var lastRating sql.NullString
	var lastReviewedAt sql.NullTime

	err := s.db.QueryRowContext(ctx, query, studentID, cardID).Scan(
		&record.StudentID,
		&record.CardID,
		&record.MasteryLevel,
		&record.RepetitionCount,
		&record.TotalReviews,
		&lastRating,
		&lastReviewedAt,
		&record.NextDueAt,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrReviewRecordNotFound
		}
		return nil, fmt.Errorf("failed to get review record: %w", err)
	}

	record.LastRating = domain.Rating(lastRating.String)
	if lastReviewedAt.Valid {
		record.LastReviewedAt = lastReviewedAt.Time
	}

	return &record, nil
}

// nullableRating maps an unset rating to NULL.
func nullableRating(r domain.Rating) sql.NullString {
	return sql.NullString{String: string(r), Valid: r != ""}
}

// nullableTime maps a zero time to NULL.
func nullableTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
