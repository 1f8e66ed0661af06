package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/QuyTungDao/lingo-api/internal/domain"
)

// ReviewRecordStore defines the interface for review record persistence.
// One record exists per (student, card) pair, created on the first rating
// event for that pair.
type ReviewRecordStore interface {
	// Create saves a new review record.
	// It handles domain validation internally.
	// Returns ErrDuplicate if a record already exists for the pair.
	Create(ctx context.Context, record *domain.ReviewRecord) error

	// Get retrieves a review record by the combination of student ID and
	// card ID. Returns ErrReviewRecordNotFound if the record does not
	// exist. This method does NOT provide any row locking, so it must not
	// be used when you plan to update the row and need concurrency
	// protection.
	Get(ctx context.Context, studentID, cardID uuid.UUID) (*domain.ReviewRecord, error)

	// GetForUpdate retrieves a review record with a row-level lock using
	// SELECT FOR UPDATE. Use this within a transaction when you plan to
	// update the row; it serializes concurrent rating events for the same
	// (student, card) pair. Returns ErrReviewRecordNotFound if the record
	// does not exist.
	GetForUpdate(ctx context.Context, studentID, cardID uuid.UUID) (*domain.ReviewRecord, error)

	// Update modifies an existing review record. The StudentID and CardID
	// fields identify the record to update.
	// Returns ErrReviewRecordNotFound if the record does not exist.
	Update(ctx context.Context, record *domain.ReviewRecord) error

	// CountByMasteryLevel returns the number of review records the student
	// has at each mastery level. Levels with no records are absent from
	// the result; callers that need zero-filled maps must fill them.
	CountByMasteryLevel(ctx context.Context, studentID uuid.UUID) (map[domain.MasteryLevel]int, error)

	// WithTx returns a new ReviewRecordStore instance that uses the
	// provided transaction.
	WithTx(tx *sql.Tx) ReviewRecordStore
}
