package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/QuyTungDao/lingo-api/internal/domain"
)

// LearningProfileStore defines the interface for learning profile
// persistence. One profile exists per (student, learning domain), created
// lazily on the first rating event for that domain.
type LearningProfileStore interface {
	// Create saves a new learning profile.
	// Returns ErrDuplicate if a profile already exists for the pair.
	Create(ctx context.Context, profile *domain.LearningProfile) error

	// Get retrieves a profile by student ID and learning domain.
	// Returns ErrLearningProfileNotFound if the profile does not exist.
	Get(ctx context.Context, studentID uuid.UUID, domainName string) (*domain.LearningProfile, error)

	// GetForUpdate retrieves a profile with a row-level lock using
	// SELECT FOR UPDATE. Use this within the rating transaction so streak
	// updates from concurrent ratings cannot lose writes.
	// Returns ErrLearningProfileNotFound if the profile does not exist.
	GetForUpdate(ctx context.Context, studentID uuid.UUID, domainName string) (*domain.LearningProfile, error)

	// Update modifies an existing profile. The StudentID and Domain fields
	// identify the record to update.
	// Returns ErrLearningProfileNotFound if the profile does not exist.
	Update(ctx context.Context, profile *domain.LearningProfile) error

	// WithTx returns a new LearningProfileStore instance that uses the
	// provided transaction.
	WithTx(tx *sql.Tx) LearningProfileStore
}
