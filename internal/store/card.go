package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/QuyTungDao/lingo-api/internal/domain"
)

// CardStore defines the read surface the review engine needs from card
// content. Card authoring and editing belong to a separate flow and are not
// part of this interface.
type CardStore interface {
	// GetByID retrieves a card by its unique ID.
	// Returns ErrCardNotFound if the card does not exist. Soft-deleted
	// cards are still returned: review records may legitimately reference
	// them.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// ListDueForStudent retrieves the cards whose review record for the
	// given student is due at the given time (next_due_at <= now), ordered
	// by due timestamp ascending with card ID as a tiebreak. Every due
	// card is returned; callers must not assume any cap.
	ListDueForStudent(ctx context.Context, studentID uuid.UUID, now time.Time) ([]*domain.Card, error)

	// ListUnseenPublicActive retrieves up to limit cards that are public,
	// active, and have no review record for the given student, in stable
	// insertion order (created_at, then card ID).
	// Returns ErrInvalidLimit if limit is not positive; callers that have
	// no room for new cards must skip the fetch rather than pass zero.
	ListUnseenPublicActive(ctx context.Context, studentID uuid.UUID, limit int) ([]*domain.Card, error)

	// WithTx returns a new CardStore instance that uses the provided
	// transaction. The transaction should be created and managed by the
	// caller (typically a service).
	WithTx(tx *sql.Tx) CardStore
}
