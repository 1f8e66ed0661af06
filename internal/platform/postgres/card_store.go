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

// PostgresCardStore implements the store.CardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the
// CardStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller. If logger is nil, a
// default logger will be used.
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore interface
var _ store.CardStore = (*PostgresCardStore)(nil)

const cardColumns = `id, created_by, word, meaning, example, pronunciation,
	difficulty, is_public, is_active, created_at, updated_at`

// GetByID implements store.CardStore.GetByID.
// It retrieves a card by its unique ID, including soft-deleted cards, since
// review records may still reference them.
func (s *PostgresCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	query := fmt.Sprintf(`SELECT %s FROM cards WHERE id = $1`, cardColumns)

	card, err := scanCard(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	return card, nil
}

// ListDueForStudent implements store.CardStore.ListDueForStudent.
// It joins through review_records and returns every card whose record is due
// at the given time. Ordering is due timestamp ascending with card ID as a
// tiebreak, so repeated reads return the queue in a stable order.
func (s *PostgresCardStore) ListDueForStudent(
	ctx context.Context,
	studentID uuid.UUID,
	now time.Time,
) ([]*domain.Card, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM cards c
		JOIN review_records r ON r.card_id = c.id
		WHERE r.student_id = $1 AND r.next_due_at <= $2
		ORDER BY r.next_due_at ASC, c.id ASC`, prefixedCardColumns("c"))

	rows, err := s.db.QueryContext(ctx, query, studentID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list due cards: %w", err)
	}
	defer closeRows(rows, s.logger)

	return collectCards(rows)
}

// ListUnseenPublicActive implements store.CardStore.ListUnseenPublicActive.
// It returns up to limit cards that are public, active, and have no review
// record for the student, in insertion order.
func (s *PostgresCardStore) ListUnseenPublicActive(
	ctx context.Context,
	studentID uuid.UUID,
	limit int,
) ([]*domain.Card, error) {
	if limit <= 0 {
		return nil, store.ErrInvalidLimit
	}

	query := fmt.Sprintf(`
		SELECT %s FROM cards c
		WHERE c.is_public AND c.is_active
		  AND NOT EXISTS (
			SELECT 1 FROM review_records r
			WHERE r.card_id = c.id AND r.student_id = $1
		  )
		ORDER BY c.created_at ASC, c.id ASC
		LIMIT $2`, prefixedCardColumns("c"))

	rows, err := s.db.QueryContext(ctx, query, studentID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list unseen cards: %w", err)
	}
	defer closeRows(rows, s.logger)

	return collectCards(rows)
}

// WithTx implements store.CardStore.WithTx.
// It returns a new store instance bound to the provided transaction.
func (s *PostgresCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &PostgresCardStore{
		db:     tx,
		logger: s.logger,
	}
}

// rowScanner abstracts *sql.Row and *sql.Rows for the scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (*domain.Card, error) {
	var card domain.Card
	var example, pronunciation sql.NullString

	err := row.Scan(
		&card.ID,
		&card.CreatedBy,
		&card.Word,
		&card.Meaning,
		&example,
		&pronunciation,
		&card.Difficulty,
		&card.IsPublic,
		&card.IsActive,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	card.Example = example.String
	card.Pronunciation = pronunciation.String

	return &card, nil
}

func collectCards(rows *sql.Rows) ([]*domain.Card, error) {
	var cards []*domain.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card row: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate card rows: %w", err)
	}
	return cards, nil
}

func closeRows(rows *sql.Rows, log *slog.Logger) {
	if err := rows.Close(); err != nil {
		log.Error("failed to close rows", slog.String("error", err.Error()))
	}
}

func prefixedCardColumns(alias string) string {
	return fmt.Sprintf(`%[1]s.id, %[1]s.created_by, %[1]s.word, %[1]s.meaning,
	%[1]s.example, %[1]s.pronunciation, %[1]s.difficulty, %[1]s.is_public,
	%[1]s.is_active, %[1]s.created_at, %[1]s.updated_at`, alias)
}
