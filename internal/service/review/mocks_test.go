package review

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/QuyTungDao/lingo-api/internal/domain"
	"github.com/QuyTungDao/lingo-api/internal/store"
)

// pairKey identifies a (student, card) pair in the in-memory stores.
type pairKey struct {
	studentID uuid.UUID
	cardID    uuid.UUID
}

// fakeTransactor runs the transaction function directly; the mock stores
// ignore the nil transaction handle.
type fakeTransactor struct{}

func (fakeTransactor) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	return fn(ctx, nil)
}

// mockCardStore is an in-memory store.CardStore.
type mockCardStore struct {
	cards    map[uuid.UUID]*domain.Card
	dueCards []*domain.Card
	newCards []*domain.Card

	// unseenLimits records the limit of every ListUnseenPublicActive call.
	unseenLimits []int

	listDueErr error
}

func newMockCardStore() *mockCardStore {
	return &mockCardStore{cards: make(map[uuid.UUID]*domain.Card)}
}

func (m *mockCardStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Card, error) {
	card, ok := m.cards[id]
	if !ok {
		return nil, store.ErrCardNotFound
	}
	return card, nil
}

func (m *mockCardStore) ListDueForStudent(
	_ context.Context,
	_ uuid.UUID,
	_ time.Time,
) ([]*domain.Card, error) {
	if m.listDueErr != nil {
		return nil, m.listDueErr
	}
	return m.dueCards, nil
}

func (m *mockCardStore) ListUnseenPublicActive(
	_ context.Context,
	_ uuid.UUID,
	limit int,
) ([]*domain.Card, error) {
	if limit <= 0 {
		return nil, store.ErrInvalidLimit
	}
	m.unseenLimits = append(m.unseenLimits, limit)
	if limit < len(m.newCards) {
		return m.newCards[:limit], nil
	}
	return m.newCards, nil
}

func (m *mockCardStore) WithTx(_ *sql.Tx) store.CardStore { return m }

// mockReviewRecordStore is an in-memory store.ReviewRecordStore.
type mockReviewRecordStore struct {
	records map[pairKey]*domain.ReviewRecord

	createCalls int
	updateCalls int

	createErr error
}

func newMockReviewRecordStore() *mockReviewRecordStore {
	return &mockReviewRecordStore{records: make(map[pairKey]*domain.ReviewRecord)}
}

func (m *mockReviewRecordStore) Create(_ context.Context, record *domain.ReviewRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	key := pairKey{record.StudentID, record.CardID}
	if _, exists := m.records[key]; exists {
		return store.ErrDuplicate
	}
	m.createCalls++
	clone := *record
	m.records[key] = &clone
	return nil
}

func (m *mockReviewRecordStore) Get(
	_ context.Context,
	studentID, cardID uuid.UUID,
) (*domain.ReviewRecord, error) {
	record, ok := m.records[pairKey{studentID, cardID}]
	if !ok {
		return nil, store.ErrReviewRecordNotFound
	}
	clone := *record
	return &clone, nil
}

func (m *mockReviewRecordStore) GetForUpdate(
	ctx context.Context,
	studentID, cardID uuid.UUID,
) (*domain.ReviewRecord, error) {
	return m.Get(ctx, studentID, cardID)
}

func (m *mockReviewRecordStore) Update(_ context.Context, record *domain.ReviewRecord) error {
	key := pairKey{record.StudentID, record.CardID}
	if _, ok := m.records[key]; !ok {
		return store.ErrReviewRecordNotFound
	}
	m.updateCalls++
	clone := *record
	m.records[key] = &clone
	return nil
}

func (m *mockReviewRecordStore) CountByMasteryLevel(
	_ context.Context,
	studentID uuid.UUID,
) (map[domain.MasteryLevel]int, error) {
	counts := make(map[domain.MasteryLevel]int)
	for key, record := range m.records {
		if key.studentID == studentID {
			counts[record.MasteryLevel]++
		}
	}
	return counts, nil
}

func (m *mockReviewRecordStore) WithTx(_ *sql.Tx) store.ReviewRecordStore { return m }

// profileKey identifies a (student, domain) pair.
type profileKey struct {
	studentID  uuid.UUID
	domainName string
}

// mockLearningProfileStore is an in-memory store.LearningProfileStore.
type mockLearningProfileStore struct {
	profiles map[profileKey]*domain.LearningProfile
}

func newMockLearningProfileStore() *mockLearningProfileStore {
	return &mockLearningProfileStore{profiles: make(map[profileKey]*domain.LearningProfile)}
}

func (m *mockLearningProfileStore) Create(_ context.Context, profile *domain.LearningProfile) error {
	key := profileKey{profile.StudentID, profile.Domain}
	if _, exists := m.profiles[key]; exists {
		return store.ErrDuplicate
	}
	clone := *profile
	m.profiles[key] = &clone
	return nil
}

func (m *mockLearningProfileStore) Get(
	_ context.Context,
	studentID uuid.UUID,
	domainName string,
) (*domain.LearningProfile, error) {
	profile, ok := m.profiles[profileKey{studentID, domainName}]
	if !ok {
		return nil, store.ErrLearningProfileNotFound
	}
	clone := *profile
	return &clone, nil
}

func (m *mockLearningProfileStore) GetForUpdate(
	ctx context.Context,
	studentID uuid.UUID,
	domainName string,
) (*domain.LearningProfile, error) {
	return m.Get(ctx, studentID, domainName)
}

func (m *mockLearningProfileStore) Update(_ context.Context, profile *domain.LearningProfile) error {
	key := profileKey{profile.StudentID, profile.Domain}
	if _, ok := m.profiles[key]; !ok {
		return store.ErrLearningProfileNotFound
	}
	clone := *profile
	m.profiles[key] = &clone
	return nil
}

func (m *mockLearningProfileStore) WithTx(_ *sql.Tx) store.LearningProfileStore { return m }

// stubAccuracySource returns a fixed accuracy figure.
type stubAccuracySource struct {
	value float64
	err   error
}

func (s stubAccuracySource) Accuracy(_ context.Context, _ uuid.UUID) (float64, error) {
	return s.value, s.err
}
