package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QuyTungDao/lingo-api/internal/api/shared"
	"github.com/QuyTungDao/lingo-api/internal/domain"
	"github.com/QuyTungDao/lingo-api/internal/service/review"
)

// mockReviewService is a configurable review.ReviewService for handler tests.
type mockReviewService struct {
	queue      []*domain.Card
	queueErr   error
	record     *domain.ReviewRecord
	rateErr    error
	stats      *domain.Statistics
	statsErr   error
	lastRating domain.Rating
}

func (m *mockReviewService) GetTodayQueue(
	_ context.Context,
	_ uuid.UUID,
	_ time.Time,
) ([]*domain.Card, error) {
	return m.queue, m.queueErr
}

func (m *mockReviewService) Rate(
	_ context.Context,
	_ uuid.UUID,
	_ uuid.UUID,
	rating domain.Rating,
	_ time.Time,
) (*domain.ReviewRecord, error) {
	m.lastRating = rating
	return m.record, m.rateErr
}

func (m *mockReviewService) GetStatistics(
	_ context.Context,
	_ uuid.UUID,
) (*domain.Statistics, error) {
	return m.stats, m.statsErr
}

func newTestHandler(svc review.ReviewService) *ReviewHandler {
	return NewReviewHandler(svc, slog.Default())
}

// authedRequest builds a request carrying an authenticated student ID,
// mirroring what the auth middleware does.
func authedRequest(method, target string, body []byte, studentID uuid.UUID) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	ctx := context.WithValue(req.Context(), shared.StudentIDContextKey, studentID)
	return req.WithContext(ctx)
}

func newTestCard(t *testing.T) *domain.Card {
	t.Helper()
	card, err := domain.NewCard(uuid.New(), "ephemeral", "lasting a very short time", domain.DifficultyHard)
	require.NoError(t, err)
	return card
}

func TestGetTodayQueue_ReturnsCards(t *testing.T) {
	svc := &mockReviewService{queue: []*domain.Card{newTestCard(t), newTestCard(t)}}
	handler := newTestHandler(svc)

	req := authedRequest(http.MethodGet, "/api/flashcards/today", nil, uuid.New())
	rr := httptest.NewRecorder()
	handler.GetTodayQueue(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp TodayQueueResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	assert.Len(t, resp.Cards, 2)
	assert.Equal(t, "ephemeral", resp.Cards[0].Word)
}

func TestGetTodayQueue_EmptyQueue(t *testing.T) {
	handler := newTestHandler(&mockReviewService{})

	req := authedRequest(http.MethodGet, "/api/flashcards/today", nil, uuid.New())
	rr := httptest.NewRecorder()
	handler.GetTodayQueue(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp TodayQueueResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Zero(t, resp.Total)
	assert.NotNil(t, resp.Cards)
}

func TestGetTodayQueue_Unauthenticated(t *testing.T) {
	handler := newTestHandler(&mockReviewService{})

	req := httptest.NewRequest(http.MethodGet, "/api/flashcards/today", nil)
	rr := httptest.NewRecorder()
	handler.GetTodayQueue(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

// rateRequest builds an authenticated rate request with the card ID bound
// into the chi route context.
func rateRequest(t *testing.T, cardID string, body string, studentID uuid.UUID) *http.Request {
	t.Helper()

	req := authedRequest(
		http.MethodPost,
		"/api/flashcards/"+cardID+"/rate",
		[]byte(body),
		studentID,
	)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", cardID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestRateCard_Success(t *testing.T) {
	studentID := uuid.New()
	cardID := uuid.New()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := &mockReviewService{
		record: &domain.ReviewRecord{
			StudentID:       studentID,
			CardID:          cardID,
			MasteryLevel:    domain.MasteryLearning,
			RepetitionCount: 1,
			TotalReviews:    1,
			LastRating:      domain.RatingEasy,
			LastReviewedAt:  now,
			NextDueAt:       now.Add(48 * time.Hour),
		},
	}
	handler := newTestHandler(svc)

	req := rateRequest(t, cardID.String(), `{"rating":"easy"}`, studentID)
	rr := httptest.NewRecorder()
	handler.RateCard(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, domain.RatingEasy, svc.lastRating)

	var resp ReviewRecordResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, cardID.String(), resp.CardID)
	assert.Equal(t, "learning", resp.MasteryLevel)
	assert.Equal(t, 1, resp.RepetitionCount)
}

func TestRateCard_InvalidRatingValue(t *testing.T) {
	handler := newTestHandler(&mockReviewService{})

	req := rateRequest(t, uuid.New().String(), `{"rating":"perfect"}`, uuid.New())
	rr := httptest.NewRecorder()
	handler.RateCard(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRateCard_MalformedBody(t *testing.T) {
	handler := newTestHandler(&mockReviewService{})

	req := rateRequest(t, uuid.New().String(), `{"rating":`, uuid.New())
	rr := httptest.NewRecorder()
	handler.RateCard(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRateCard_InvalidCardID(t *testing.T) {
	handler := newTestHandler(&mockReviewService{})

	req := rateRequest(t, "not-a-uuid", `{"rating":"easy"}`, uuid.New())
	rr := httptest.NewRecorder()
	handler.RateCard(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRateCard_CardNotFound(t *testing.T) {
	handler := newTestHandler(&mockReviewService{rateErr: review.ErrCardNotFound})

	req := rateRequest(t, uuid.New().String(), `{"rating":"easy"}`, uuid.New())
	rr := httptest.NewRecorder()
	handler.RateCard(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRateCard_ConcurrentConflict(t *testing.T) {
	handler := newTestHandler(&mockReviewService{rateErr: review.ErrConcurrencyConflict})

	req := rateRequest(t, uuid.New().String(), `{"rating":"easy"}`, uuid.New())
	rr := httptest.NewRecorder()
	handler.RateCard(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestGetStatistics_Success(t *testing.T) {
	stats := domain.NewStatistics()
	stats.CurrentStreakDays = 3
	stats.LongestStreakDays = 7
	stats.TotalItemsLearned = 42
	stats.Accuracy = 91.5
	stats.MasteryBreakdown[domain.MasteryLearning] = 5
	handler := newTestHandler(&mockReviewService{stats: stats})

	req := authedRequest(http.MethodGet, "/api/flashcards/statistics", nil, uuid.New())
	rr := httptest.NewRecorder()
	handler.GetStatistics(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp StatisticsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.CurrentStreakDays)
	assert.Equal(t, 7, resp.LongestStreakDays)
	assert.Equal(t, 42, resp.TotalItemsLearned)
	assert.Equal(t, 91.5, resp.Accuracy)
	assert.Equal(t, 5, resp.MasteryBreakdown["learning"])
	assert.Contains(t, resp.MasteryBreakdown, "mastered")
}

func TestGetStatistics_ServiceError(t *testing.T) {
	handler := newTestHandler(&mockReviewService{
		statsErr: review.NewGetStatisticsError("failed to count review records", assert.AnError),
	})

	req := authedRequest(http.MethodGet, "/api/flashcards/statistics", nil, uuid.New())
	rr := httptest.NewRecorder()
	handler.GetStatistics(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
