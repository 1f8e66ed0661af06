package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/QuyTungDao/lingo-api/internal/api/shared"
	"github.com/QuyTungDao/lingo-api/internal/domain"
	"github.com/QuyTungDao/lingo-api/internal/platform/logger"
	"github.com/QuyTungDao/lingo-api/internal/redact"
	"github.com/QuyTungDao/lingo-api/internal/service/review"
)

// ReviewHandler handles flashcard review HTTP requests.
type ReviewHandler struct {
	reviewService review.ReviewService
	logger        *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService review.ReviewService, logger *slog.Logger) *ReviewHandler {
	if reviewService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("reviewService cannot be nil for ReviewHandler")
	}
	if logger == nil {
		panic("logger cannot be nil for ReviewHandler")
	}

	return &ReviewHandler{
		reviewService: reviewService,
		logger:        logger.With(slog.String("component", "review_handler")),
	}
}

// GetTodayQueue handles GET /flashcards/today requests.
// It assembles the daily review queue for the authenticated student.
func (h *ReviewHandler) GetTodayQueue(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	studentID, ok := studentIDFromContext(r)
	if !ok {
		log.Warn("student ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Student ID not found or invalid")
		return
	}

	cards, err := h.reviewService.GetTodayQueue(r.Context(), studentID, time.Now().UTC())
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to assemble today's queue"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	response := TodayQueueResponse{
		Cards: make([]CardResponse, 0, len(cards)),
		Total: len(cards),
	}
	for _, card := range cards {
		response.Cards = append(response.Cards, cardToResponse(card))
	}

	log.Debug("assembled today's queue",
		slog.String("student_id", studentID.String()),
		slog.Int("total", response.Total))
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// RateCard handles POST /flashcards/{id}/rate requests.
// It records one rating event and returns the updated schedule state.
func (h *ReviewHandler) RateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	pathCardID := chi.URLParam(r, "id")
	if pathCardID == "" {
		log.Warn("card ID not found in URL path")
		shared.RespondWithError(w, r, http.StatusBadRequest, "Card ID is required")
		return
	}

	cardID, err := uuid.Parse(pathCardID)
	if err != nil {
		log.Warn("invalid card ID format", slog.String("card_id", pathCardID))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid card ID format")
		return
	}

	studentID, ok := studentIDFromContext(r)
	if !ok {
		log.Warn("student ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Student ID not found or invalid")
		return
	}

	var req RateCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("student_id", studentID.String()),
			slog.String("card_id", cardID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		log.Warn("validation error",
			slog.String("error", redact.Error(err)),
			slog.String("student_id", studentID.String()),
			slog.String("card_id", cardID.String()))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	record, err := h.reviewService.Rate(
		r.Context(),
		studentID,
		cardID,
		domain.Rating(req.Rating),
		time.Now().UTC(),
	)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to rate card"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("rated card",
		slog.String("student_id", studentID.String()),
		slog.String("card_id", cardID.String()),
		slog.String("rating", req.Rating),
		slog.String("mastery_level", string(record.MasteryLevel)))
	shared.RespondWithJSON(w, r, http.StatusOK, recordToResponse(record))
}

// GetStatistics handles GET /flashcards/statistics requests.
func (h *ReviewHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	studentID, ok := studentIDFromContext(r)
	if !ok {
		log.Warn("student ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Student ID not found or invalid")
		return
	}

	stats, err := h.reviewService.GetStatistics(r.Context(), studentID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to get statistics"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("retrieved statistics", slog.String("student_id", studentID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, statisticsToResponse(stats))
}

// studentIDFromContext reads the authenticated student ID the auth
// middleware stored on the request context.
func studentIDFromContext(r *http.Request) (uuid.UUID, bool) {
	studentID, ok := r.Context().Value(shared.StudentIDContextKey).(uuid.UUID)
	if !ok || studentID == uuid.Nil {
		return uuid.Nil, false
	}
	return studentID, true
}
