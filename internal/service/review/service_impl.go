package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/QuyTungDao/lingo-api/internal/domain"
	"github.com/QuyTungDao/lingo-api/internal/domain/srs"
	"github.com/QuyTungDao/lingo-api/internal/platform/logger"
	"github.com/QuyTungDao/lingo-api/internal/store"
)

// Verify interface compliance at compile time
var _ ReviewService = (*reviewServiceImpl)(nil)

// reviewServiceImpl implements the ReviewService interface.
type reviewServiceImpl struct {
	tx           store.Transactor
	cardStore    store.CardStore
	reviewStore  store.ReviewRecordStore
	profileStore store.LearningProfileStore
	srsService   srs.Service
	accuracy     AccuracySource
	dailyCap     int
	logger       *slog.Logger
}

// NewReviewService creates a new ReviewService implementation.
// dailyCap bounds the new-card portion of the daily queue; pass
// DefaultDailyCap unless configuration says otherwise.
func NewReviewService(
	tx store.Transactor,
	cardStore store.CardStore,
	reviewStore store.ReviewRecordStore,
	profileStore store.LearningProfileStore,
	srsService srs.Service,
	accuracy AccuracySource,
	dailyCap int,
	log *slog.Logger,
) ReviewService {
	if tx == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("tx cannot be nil")
	}
	if cardStore == nil {
		panic("cardStore cannot be nil")
	}
	if reviewStore == nil {
		panic("reviewStore cannot be nil")
	}
	if profileStore == nil {
		panic("profileStore cannot be nil")
	}
	if srsService == nil {
		panic("srsService cannot be nil")
	}
	if accuracy == nil {
		panic("accuracy cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &reviewServiceImpl{
		tx:           tx,
		cardStore:    cardStore,
		reviewStore:  reviewStore,
		profileStore: profileStore,
		srsService:   srsService,
		accuracy:     accuracy,
		dailyCap:     dailyCap,
		logger:       log.With(slog.String("component", "review_service")),
	}
}

// GetTodayQueue implements ReviewService.GetTodayQueue.
//
// Due cards are included in full regardless of the cap; the cap only bounds
// how many new cards are appended. When the due set already meets or exceeds
// the cap, the new-card fetch is skipped entirely rather than issued with a
// non-positive limit.
func (s *reviewServiceImpl) GetTodayQueue(
	ctx context.Context,
	studentID uuid.UUID,
	now time.Time,
) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if s.dailyCap <= 0 {
		return nil, ErrInvalidDailyCap
	}

	dueCards, err := s.cardStore.ListDueForStudent(ctx, studentID, now)
	if err != nil {
		log.Error("failed to list due cards",
			slog.String("error", err.Error()),
			slog.String("student_id", studentID.String()))
		return nil, NewGetTodayQueueError("failed to list due cards", err)
	}

	queue := dueCards

	remaining := s.dailyCap - len(dueCards)
	if remaining > 0 {
		newCards, err := s.cardStore.ListUnseenPublicActive(ctx, studentID, remaining)
		if err != nil {
			log.Error("failed to list unseen cards",
				slog.String("error", err.Error()),
				slog.String("student_id", studentID.String()))
			return nil, NewGetTodayQueueError("failed to list unseen cards", err)
		}
		queue = append(queue, newCards...)
	}

	log.Debug("assembled today's queue",
		slog.String("student_id", studentID.String()),
		slog.Int("due", len(dueCards)),
		slog.Int("total", len(queue)))

	return queue, nil
}

// Rate implements ReviewService.Rate.
// The review record and learning profile are read with row locks and
// written in the same transaction, so a caller that aborts early leaves
// state as if the call never happened, and concurrent ratings for the same
// (student, card) pair serialize instead of losing updates.
func (s *reviewServiceImpl) Rate(
	ctx context.Context,
	studentID uuid.UUID,
	cardID uuid.UUID,
	rating domain.Rating,
	now time.Time,
) (*domain.ReviewRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !rating.IsValid() {
		log.Warn("invalid rating submitted",
			slog.String("student_id", studentID.String()),
			slog.String("card_id", cardID.String()),
			slog.String("rating", string(rating)))
		return nil, ErrInvalidRating
	}

	var updatedRecord *domain.ReviewRecord
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		cardStore := s.cardStore.WithTx(tx)
		reviewStore := s.reviewStore.WithTx(tx)
		profileStore := s.profileStore.WithTx(tx)

		// The card must exist; soft-deleted cards remain ratable because
		// their review records live on.
		if _, err := cardStore.GetByID(ctx, cardID); err != nil {
			if errors.Is(err, store.ErrCardNotFound) {
				log.Warn("card not found for rating",
					slog.String("student_id", studentID.String()),
					slog.String("card_id", cardID.String()))
				return ErrCardNotFound
			}
			return fmt.Errorf("failed to get card: %w", err)
		}

		record, created, err := s.lockOrCreateRecord(ctx, reviewStore, studentID, cardID)
		if err != nil {
			return err
		}

		updated, err := s.srsService.ApplyRating(record, rating, now)
		if err != nil {
			return fmt.Errorf("failed to apply rating: %w", err)
		}

		if created {
			err = reviewStore.Create(ctx, updated)
		} else {
			err = reviewStore.Update(ctx, updated)
		}
		if err != nil {
			return fmt.Errorf("failed to persist review record: %w", err)
		}

		if err := s.touchProfile(ctx, profileStore, studentID, now); err != nil {
			return err
		}

		updatedRecord = updated
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrCardNotFound) || errors.Is(err, ErrInvalidRating) {
			return nil, err
		}
		// Two first ratings for the same pair race on the insert; the
		// loser sees a duplicate and may retry against the stored row.
		if errors.Is(err, store.ErrDuplicate) || errors.Is(err, store.ErrConcurrencyConflict) {
			log.Warn("concurrent rating conflict",
				slog.String("student_id", studentID.String()),
				slog.String("card_id", cardID.String()))
			return nil, ErrConcurrencyConflict
		}

		log.Error("failed to process rating",
			slog.String("error", err.Error()),
			slog.String("student_id", studentID.String()),
			slog.String("card_id", cardID.String()))
		return nil, NewRateError("failed to process rating", err)
	}

	log.Debug("processed rating",
		slog.String("student_id", studentID.String()),
		slog.String("card_id", cardID.String()),
		slog.String("rating", string(rating)),
		slog.Int("repetition_count", updatedRecord.RepetitionCount),
		slog.String("mastery_level", string(updatedRecord.MasteryLevel)),
		slog.Time("next_due_at", updatedRecord.NextDueAt))

	return updatedRecord, nil
}

// GetStatistics implements ReviewService.GetStatistics.
func (s *reviewServiceImpl) GetStatistics(
	ctx context.Context,
	studentID uuid.UUID,
) (*domain.Statistics, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	stats := domain.NewStatistics()

	counts, err := s.reviewStore.CountByMasteryLevel(ctx, studentID)
	if err != nil {
		log.Error("failed to count review records",
			slog.String("error", err.Error()),
			slog.String("student_id", studentID.String()))
		return nil, NewGetStatisticsError("failed to count review records", err)
	}
	for level, count := range counts {
		stats.MasteryBreakdown[level] = count
	}

	profile, err := s.profileStore.Get(ctx, studentID, LearningDomainFlashcards)
	switch {
	case err == nil:
		stats.CurrentStreakDays = profile.CurrentStreakDays
		stats.LongestStreakDays = profile.LongestStreakDays
		stats.TotalItemsLearned = profile.TotalItemsLearned
	case errors.Is(err, store.ErrLearningProfileNotFound):
		// No ratings yet: all profile-derived figures stay zero.
	default:
		log.Error("failed to get learning profile",
			slog.String("error", err.Error()),
			slog.String("student_id", studentID.String()))
		return nil, NewGetStatisticsError("failed to get learning profile", err)
	}

	accuracy, err := s.accuracy.Accuracy(ctx, studentID)
	if err != nil {
		log.Error("failed to get accuracy",
			slog.String("error", err.Error()),
			slog.String("student_id", studentID.String()))
		return nil, NewGetStatisticsError("failed to get accuracy", err)
	}
	stats.Accuracy = accuracy

	return stats, nil
}

// lockOrCreateRecord fetches the review record with a row lock, or builds
// the initial record when this is the pair's first rating. The bool result
// reports whether the record is new and must be inserted rather than
// updated.
func (s *reviewServiceImpl) lockOrCreateRecord(
	ctx context.Context,
	reviewStore store.ReviewRecordStore,
	studentID, cardID uuid.UUID,
) (*domain.ReviewRecord, bool, error) {
	record, err := reviewStore.GetForUpdate(ctx, studentID, cardID)
	if err == nil {
		return record, false, nil
	}
	if !errors.Is(err, store.ErrReviewRecordNotFound) {
		return nil, false, fmt.Errorf("failed to get review record: %w", err)
	}

	record, err = domain.NewReviewRecord(studentID, cardID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create review record: %w", err)
	}
	return record, true, nil
}

// touchProfile applies the rating event to the student's learning profile,
// creating the profile lazily on the first rating for the domain.
func (s *reviewServiceImpl) touchProfile(
	ctx context.Context,
	profileStore store.LearningProfileStore,
	studentID uuid.UUID,
	now time.Time,
) error {
	profile, err := profileStore.GetForUpdate(ctx, studentID, LearningDomainFlashcards)
	if err != nil {
		if !errors.Is(err, store.ErrLearningProfileNotFound) {
			return fmt.Errorf("failed to get learning profile: %w", err)
		}

		profile, err = domain.NewLearningProfile(studentID, LearningDomainFlashcards)
		if err != nil {
			return fmt.Errorf("failed to create learning profile: %w", err)
		}
		if err := profileStore.Create(ctx, profile.Touch(now)); err != nil {
			return fmt.Errorf("failed to persist learning profile: %w", err)
		}
		return nil
	}

	if err := profileStore.Update(ctx, profile.Touch(now)); err != nil {
		return fmt.Errorf("failed to persist learning profile: %w", err)
	}
	return nil
}
