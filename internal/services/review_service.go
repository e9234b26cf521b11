package services

import (
	"context"
	"time"

	"github.com/nara/thaiquest/internal/errors"
	"github.com/nara/thaiquest/internal/logger"
	"github.com/nara/thaiquest/internal/models"
	"github.com/nara/thaiquest/internal/repository"
	"github.com/nara/thaiquest/internal/srs"
)

// ReviewService handles the spaced-repetition review loop: the due queue,
// rating individual words and logging completed review runs.
type ReviewService interface {
	DueReviews(ctx context.Context, userID string, limit int, leechOnly bool) ([]models.ReviewProgressWithVocab, error)
	RateWord(ctx context.Context, userID, vocabularyID, rating string) (*models.ReviewProgress, error)
	CompleteReviewSession(ctx context.Context, userID string, reviewedCount int) error
	ReviewedToday(ctx context.Context, userID string) (int, error)
}

type reviewService struct {
	progress repository.ProgressRepository
	vocab    repository.VocabularyRepository
	results  repository.ResultRepository
	now      func() time.Time
}

// NewReviewService creates a new ReviewService
func NewReviewService(progress repository.ProgressRepository, vocab repository.VocabularyRepository, results repository.ResultRepository) ReviewService {
	return &reviewService{
		progress: progress,
		vocab:    vocab,
		results:  results,
		now:      time.Now,
	}
}

func (s *reviewService) DueReviews(ctx context.Context, userID string, limit int, leechOnly bool) ([]models.ReviewProgressWithVocab, error) {
	log := logger.FromContext(ctx)
	log.Debug("fetching due reviews: user_id=%s, leech_only=%v", userID, leechOnly)

	if userID == "" {
		return nil, errors.NewValidationError("user_id", "cannot be empty")
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	now := s.now()
	due, err := s.progress.Due(ctx, models.ReviewFilter{
		UserID:    userID,
		DueBefore: &now,
		LeechOnly: leechOnly,
		Limit:     limit,
	})
	if err != nil {
		log.Error("failed to fetch due reviews: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return due, nil
}

// RateWord applies one recall rating to a word. The progress record is read
// fresh immediately before the update; two devices rating the same word
// concurrently race with last-write-wins semantics.
func (s *reviewService) RateWord(ctx context.Context, userID, vocabularyID, rating string) (*models.ReviewProgress, error) {
	log := logger.FromContext(ctx)
	log.Debug("rating word: user_id=%s, vocabulary_id=%s, rating=%s", userID, vocabularyID, rating)

	parsed, err := srs.ParseRating(rating)
	if err != nil {
		return nil, errors.NewValidationError("rating", "must be one of again, hard, good, easy")
	}

	item, err := s.vocab.Get(ctx, vocabularyID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if item == nil {
		return nil, errors.NewNotFoundError("vocabulary", vocabularyID)
	}

	rec, err := s.progress.Get(ctx, userID, vocabularyID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if rec == nil {
		// First encounter starts in box 1.
		rec = &models.ReviewProgress{
			UserID:       userID,
			VocabularyID: vocabularyID,
			Box:          srs.MinBox,
		}
	}

	updated := srs.UpdateProgress(*rec, parsed, s.now())
	if err := s.progress.Upsert(ctx, updated); err != nil {
		log.Error("failed to persist progress: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("rated %s as %s: box %d -> %d, next review %s",
		vocabularyID, parsed, rec.Box, updated.Box, updated.NextReview.Format(time.RFC3339))
	return &updated, nil
}

func (s *reviewService) CompleteReviewSession(ctx context.Context, userID string, reviewedCount int) error {
	log := logger.FromContext(ctx)

	if reviewedCount <= 0 {
		return errors.NewValidationError("reviewed_count", "must be positive")
	}
	if _, err := s.results.InsertReviewSession(ctx, userID, reviewedCount); err != nil {
		log.Error("failed to log review session: %v", err)
		return errors.NewInternalError(err)
	}
	log.Info("review session logged: user_id=%s, reviewed=%d", userID, reviewedCount)
	return nil
}

// ReviewedToday counts words reviewed since local midnight UTC, used by the
// host for streak display.
func (s *reviewService) ReviewedToday(ctx context.Context, userID string) (int, error) {
	now := s.now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	count, err := s.results.CountReviewsSince(ctx, userID, midnight)
	if err != nil {
		return 0, errors.NewInternalError(err)
	}
	return count, nil
}
