package repository

import (
	"context"
	"time"

	"github.com/nara/thaiquest/internal/models"
)

// VocabularyRepository handles read-only vocabulary access.
type VocabularyRepository interface {
	Get(ctx context.Context, id string) (*models.VocabItem, error)
	// LevelVocab returns the ordered vocabulary pool for a level: the
	// curated display-order join first, falling back to items whose
	// difficulty matches the level id when no curation exists.
	LevelVocab(ctx context.Context, levelID, limit int) ([]models.VocabItem, error)
}

// ProgressRepository handles per user x vocabulary review records. Read-one
// and upsert-one only; no multi-row transactions are assumed.
type ProgressRepository interface {
	Get(ctx context.Context, userID, vocabularyID string) (*models.ReviewProgress, error)
	Upsert(ctx context.Context, rec models.ReviewProgress) error
	Due(ctx context.Context, filter models.ReviewFilter) ([]models.ReviewProgressWithVocab, error)
}

// ProfileRepository handles per-user progression state.
type ProfileRepository interface {
	Get(ctx context.Context, userID string) (*models.Profile, error)
	Upsert(ctx context.Context, profile models.Profile) error
}

// ResultRepository persists mini-game outcomes and review session logs.
type ResultRepository interface {
	InsertResult(ctx context.Context, result models.GameResult) (int64, error)
	ListResults(ctx context.Context, userID string, limit int) ([]models.GameResult, error)
	InsertReviewSession(ctx context.Context, userID string, reviewedCount int) (int64, error)
	CountReviewsSince(ctx context.Context, userID string, since time.Time) (int, error)
}
