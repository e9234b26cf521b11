package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/nara/thaiquest/internal/logger"
	"github.com/nara/thaiquest/internal/models"
	"github.com/nara/thaiquest/internal/repository"
)

type vocabRepository struct {
	db *sql.DB
}

// NewVocabularyRepository creates a new VocabularyRepository implementation
func NewVocabularyRepository(db *sql.DB) repository.VocabularyRepository {
	return &vocabRepository{db: db}
}

func (r *vocabRepository) Get(ctx context.Context, id string) (*models.VocabItem, error) {
	log := logger.FromContext(ctx).WithPrefix("vocab_repo")
	log.Debug("getting vocabulary item: id=%s", id)

	var item models.VocabItem
	var pos sql.NullString
	var difficulty sql.NullInt64
	err := r.db.QueryRowContext(ctx, `
SELECT id, thai_script, romanization, english_translation, part_of_speech, difficulty_level
FROM vocabulary
WHERE id = ?
`, id).Scan(&item.ID, &item.ThaiScript, &item.Romanization, &item.EnglishTranslation, &pos, &difficulty)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("vocabulary item not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get vocabulary item: %v", err)
		return nil, err
	}
	item.PartOfSpeech = pos.String
	item.DifficultyLevel = int(difficulty.Int64)
	return &item, nil
}

func (r *vocabRepository) LevelVocab(ctx context.Context, levelID, limit int) ([]models.VocabItem, error) {
	log := logger.FromContext(ctx).WithPrefix("vocab_repo")
	log.Debug("fetching level vocabulary: level_id=%d, limit=%d", levelID, limit)

	items, err := r.queryVocab(ctx, `
SELECT v.id, v.thai_script, v.romanization, v.english_translation, v.part_of_speech, v.difficulty_level
FROM level_vocabulary lv
JOIN vocabulary v ON v.id = lv.vocabulary_id
WHERE lv.level_id = ?
ORDER BY lv.display_order
LIMIT ?
`, levelID, limit)
	if err != nil {
		log.Error("failed to query level vocabulary: %v", err)
		return nil, err
	}
	if len(items) > 0 {
		log.Debug("found %d curated vocabulary items", len(items))
		return items, nil
	}

	// No curated join rows; fall back to difficulty-matched items.
	items, err = r.queryVocab(ctx, `
SELECT id, thai_script, romanization, english_translation, part_of_speech, difficulty_level
FROM vocabulary
WHERE difficulty_level = ?
ORDER BY id
LIMIT ?
`, levelID, limit)
	if err != nil {
		log.Error("failed to query fallback vocabulary: %v", err)
		return nil, err
	}
	log.Debug("found %d fallback vocabulary items", len(items))
	return items, nil
}

func (r *vocabRepository) queryVocab(ctx context.Context, query string, args ...any) ([]models.VocabItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.VocabItem
	for rows.Next() {
		var item models.VocabItem
		var pos sql.NullString
		var difficulty sql.NullInt64
		if err := rows.Scan(&item.ID, &item.ThaiScript, &item.Romanization, &item.EnglishTranslation, &pos, &difficulty); err != nil {
			return nil, err
		}
		item.PartOfSpeech = pos.String
		item.DifficultyLevel = int(difficulty.Int64)
		items = append(items, item)
	}
	return items, rows.Err()
}
