package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/nara/thaiquest/internal/logger"
	"github.com/nara/thaiquest/internal/models"
	"github.com/nara/thaiquest/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new ProgressRepository implementation
func NewProgressRepository(db *sql.DB) repository.ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) Get(ctx context.Context, userID, vocabularyID string) (*models.ReviewProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("getting progress: user_id=%s, vocabulary_id=%s", userID, vocabularyID)

	var rec models.ReviewProgress
	err := r.db.QueryRowContext(ctx, `
SELECT user_id, vocabulary_id, srs_box, times_correct, times_incorrect, incorrect_streak, last_reviewed, next_review_date, is_problem_word
FROM user_vocabulary_progress
WHERE user_id = ? AND vocabulary_id = ?
`, userID, vocabularyID).Scan(&rec.UserID, &rec.VocabularyID, &rec.Box, &rec.TimesCorrect, &rec.TimesIncorrect,
		&rec.IncorrectStreak, &rec.LastReviewed, &rec.NextReview, &rec.ProblemWord)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no progress record yet")
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get progress: %v", err)
		return nil, err
	}
	return &rec, nil
}

func (r *progressRepository) Upsert(ctx context.Context, rec models.ReviewProgress) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("upserting progress: user_id=%s, vocabulary_id=%s, box=%d", rec.UserID, rec.VocabularyID, rec.Box)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO user_vocabulary_progress (user_id, vocabulary_id, srs_box, times_correct, times_incorrect, incorrect_streak, last_reviewed, next_review_date, is_problem_word)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (user_id, vocabulary_id) DO UPDATE SET
    srs_box = excluded.srs_box,
    times_correct = excluded.times_correct,
    times_incorrect = excluded.times_incorrect,
    incorrect_streak = excluded.incorrect_streak,
    last_reviewed = excluded.last_reviewed,
    next_review_date = excluded.next_review_date,
    is_problem_word = excluded.is_problem_word
`, rec.UserID, rec.VocabularyID, rec.Box, rec.TimesCorrect, rec.TimesIncorrect,
		rec.IncorrectStreak, rec.LastReviewed, rec.NextReview, rec.ProblemWord)
	if err != nil {
		log.Error("failed to upsert progress: %v", err)
	}
	return err
}

func (r *progressRepository) Due(ctx context.Context, filter models.ReviewFilter) ([]models.ReviewProgressWithVocab, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("querying due reviews: user_id=%s, leech_only=%v, limit=%d", filter.UserID, filter.LeechOnly, filter.Limit)

	query := sqlBuilder.
		Select(
			"p.user_id", "p.vocabulary_id", "p.srs_box", "p.times_correct", "p.times_incorrect",
			"p.incorrect_streak", "p.last_reviewed", "p.next_review_date", "p.is_problem_word",
			"v.id", "v.thai_script", "v.romanization", "v.english_translation", "v.part_of_speech", "v.difficulty_level",
		).
		From("user_vocabulary_progress p").
		Join("vocabulary v ON v.id = p.vocabulary_id").
		Where(squirrel.Eq{"p.user_id": filter.UserID}).
		OrderBy("p.srs_box ASC", "p.next_review_date ASC")

	if filter.DueBefore != nil {
		query = query.Where(squirrel.LtOrEq{"p.next_review_date": *filter.DueBefore})
	}
	if filter.LeechOnly {
		query = query.Where(squirrel.Or{
			squirrel.Eq{"p.is_problem_word": true},
			squirrel.GtOrEq{"p.incorrect_streak": 2},
		})
	}
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build due query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query due reviews: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.ReviewProgressWithVocab
	for rows.Next() {
		var rec models.ReviewProgressWithVocab
		var pos sql.NullString
		var difficulty sql.NullInt64
		if err := rows.Scan(
			&rec.UserID, &rec.VocabularyID, &rec.Box, &rec.TimesCorrect, &rec.TimesIncorrect,
			&rec.IncorrectStreak, &rec.LastReviewed, &rec.NextReview, &rec.ProblemWord,
			&rec.Vocab.ID, &rec.Vocab.ThaiScript, &rec.Vocab.Romanization, &rec.Vocab.EnglishTranslation, &pos, &difficulty,
		); err != nil {
			log.Error("failed to scan due review row: %v", err)
			return nil, err
		}
		rec.Vocab.PartOfSpeech = pos.String
		rec.Vocab.DifficultyLevel = int(difficulty.Int64)
		out = append(out, rec)
	}
	log.Debug("found %d due reviews", len(out))
	return out, rows.Err()
}
