package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/nara/thaiquest/internal/logger"
	"github.com/nara/thaiquest/internal/models"
	"github.com/nara/thaiquest/internal/repository"
)

type resultRepository struct {
	db *sql.DB
}

// NewResultRepository creates a new ResultRepository implementation
func NewResultRepository(db *sql.DB) repository.ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) InsertResult(ctx context.Context, result models.GameResult) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("result_repo")
	log.Debug("inserting game result: user_id=%s, level_id=%d, score=%d", result.UserID, result.LevelID, result.Score)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO game_results (user_id, level_id, accuracy, speed_score, correct_count, incorrect_count, used_vocab_count, score, time_seconds)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`, result.UserID, result.LevelID, result.Accuracy, result.SpeedScore, result.CorrectCount,
		result.IncorrectCount, result.UsedVocabCount, result.Score, result.TimeSeconds)
	if err != nil {
		log.Error("failed to insert game result: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get game result id: %v", err)
		return 0, err
	}
	log.Debug("game result inserted: id=%d", id)
	return id, nil
}

func (r *resultRepository) ListResults(ctx context.Context, userID string, limit int) ([]models.GameResult, error) {
	log := logger.FromContext(ctx).WithPrefix("result_repo")
	log.Debug("listing game results: user_id=%s, limit=%d", userID, limit)

	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, level_id, accuracy, speed_score, correct_count, incorrect_count, used_vocab_count, score, time_seconds, created_at
FROM game_results
WHERE user_id = ?
ORDER BY created_at DESC
LIMIT ?
`, userID, limit)
	if err != nil {
		log.Error("failed to query game results: %v", err)
		return nil, err
	}
	defer rows.Close()

	var results []models.GameResult
	for rows.Next() {
		var gr models.GameResult
		if err := rows.Scan(&gr.ID, &gr.UserID, &gr.LevelID, &gr.Accuracy, &gr.SpeedScore,
			&gr.CorrectCount, &gr.IncorrectCount, &gr.UsedVocabCount, &gr.Score, &gr.TimeSeconds, &gr.CreatedAt); err != nil {
			log.Error("failed to scan game result row: %v", err)
			return nil, err
		}
		results = append(results, gr)
	}
	return results, rows.Err()
}

func (r *resultRepository) InsertReviewSession(ctx context.Context, userID string, reviewedCount int) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("result_repo")
	log.Debug("inserting review session: user_id=%s, reviewed_count=%d", userID, reviewedCount)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO review_sessions (user_id, reviewed_count)
VALUES (?, ?)
`, userID, reviewedCount)
	if err != nil {
		log.Error("failed to insert review session: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *resultRepository) CountReviewsSince(ctx context.Context, userID string, since time.Time) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("result_repo")

	var count int
	err := r.db.QueryRowContext(ctx, `
SELECT COALESCE(SUM(reviewed_count), 0)
FROM review_sessions
WHERE user_id = ? AND created_at >= ?
`, userID, since).Scan(&count)
	if err != nil {
		log.Error("failed to count reviews: %v", err)
		return 0, err
	}
	return count, nil
}
