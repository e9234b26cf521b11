package models

import "time"

// GameResult is a persisted mini-game outcome. Score and TimeSeconds are the
// host-side derivations written alongside the engine's raw counters.
type GameResult struct {
	ID             int64     `json:"id"`
	UserID         string    `json:"user_id"`
	LevelID        int       `json:"level_id"`
	Accuracy       int       `json:"accuracy"`
	SpeedScore     int       `json:"speed_score"`
	CorrectCount   int       `json:"correct_count"`
	IncorrectCount int       `json:"incorrect_count"`
	UsedVocabCount int       `json:"used_vocab_count"`
	Score          int       `json:"score"`
	TimeSeconds    float64   `json:"time_seconds"`
	CreatedAt      time.Time `json:"created_at"`
}

// ReviewSession records one completed review run for streak tracking.
type ReviewSession struct {
	ID            int64     `json:"id"`
	UserID        string    `json:"user_id"`
	ReviewedCount int       `json:"reviewed_count"`
	CreatedAt     time.Time `json:"created_at"`
}
