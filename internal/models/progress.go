package models

import "time"

// ReviewProgress is the per user x vocabulary spaced-repetition record.
// Box is always in [1,5]. Created on first encounter with Box 1, updated on
// every rating, never deleted by this service.
type ReviewProgress struct {
	UserID          string    `json:"user_id"`
	VocabularyID    string    `json:"vocabulary_id"`
	Box             int       `json:"box"`
	TimesCorrect    int       `json:"times_correct"`
	TimesIncorrect  int       `json:"times_incorrect"`
	IncorrectStreak int       `json:"incorrect_streak"`
	LastReviewed    time.Time `json:"last_reviewed"`
	NextReview      time.Time `json:"next_review"`
	ProblemWord     bool      `json:"problem_word"`
}

// ReviewProgressWithVocab joins a progress record with its vocabulary entry
// for the review queue.
type ReviewProgressWithVocab struct {
	ReviewProgress
	Vocab VocabItem `json:"vocab"`
}

// ReviewFilter selects progress records for the due-review queue.
type ReviewFilter struct {
	UserID    string
	DueBefore *time.Time
	LeechOnly bool // problem words or incorrect streak >= 2
	Limit     int
}
