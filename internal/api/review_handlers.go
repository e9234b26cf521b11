package api

import (
	"net/http"
	"strconv"

	"github.com/nara/thaiquest/internal/errors"
)

func (s *Server) handleDueReviews(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		handleError(w, r, errors.NewValidationError("user_id", "cannot be empty"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	leechOnly := r.URL.Query().Get("leech") == "true"

	due, err := s.Reviews.DueReviews(r.Context(), userID, limit, leechOnly)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"reviews": due})
}

func (s *Server) handleRateWord(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID       string `json:"user_id"`
		VocabularyID string `json:"vocabulary_id"`
		Rating       string `json:"rating"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	updated, err := s.Reviews.RateWord(r.Context(), req.UserID, req.VocabularyID, req.Rating)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleCompleteReview(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID        string `json:"user_id"`
		ReviewedCount int    `json:"reviewed_count"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.Reviews.CompleteReviewSession(r.Context(), req.UserID, req.ReviewedCount); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged"})
}

func (s *Server) handleReviewedToday(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		handleError(w, r, errors.NewValidationError("user_id", "cannot be empty"))
		return
	}

	count, err := s.Reviews.ReviewedToday(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"reviewed_today": count})
}
