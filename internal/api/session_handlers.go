package api

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nara/thaiquest/internal/errors"
	"github.com/nara/thaiquest/internal/logger"
	"github.com/nara/thaiquest/internal/services"
)

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID  string `json:"user_id"`
		LevelID int    `json:"level_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	view, err := s.Sessions.CreateSession(r.Context(), req.UserID, req.LevelID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, view)
}

func (s *Server) handleSessionSnapshot(w http.ResponseWriter, r *http.Request) {
	view, err := s.Sessions.Snapshot(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	s.sessionTransition(w, r, s.Sessions.StartSession)
}

func (s *Server) handleTickSession(w http.ResponseWriter, r *http.Request) {
	s.sessionTransition(w, r, s.Sessions.TickSession)
}

func (s *Server) handlePauseSession(w http.ResponseWriter, r *http.Request) {
	s.sessionTransition(w, r, s.Sessions.PauseSession)
}

func (s *Server) handleResumeSession(w http.ResponseWriter, r *http.Request) {
	s.sessionTransition(w, r, s.Sessions.ResumeSession)
}

func (s *Server) sessionTransition(w http.ResponseWriter, r *http.Request, fn func(context.Context, string) (*services.SessionView, error)) {
	view, err := fn(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (s *Server) handleSubmitIntent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	view, err := s.Sessions.SubmitText(r.Context(), chi.URLParam(r, "id"), req.Text)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// handleSubmitVoice accepts raw audio and queues one recognition. The
// response is 202: the outcome lands on the session asynchronously and is
// observed through tick/snapshot polling.
func (s *Server) handleSubmitVoice(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	audio, err := io.ReadAll(io.LimitReader(r.Body, maxAudioBytes))
	r.Body.Close()
	if err != nil {
		log.Warn("failed to read audio body: %v", err)
		handleError(w, r, errors.NewBadRequestError("failed to read audio"))
		return
	}

	if err := s.Sessions.SubmitVoice(r.Context(), chi.URLParam(r, "id"), audio); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	results, err := s.Sessions.EndSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, results)
}

func (s *Server) handleSessionResults(w http.ResponseWriter, r *http.Request) {
	results, err := s.Sessions.SessionResults(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, results)
}

func (s *Server) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.CloseSession(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
