package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/nara/thaiquest/internal/errors"
	"github.com/nara/thaiquest/internal/minigame"
)

func (s *Server) handleLevels(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"levels": minigame.AllLevelMeta(),
	})
}

func (s *Server) handleLevelDefinition(w http.ResponseWriter, r *http.Request) {
	levelID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid level id"))
		return
	}

	def, err := s.Sessions.LevelDefinition(r.Context(), levelID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, def)
}
