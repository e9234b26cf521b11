package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/nara/thaiquest/internal/models"
)

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.Profiles.EnsureProfile(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings models.RuntimeSettings
	if err := decodeJSON(r, &settings); err != nil {
		handleError(w, r, err)
		return
	}

	profile, err := s.Profiles.UpdateSettings(r.Context(), chi.URLParam(r, "userID"), settings)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

func (s *Server) handlePurchaseCosmetic(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CosmeticID string `json:"cosmetic_id"`
		Cost       int    `json:"cost"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	profile, err := s.Profiles.PurchaseCosmetic(r.Context(), chi.URLParam(r, "userID"), req.CosmeticID, req.Cost)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

func (s *Server) handleListResults(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	results, err := s.Results.ListResults(r.Context(), userID, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"results": results})
}
