package api

import (
	"database/sql"

	"github.com/nara/thaiquest/internal/repository"
	"github.com/nara/thaiquest/internal/services"
)

type Server struct {
	DB       *sql.DB
	Sessions services.SessionService
	Reviews  services.ReviewService
	Profiles services.ProfileService
	Results  repository.ResultRepository
}
