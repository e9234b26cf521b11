package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(timeoutMiddleware(30 * time.Second))

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Get("/levels", s.handleLevels)
		r.Get("/levels/{id}/definition", s.handleLevelDefinition)

		r.Post("/sessions", s.handleCreateSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", s.handleSessionSnapshot)
			r.Delete("/", s.handleCloseSession)
			r.Post("/start", s.handleStartSession)
			r.Post("/tick", s.handleTickSession)
			r.Post("/pause", s.handlePauseSession)
			r.Post("/resume", s.handleResumeSession)
			r.Post("/end", s.handleEndSession)
			r.Post("/intents", s.handleSubmitIntent)
			r.Post("/voice", s.handleSubmitVoice)
			r.Get("/results", s.handleSessionResults)
		})

		r.Get("/reviews/due", s.handleDueReviews)
		r.Post("/reviews/rate", s.handleRateWord)
		r.Post("/reviews/complete", s.handleCompleteReview)
		r.Get("/reviews/today", s.handleReviewedToday)

		r.Get("/profiles/{userID}", s.handleGetProfile)
		r.Put("/profiles/{userID}/settings", s.handleUpdateSettings)
		r.Post("/profiles/{userID}/cosmetics", s.handlePurchaseCosmetic)

		r.Get("/results", s.handleListResults)
	})

	return r
}
