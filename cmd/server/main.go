package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nara/thaiquest/internal/api"
	"github.com/nara/thaiquest/internal/config"
	"github.com/nara/thaiquest/internal/db"
	"github.com/nara/thaiquest/internal/intent"
	"github.com/nara/thaiquest/internal/logger"
	"github.com/nara/thaiquest/internal/repository/sqlite"
	"github.com/nara/thaiquest/internal/services"
	"github.com/nara/thaiquest/internal/speech"
	"github.com/nara/thaiquest/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("ThaiQuest Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("speech_service_url=%s", cfg.SpeechServiceURL)
	log.Debug("speech_locale=%s", cfg.SpeechLocale)
	log.Debug("recognition_worker_count=%d", cfg.RecognitionWorkerCount)
	log.Debug("recognition_queue_size=%d", cfg.RecognitionQueueSize)
	log.Debug("match_max_edit_distance=%d", cfg.MatchMaxEditDistance)
	log.Debug("match_confidence_threshold=%g", cfg.MatchConfidenceThreshold)
	log.Debug("level_vocab_limit=%d", cfg.LevelVocabLimit)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Initialize worker pool for speech recognition
	recognitionPool := worker.NewPool(cfg.RecognitionWorkerCount, cfg.RecognitionQueueSize)

	// Initialize repositories
	vocabRepo := sqlite.NewVocabularyRepository(database.DB)
	progressRepo := sqlite.NewProgressRepository(database.DB)
	profileRepo := sqlite.NewProfileRepository(database.DB)
	resultRepo := sqlite.NewResultRepository(database.DB)

	// Initialize services
	profileService := services.NewProfileService(profileRepo)
	reviewService := services.NewReviewService(progressRepo, vocabRepo, resultRepo)
	sessionService := services.NewSessionService(services.SessionServiceOptions{
		Vocab:      vocabRepo,
		Results:    resultRepo,
		Profiles:   profileService,
		Recognizer: speech.New(cfg.SpeechServiceURL),
		Pool:       recognitionPool,
		MatcherCfg: intent.MatcherConfig{
			MaxEditDistance:     cfg.MatchMaxEditDistance,
			ConfidenceThreshold: cfg.MatchConfidenceThreshold,
		},
		Locale:     cfg.SpeechLocale,
		VocabLimit: cfg.LevelVocabLimit,
	})

	srv := &api.Server{
		DB:       database.DB,
		Sessions: sessionService,
		Reviews:  reviewService,
		Profiles: profileService,
		Results:  resultRepo,
	}

	ctx, cancel := context.WithCancel(context.Background())
	recognitionPool.Start(ctx)

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Cancel worker context
	log.Debug("stopping worker pool")
	cancel()

	// Shutdown HTTP server
	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Wait for workers to finish
	recognitionPool.Stop()

	log.Info("===========================================")
	log.Info("ThaiQuest Server Stopped")
	log.Info("===========================================")
}
