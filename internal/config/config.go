package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr     string
	DBPath   string
	LogLevel string

	// Speech recognition collaborator. An empty URL means recognition is
	// unsupported on this deployment; voice input degrades to unmatched.
	SpeechServiceURL string
	SpeechLocale     string

	RecognitionWorkerCount int
	RecognitionQueueSize   int

	// Fuzzy intent-match tuning. Heuristic product constants surfaced as
	// configuration rather than hard-coded law.
	MatchMaxEditDistance     int
	MatchConfidenceThreshold float64

	LevelVocabLimit int
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                     envOr("ADDR", ":8080"),
		DBPath:                   envOr("DB_PATH", "file:thaiquest.db"),
		LogLevel:                 envOr("LOG_LEVEL", "INFO"),
		SpeechServiceURL:         envOr("SPEECH_SERVICE_URL", ""),
		SpeechLocale:             envOr("SPEECH_LOCALE", "th-TH"),
		RecognitionWorkerCount:   envIntOr("RECOGNITION_WORKER_COUNT", 2),
		RecognitionQueueSize:     envIntOr("RECOGNITION_QUEUE_SIZE", 32),
		MatchMaxEditDistance:     envIntOr("MATCH_MAX_EDIT_DISTANCE", 2),
		MatchConfidenceThreshold: envFloatOr("MATCH_CONFIDENCE_THRESHOLD", 0.65),
		LevelVocabLimit:          envIntOr("LEVEL_VOCAB_LIMIT", 12),
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.RecognitionWorkerCount <= 0 {
		return fmt.Errorf("RECOGNITION_WORKER_COUNT must be positive")
	}
	if c.RecognitionQueueSize <= 0 {
		return fmt.Errorf("RECOGNITION_QUEUE_SIZE must be positive")
	}
	if c.MatchMaxEditDistance < 0 {
		return fmt.Errorf("MATCH_MAX_EDIT_DISTANCE cannot be negative")
	}
	if c.MatchConfidenceThreshold < 0 || c.MatchConfidenceThreshold > 1 {
		return fmt.Errorf("MATCH_CONFIDENCE_THRESHOLD must be within [0,1]")
	}
	if c.LevelVocabLimit <= 0 {
		return fmt.Errorf("LEVEL_VOCAB_LIMIT must be positive")
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envFloatOr(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("invalid value for %s=%q, using default %g", key, v, def)
	}
	return def
}
