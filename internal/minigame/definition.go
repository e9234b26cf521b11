package minigame

import (
	"errors"
	"time"

	"github.com/nara/thaiquest/internal/intent"
	"github.com/nara/thaiquest/internal/models"
)

// MechanicType tags the gameplay mechanic a level presents. The engine
// treats every mechanic identically; presentation differences live entirely
// in the host UI.
type MechanicType string

const (
	MechanicRunner        MechanicType = "runner"
	MechanicSortMatch     MechanicType = "sort_match"
	MechanicRhythm        MechanicType = "rhythm"
	MechanicCraftSequence MechanicType = "craft_sequence"
	MechanicDialogueTiles MechanicType = "dialogue_tiles"
)

// ErrNoPlayableContent signals that no definition can be built for a level,
// either because the level is unknown or its vocabulary pool is empty.
// Hosts should surface this as a "not available yet" state.
var ErrNoPlayableContent = errors.New("minigame: no playable content for level")

// Difficulty carries the per-level tuning parameters. SpeedFactor is a hook
// for future tuning and is not consumed by the engine itself.
type Difficulty struct {
	PromptCount int     `json:"prompt_count"`
	MaxMistakes int     `json:"max_mistakes"`
	SpeedFactor float64 `json:"speed_factor"`
}

// Definition is everything one session needs: metadata, difficulty and the
// ordered intent targets. Immutable once built; owned read-only by exactly
// one engine instance.
type Definition struct {
	LevelID         int                   `json:"level_id"`
	Title           string                `json:"title"`
	Scene           string                `json:"scene"`
	Mechanic        MechanicType          `json:"mechanic"`
	DurationSeconds int                   `json:"duration_seconds"`
	Difficulty      Difficulty            `json:"difficulty"`
	IntentMap       []models.IntentTarget `json:"intent_map"`
}

// Duration returns the session length as a time.Duration.
func (d Definition) Duration() time.Duration {
	return time.Duration(d.DurationSeconds) * time.Second
}

// BuildDefinition derives a session definition from a level id and its
// vocabulary pool. Pure and reproducible: identical inputs always produce
// an identical definition. The intent map is built from the entire pool;
// the first PromptCount entries become the prompt sequence.
func BuildDefinition(levelID int, vocab []models.VocabItem) (*Definition, error) {
	if len(vocab) == 0 {
		return nil, ErrNoPlayableContent
	}
	meta, ok := levelMetaByID[levelID]
	if !ok {
		return nil, ErrNoPlayableContent
	}

	promptCount := clampInt(4, 10, minInt(len(vocab), 5+levelID/3))
	maxMistakes := maxInt(2, 4-levelID/12)
	durationSeconds := clampInt(30, 90, 45+levelID/2)

	return &Definition{
		LevelID:         levelID,
		Title:           meta.Title,
		Scene:           meta.Scene,
		Mechanic:        meta.Mechanic,
		DurationSeconds: durationSeconds,
		Difficulty: Difficulty{
			PromptCount: promptCount,
			MaxMistakes: maxMistakes,
			SpeedFactor: 1 + float64(levelID)*0.03,
		},
		IntentMap: intent.BuildIntentTargetsFromVocab(vocab),
	}, nil
}

func clampInt(lo, hi, v int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
