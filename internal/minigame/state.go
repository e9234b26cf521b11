package minigame

import (
	"fmt"
	"time"

	"github.com/nara/thaiquest/internal/models"
)

// State is the mutable record of one playthrough, modeled as an explicit
// value: every transition takes the current state plus an injected "now"
// and returns the next state, so the machine is testable without a clock.
// The owning engine holds the single live reference; anything handed to
// callers is a deep copy.
type State struct {
	StartedAt          *time.Time
	EndedAt            *time.Time
	PausedAt           *time.Time
	Paused             bool
	Complete           bool
	CurrentPromptIndex int
	Prompts            []models.GamePrompt
	CorrectCount       int
	IncorrectCount     int
	UsedIntents        []string
	Remaining          time.Duration
}

// NewState builds the initial (idle) state for a definition: the first
// PromptCount targets become the ordered prompt sequence.
func NewState(def Definition) State {
	n := def.Difficulty.PromptCount
	if n > len(def.IntentMap) {
		n = len(def.IntentMap)
	}
	prompts := make([]models.GamePrompt, 0, n)
	for i, target := range def.IntentMap[:n] {
		prompts = append(prompts, models.GamePrompt{
			ID:                fmt.Sprintf("%s-%d", target.VocabularyID, i),
			Intent:            target.Intent,
			LabelThai:         target.ThaiScript,
			LabelRomanization: target.Romanization,
			LabelEnglish:      target.EnglishTranslation,
		})
	}
	return State{
		Prompts:   prompts,
		Remaining: def.Duration(),
	}
}

// CurrentPrompt returns the prompt awaiting an answer, or nil when the
// sequence is exhausted.
func (s State) CurrentPrompt() *models.GamePrompt {
	if s.CurrentPromptIndex < 0 || s.CurrentPromptIndex >= len(s.Prompts) {
		return nil
	}
	prompt := s.Prompts[s.CurrentPromptIndex]
	return &prompt
}

// Started reports whether the session has ever been started.
func (s State) Started() bool {
	return s.StartedAt != nil
}

// Clone returns a deep copy. Mutating the copy cannot corrupt the engine's
// live state.
func (s State) Clone() State {
	out := s
	out.Prompts = append([]models.GamePrompt(nil), s.Prompts...)
	out.UsedIntents = append([]string(nil), s.UsedIntents...)
	if s.StartedAt != nil {
		t := *s.StartedAt
		out.StartedAt = &t
	}
	if s.EndedAt != nil {
		t := *s.EndedAt
		out.EndedAt = &t
	}
	if s.PausedAt != nil {
		t := *s.PausedAt
		out.PausedAt = &t
	}
	return out
}
