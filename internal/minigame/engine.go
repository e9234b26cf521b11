package minigame

import (
	"math"
	"time"

	"github.com/nara/thaiquest/internal/models"
)

// Pure transition functions. Each returns the next state and never reads
// the wall clock; "now" is always injected by the caller.

// Start begins the session. No-op if already started.
func Start(def Definition, s State, now time.Time) State {
	if s.Started() {
		return s
	}
	s.StartedAt = &now
	s.EndedAt = nil
	s.Paused = false
	s.PausedAt = nil
	return s
}

// Tick recomputes remaining time. No-op when idle, paused or complete.
// When the clock runs out the session completes.
func Tick(def Definition, s State, now time.Time) State {
	if !s.Started() || s.Paused || s.Complete {
		return s
	}
	remaining := def.Duration() - now.Sub(*s.StartedAt)
	if remaining < 0 {
		remaining = 0
	}
	s.Remaining = remaining
	if remaining == 0 {
		return End(def, s, now)
	}
	return s
}

// Pause freezes the session. Remaining time is ticked first so the frozen
// value is accurate. Paused duration is excluded from elapsed time: Resume
// shifts the start baseline forward by however long the pause lasted.
func Pause(def Definition, s State, now time.Time) State {
	s = Tick(def, s, now)
	s.Paused = true
	if s.Started() && !s.Complete {
		s.PausedAt = &now
	}
	return s
}

// Resume clears the pause. No-op if never started or already complete.
func Resume(def Definition, s State, now time.Time) State {
	if !s.Started() || s.Complete {
		return s
	}
	if s.Paused && s.PausedAt != nil {
		shifted := s.StartedAt.Add(now.Sub(*s.PausedAt))
		s.StartedAt = &shifted
	}
	s.Paused = false
	s.PausedAt = nil
	return s
}

// SubmitIntent applies one resolved intent to the current prompt. Inputs
// arriving while idle, paused or complete are discarded. Every accepted
// intent is recorded in the raw ordered log, duplicates included; results
// derive the distinct view from it.
func SubmitIntent(def Definition, s State, intentTag string, now time.Time) State {
	s = Tick(def, s, now)
	if !s.Started() || s.Complete || s.Paused {
		return s
	}

	prompt := s.CurrentPrompt()
	if prompt == nil {
		return End(def, s, now)
	}

	s.UsedIntents = append(append([]string(nil), s.UsedIntents...), intentTag)

	if intentTag == prompt.Intent {
		s.CorrectCount++
		s.CurrentPromptIndex++
		if s.CurrentPromptIndex >= len(s.Prompts) {
			return End(def, s, now)
		}
	} else {
		s.IncorrectCount++
		if s.IncorrectCount >= def.Difficulty.MaxMistakes {
			return End(def, s, now)
		}
	}
	return s
}

// End completes the session. Idempotent: nothing transitions out of
// Complete. Ending while paused freezes the timeline at the pause point.
func End(def Definition, s State, now time.Time) State {
	if s.Complete {
		return s
	}
	effective := now
	if s.Paused && s.PausedAt != nil {
		effective = *s.PausedAt
	}
	s.Complete = true
	s.EndedAt = &effective
	if s.Started() {
		remaining := def.Duration() - effective.Sub(*s.StartedAt)
		if remaining < 0 {
			remaining = 0
		}
		s.Remaining = remaining
	}
	return s
}

// Results is the immutable outcome snapshot of a completed or interrupted
// session.
type Results struct {
	LevelID        int          `json:"level_id"`
	Title          string       `json:"title"`
	Scene          string       `json:"scene"`
	Mechanic       MechanicType `json:"mechanic"`
	Accuracy       int          `json:"accuracy"`
	SpeedScore     int          `json:"speed_score"`
	UsedVocabCount int          `json:"used_vocab_count"`
	UsedIntents    []string     `json:"used_intents"`
	CorrectCount   int          `json:"correct_count"`
	IncorrectCount int          `json:"incorrect_count"`
	ElapsedMs      int64        `json:"elapsed_ms"`
}

// ReportResults derives the result snapshot from a state. Accuracy is 0
// when no attempts were made; the distinct used-intents view preserves
// first-seen order so results are deterministic.
func ReportResults(def Definition, s State, now time.Time) Results {
	total := s.CorrectCount + s.IncorrectCount
	accuracy := 0
	if total > 0 {
		accuracy = int(math.Round(float64(s.CorrectCount) / float64(total) * 100))
	}

	var elapsed time.Duration
	if s.Started() {
		endedAt := now
		if s.EndedAt != nil {
			endedAt = *s.EndedAt
		}
		elapsed = endedAt.Sub(*s.StartedAt)
	}

	speedScore := 0
	if base := def.Duration(); base > 0 {
		ratio := float64(s.Remaining) / float64(base) * 100
		speedScore = clampInt(0, 100, int(math.Round(ratio)))
	}

	distinct := distinctIntents(s.UsedIntents)

	return Results{
		LevelID:        def.LevelID,
		Title:          def.Title,
		Scene:          def.Scene,
		Mechanic:       def.Mechanic,
		Accuracy:       accuracy,
		SpeedScore:     speedScore,
		UsedVocabCount: len(distinct),
		UsedIntents:    distinct,
		CorrectCount:   s.CorrectCount,
		IncorrectCount: s.IncorrectCount,
		ElapsedMs:      elapsed.Milliseconds(),
	}
}

// distinctIntents keeps the first occurrence of each intent in order.
func distinctIntents(intents []string) []string {
	seen := make(map[string]struct{}, len(intents))
	out := make([]string, 0, len(intents))
	for _, tag := range intents {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// Engine owns the single mutable state reference for one session. Methods
// are not safe for concurrent use; the host must serialize calls, e.g. by
// owning the engine from a single goroutine or under one lock.
type Engine struct {
	def   Definition
	state State
	clock func() time.Time
}

// NewEngine constructs an idle engine for a definition.
func NewEngine(def Definition) *Engine {
	return &Engine{
		def:   def,
		state: NewState(def),
		clock: time.Now,
	}
}

// NewEngineWithClock constructs an engine with an injected clock for tests.
func NewEngineWithClock(def Definition, clock func() time.Time) *Engine {
	e := NewEngine(def)
	e.clock = clock
	return e
}

func (e *Engine) Definition() Definition { return e.def }

// Snapshot returns a defensive deep copy of the current state.
func (e *Engine) Snapshot() State { return e.state.Clone() }

// CurrentPrompt returns a copy of the prompt awaiting an answer, or nil.
func (e *Engine) CurrentPrompt() *models.GamePrompt { return e.state.CurrentPrompt() }

func (e *Engine) Start()  { e.state = Start(e.def, e.state, e.clock()) }
func (e *Engine) Tick()   { e.state = Tick(e.def, e.state, e.clock()) }
func (e *Engine) Pause()  { e.state = Pause(e.def, e.state, e.clock()) }
func (e *Engine) Resume() { e.state = Resume(e.def, e.state, e.clock()) }
func (e *Engine) End()    { e.state = End(e.def, e.state, e.clock()) }

// SubmitIntent applies an intent and returns a snapshot of the resulting
// state.
func (e *Engine) SubmitIntent(intentTag string) State {
	e.state = SubmitIntent(e.def, e.state, intentTag, e.clock())
	return e.state.Clone()
}

// ReportResults derives the results snapshot from the current state.
func (e *Engine) ReportResults() Results {
	return ReportResults(e.def, e.state, e.clock())
}
