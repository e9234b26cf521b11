package minigame_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/nara/thaiquest/internal/minigame"
	"github.com/nara/thaiquest/internal/models"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func testDefinition(promptCount, maxMistakes, durationSeconds int) minigame.Definition {
	targets := []models.IntentTarget{
		{Intent: "INTENT_HELLO_1", ThaiScript: "สวัสดี", Romanization: "sawatdi", VocabularyID: "v1"},
		{Intent: "INTENT_THANK_YOU_2", ThaiScript: "ขอบคุณ", Romanization: "khop khun", VocabularyID: "v2"},
		{Intent: "INTENT_WATER_3", ThaiScript: "น้ำ", Romanization: "nam", VocabularyID: "v3"},
		{Intent: "INTENT_RICE_4", ThaiScript: "ข้าว", Romanization: "khao", VocabularyID: "v4"},
	}
	return minigame.Definition{
		LevelID:         1,
		Title:           "Passport Panic",
		Scene:           "airport_arrival",
		Mechanic:        minigame.MechanicSortMatch,
		DurationSeconds: durationSeconds,
		Difficulty: minigame.Difficulty{
			PromptCount: promptCount,
			MaxMistakes: maxMistakes,
			SpeedFactor: 1.03,
		},
		IntentMap: targets,
	}
}

func TestEngine_MistakeBudgetEndsSession(t *testing.T) {
	clock := newFakeClock()
	engine := minigame.NewEngineWithClock(testDefinition(4, 2, 60), clock.Now)
	engine.Start()

	engine.SubmitIntent("INTENT_WRONG_9")
	state := engine.SubmitIntent("INTENT_WRONG_9")

	assert.True(t, state.Complete, "second mistake exhausts the budget")
	assert.Equal(t, 2, state.IncorrectCount)
	assert.Equal(t, 0, state.CorrectCount)

	results := engine.ReportResults()
	assert.Equal(t, 0, results.Accuracy)
	assert.Equal(t, 1, results.UsedVocabCount, "duplicate submissions count once")
}

func TestEngine_CompletingAllPrompts(t *testing.T) {
	clock := newFakeClock()
	engine := minigame.NewEngineWithClock(testDefinition(4, 2, 60), clock.Now)
	engine.Start()

	for _, tag := range []string{"INTENT_HELLO_1", "INTENT_THANK_YOU_2", "INTENT_WATER_3", "INTENT_RICE_4"} {
		clock.Advance(2 * time.Second)
		engine.SubmitIntent(tag)
	}

	state := engine.Snapshot()
	assert.True(t, state.Complete)
	assert.Equal(t, 4, state.CorrectCount)
	assert.Equal(t, 4, state.CurrentPromptIndex)

	results := engine.ReportResults()
	assert.Equal(t, 100, results.Accuracy)
	assert.Equal(t, 4, results.UsedVocabCount)
	assert.Equal(t, int64(8000), results.ElapsedMs)
	// 52 of 60 seconds left on the clock.
	assert.Equal(t, 87, results.SpeedScore)
}

func TestEngine_TimeoutCompletesWithZeroSpeedScore(t *testing.T) {
	clock := newFakeClock()
	engine := minigame.NewEngineWithClock(testDefinition(4, 2, 60), clock.Now)
	engine.Start()

	clock.Advance(61 * time.Second)
	engine.Tick()

	state := engine.Snapshot()
	assert.True(t, state.Complete)
	assert.Equal(t, time.Duration(0), state.Remaining)
	assert.Equal(t, 0, engine.ReportResults().SpeedScore)
}

func TestEngine_InputDiscardedWhenIdlePausedOrComplete(t *testing.T) {
	clock := newFakeClock()
	engine := minigame.NewEngineWithClock(testDefinition(4, 2, 60), clock.Now)

	// Idle: not started yet.
	state := engine.SubmitIntent("INTENT_HELLO_1")
	assert.Equal(t, 0, state.CorrectCount)
	assert.Empty(t, state.UsedIntents)

	engine.Start()
	engine.Pause()
	state = engine.SubmitIntent("INTENT_HELLO_1")
	assert.Equal(t, 0, state.CorrectCount, "paused sessions discard input")

	engine.Resume()
	engine.End()
	state = engine.SubmitIntent("INTENT_HELLO_1")
	assert.Equal(t, 0, state.CorrectCount, "complete sessions discard input")
}

func TestEngine_NoTransitionLeavesComplete(t *testing.T) {
	clock := newFakeClock()
	engine := minigame.NewEngineWithClock(testDefinition(4, 2, 60), clock.Now)
	engine.Start()
	engine.End()

	ended := engine.Snapshot()
	require.True(t, ended.Complete)
	endedAt := *ended.EndedAt

	clock.Advance(10 * time.Second)
	engine.Start()
	engine.Tick()
	engine.Pause()
	engine.Resume()
	engine.End()

	after := engine.Snapshot()
	assert.True(t, after.Complete)
	assert.Equal(t, endedAt, *after.EndedAt, "end is idempotent")
}

func TestEngine_PauseExcludesElapsedTime(t *testing.T) {
	clock := newFakeClock()
	engine := minigame.NewEngineWithClock(testDefinition(4, 2, 60), clock.Now)
	engine.Start()

	clock.Advance(10 * time.Second)
	engine.Pause()
	paused := engine.Snapshot()
	assert.Equal(t, 50*time.Second, paused.Remaining, "pause freezes an accurate remaining value")

	// A long pause burns no session time.
	clock.Advance(30 * time.Second)
	engine.Resume()
	clock.Advance(10 * time.Second)
	engine.Tick()

	state := engine.Snapshot()
	assert.Equal(t, 40*time.Second, state.Remaining, "only 20 unpaused seconds have elapsed")

	engine.End()
	results := engine.ReportResults()
	assert.Equal(t, int64(20000), results.ElapsedMs, "elapsed excludes the paused span")
}

func TestEngine_EndWhilePausedFreezesAtPausePoint(t *testing.T) {
	clock := newFakeClock()
	engine := minigame.NewEngineWithClock(testDefinition(4, 2, 60), clock.Now)
	engine.Start()

	clock.Advance(15 * time.Second)
	engine.Pause()
	clock.Advance(20 * time.Second)
	engine.End()

	state := engine.Snapshot()
	require.True(t, state.Complete)
	assert.Equal(t, 45*time.Second, state.Remaining)
	assert.Equal(t, int64(15000), engine.ReportResults().ElapsedMs)
}

func TestEngine_UsedIntentsKeepRawLogAndDistinctView(t *testing.T) {
	clock := newFakeClock()
	engine := minigame.NewEngineWithClock(testDefinition(4, 10, 60), clock.Now)
	engine.Start()

	engine.SubmitIntent("INTENT_WATER_3")
	engine.SubmitIntent("INTENT_HELLO_1")
	engine.SubmitIntent("INTENT_WATER_3")
	state := engine.SubmitIntent("INTENT_THANK_YOU_2")

	assert.Equal(t,
		[]string{"INTENT_WATER_3", "INTENT_HELLO_1", "INTENT_WATER_3", "INTENT_THANK_YOU_2"},
		state.UsedIntents, "raw log keeps duplicates in submission order")

	results := engine.ReportResults()
	assert.Equal(t,
		[]string{"INTENT_WATER_3", "INTENT_HELLO_1", "INTENT_THANK_YOU_2"},
		results.UsedIntents, "distinct view preserves first-seen order")
	assert.Equal(t, 3, results.UsedVocabCount)
}

func TestEngine_SnapshotIsDefensiveCopy(t *testing.T) {
	clock := newFakeClock()
	engine := minigame.NewEngineWithClock(testDefinition(4, 2, 60), clock.Now)
	engine.Start()
	engine.SubmitIntent("INTENT_HELLO_1")

	snapshot := engine.Snapshot()
	snapshot.Prompts[0].Intent = "INTENT_CORRUPTED_0"
	snapshot.UsedIntents[0] = "INTENT_CORRUPTED_0"
	*snapshot.StartedAt = snapshot.StartedAt.Add(time.Hour)

	fresh := engine.Snapshot()
	assert.Equal(t, "INTENT_HELLO_1", fresh.Prompts[0].Intent, "mutating a snapshot cannot corrupt engine state")
	assert.Equal(t, "INTENT_HELLO_1", fresh.UsedIntents[0])
	assert.Equal(t, clock.Now(), *fresh.StartedAt)
}

func TestEngine_StartIsIdempotent(t *testing.T) {
	clock := newFakeClock()
	engine := minigame.NewEngineWithClock(testDefinition(4, 2, 60), clock.Now)
	engine.Start()
	startedAt := *engine.Snapshot().StartedAt

	clock.Advance(5 * time.Second)
	engine.Start()
	assert.Equal(t, startedAt, *engine.Snapshot().StartedAt, "start is a no-op on a running session")
}

func TestEngine_ZeroAttemptsYieldZeroAccuracy(t *testing.T) {
	clock := newFakeClock()
	engine := minigame.NewEngineWithClock(testDefinition(4, 2, 60), clock.Now)
	engine.Start()
	engine.End()

	results := engine.ReportResults()
	assert.Equal(t, 0, results.Accuracy)
	assert.Equal(t, 0, results.UsedVocabCount)
}
