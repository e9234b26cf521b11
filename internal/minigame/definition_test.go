package minigame_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/nara/thaiquest/internal/minigame"
	"github.com/nara/thaiquest/internal/models"
)

func vocabPool(n int) []models.VocabItem {
	pool := make([]models.VocabItem, 0, n)
	for i := 0; i < n; i++ {
		pool = append(pool, models.VocabItem{
			ID:                 fmt.Sprintf("v%d", i+1),
			ThaiScript:         fmt.Sprintf("คำ%d", i+1),
			Romanization:       fmt.Sprintf("kham %d", i+1),
			EnglishTranslation: fmt.Sprintf("word %d", i+1),
		})
	}
	return pool
}

func TestBuildDefinition_MidGameTuning(t *testing.T) {
	def, err := minigame.BuildDefinition(12, vocabPool(20))
	require.NoError(t, err)

	assert.Equal(t, 12, def.LevelID)
	assert.Equal(t, 9, def.Difficulty.PromptCount, "clamp(4,10,min(20,5+4))")
	assert.Equal(t, 3, def.Difficulty.MaxMistakes, "max(2,4-1)")
	assert.Equal(t, 51, def.DurationSeconds, "clamp(30,90,45+6)")
	assert.InDelta(t, 1.36, def.Difficulty.SpeedFactor, 1e-9)
	assert.Len(t, def.IntentMap, 20, "intent map is built from the entire pool")
	assert.Equal(t, "Symptom Match", def.Title)
	assert.Equal(t, minigame.MechanicSortMatch, def.Mechanic)
}

func TestBuildDefinition_ClampsAtExtremes(t *testing.T) {
	low, err := minigame.BuildDefinition(1, vocabPool(3))
	require.NoError(t, err)
	assert.Equal(t, 4, low.Difficulty.PromptCount, "prompt count clamps up to 4 even for tiny pools")
	assert.Equal(t, 4, low.Difficulty.MaxMistakes)
	assert.Equal(t, 45, low.DurationSeconds)

	high, err := minigame.BuildDefinition(30, vocabPool(25))
	require.NoError(t, err)
	assert.Equal(t, 10, high.Difficulty.PromptCount, "prompt count caps at 10")
	assert.Equal(t, 2, high.Difficulty.MaxMistakes, "mistake budget floors at 2")
	assert.Equal(t, 60, high.DurationSeconds)
}

func TestBuildDefinition_EmptyPool(t *testing.T) {
	def, err := minigame.BuildDefinition(1, nil)
	assert.Nil(t, def)
	assert.ErrorIs(t, err, minigame.ErrNoPlayableContent)
}

func TestBuildDefinition_UnknownLevel(t *testing.T) {
	def, err := minigame.BuildDefinition(99, vocabPool(5))
	assert.Nil(t, def)
	assert.ErrorIs(t, err, minigame.ErrNoPlayableContent)
}

func TestBuildDefinition_Reproducible(t *testing.T) {
	pool := vocabPool(12)

	first, err := minigame.BuildDefinition(7, pool)
	require.NoError(t, err)
	second, err := minigame.BuildDefinition(7, pool)
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical inputs must build identical definitions")
}

func TestNewState_PromptSequenceCappedByPool(t *testing.T) {
	def, err := minigame.BuildDefinition(1, vocabPool(3))
	require.NoError(t, err)

	state := minigame.NewState(*def)
	assert.Len(t, state.Prompts, 3, "prompt sequence cannot exceed the pool")
	assert.Equal(t, def.Duration(), state.Remaining)
	assert.False(t, state.Started())
}

func TestLookupLevelMeta(t *testing.T) {
	meta, ok := minigame.LookupLevelMeta(1)
	require.True(t, ok)
	assert.Equal(t, "Passport Panic", meta.Title)

	_, ok = minigame.LookupLevelMeta(31)
	assert.False(t, ok)

	assert.Len(t, minigame.AllLevelMeta(), minigame.LevelCount)
}
