package intent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/nara/thaiquest/internal/intent"
	"github.com/nara/thaiquest/internal/models"
)

func TestBuildIntentTargetsFromVocab(t *testing.T) {
	vocab := []models.VocabItem{
		{ID: "v1", ThaiScript: "สวัสดี", Romanization: "sawatdi", EnglishTranslation: "hello"},
		{ID: "v2", ThaiScript: "ขอบคุณ", Romanization: "khop khun", EnglishTranslation: "thank you"},
		{ID: "v3", ThaiScript: "ข้าวผัด", Romanization: "khao phat", EnglishTranslation: "fried rice & egg"},
	}

	targets := intent.BuildIntentTargetsFromVocab(vocab)
	require.Len(t, targets, 3)

	assert.Equal(t, "INTENT_HELLO_1", targets[0].Intent)
	assert.Equal(t, "INTENT_THANK_YOU_2", targets[1].Intent)
	assert.Equal(t, "INTENT_FRIED_RICE_EGG_3", targets[2].Intent)

	assert.Equal(t, "v1", targets[0].VocabularyID)
	assert.Equal(t, "สวัสดี", targets[0].ThaiScript)
	assert.Equal(t, "sawatdi", targets[0].Romanization)
	assert.Equal(t, "hello", targets[0].EnglishTranslation)
}

func TestBuildIntentTargetsFromVocab_DuplicateTranslationsStayUnique(t *testing.T) {
	vocab := []models.VocabItem{
		{ID: "v1", EnglishTranslation: "water"},
		{ID: "v2", EnglishTranslation: "water"},
	}

	targets := intent.BuildIntentTargetsFromVocab(vocab)
	require.Len(t, targets, 2)
	assert.Equal(t, "INTENT_WATER_1", targets[0].Intent)
	assert.Equal(t, "INTENT_WATER_2", targets[1].Intent)
	assert.NotEqual(t, targets[0].Intent, targets[1].Intent)
}

func TestBuildIntentTargetsFromVocab_NonLatinTranslationFallsBack(t *testing.T) {
	vocab := []models.VocabItem{
		{ID: "v1", EnglishTranslation: "ข้าว"},
	}

	targets := intent.BuildIntentTargetsFromVocab(vocab)
	require.Len(t, targets, 1)
	assert.Equal(t, "INTENT_INTENT_1", targets[0].Intent)
}

func TestBuildIntentTargetsFromVocab_Empty(t *testing.T) {
	assert.Empty(t, intent.BuildIntentTargetsFromVocab(nil))
}
