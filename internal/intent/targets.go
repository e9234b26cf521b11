package intent

import (
	"fmt"
	"strings"

	"github.com/nara/thaiquest/internal/models"
)

// BuildIntentTargetsFromVocab derives one intent target per vocabulary item,
// preserving input order. The intent tag is uppercase snake-case derived
// from the translation text, made unique by a positional suffix.
func BuildIntentTargetsFromVocab(vocab []models.VocabItem) []models.IntentTarget {
	targets := make([]models.IntentTarget, 0, len(vocab))
	for i, item := range vocab {
		base := intentTagBase(item.EnglishTranslation)
		targets = append(targets, models.IntentTarget{
			Intent:             fmt.Sprintf("INTENT_%s_%d", strings.ToUpper(base), i+1),
			ThaiScript:         item.ThaiScript,
			Romanization:       item.Romanization,
			EnglishTranslation: item.EnglishTranslation,
			VocabularyID:       item.ID,
		})
	}
	return targets
}

// intentTagBase lowercases the translation and collapses every non
// alphanumeric run into a single underscore. Falls back to "intent" when
// nothing survives.
func intentTagBase(translation string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(translation) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastUnderscore = false
		} else if !lastUnderscore {
			b.WriteRune('_')
			lastUnderscore = true
		}
	}
	base := strings.Trim(b.String(), "_")
	if base == "" {
		return "intent"
	}
	return base
}
