package intent

import (
	"github.com/nara/thaiquest/internal/models"
)

// MatcherConfig holds the fuzzy-match tuning knobs. The defaults are
// heuristic product constants; hosts may override them through
// configuration rather than recompiling.
type MatcherConfig struct {
	// MaxEditDistance discards fuzzy candidates further than this many
	// edits from the transcript.
	MaxEditDistance int
	// ConfidenceThreshold is the minimum confidence a fuzzy candidate
	// needs to count as a match.
	ConfidenceThreshold float64
}

// DefaultMatcherConfig returns the product defaults.
func DefaultMatcherConfig() MatcherConfig {
	return MatcherConfig{
		MaxEditDistance:     2,
		ConfidenceThreshold: 0.65,
	}
}

// MatchSpokenIntent resolves a raw transcript against the session's intent
// targets using the default matcher configuration.
func MatchSpokenIntent(transcript string, targets []models.IntentTarget) models.IntentMatchResult {
	return MatchSpokenIntentWith(DefaultMatcherConfig(), transcript, targets)
}

// MatchSpokenIntentWith resolves a transcript in strict priority order:
// exact Thai, exact romanization, fuzzy Thai, fuzzy romanization. The first
// stage that succeeds wins. Deterministic and side-effect free.
func MatchSpokenIntentWith(cfg MatcherConfig, transcript string, targets []models.IntentTarget) models.IntentMatchResult {
	normalizedThai := Normalize(transcript, ModeScript)
	normalizedRoman := Normalize(transcript, ModeRomanized)

	if normalizedThai == "" && normalizedRoman == "" {
		return models.Unmatched("")
	}

	for _, target := range targets {
		if Normalize(target.ThaiScript, ModeScript) == normalizedThai {
			return matched(target, 1, models.MatchExactThai, normalizedThai)
		}
	}

	for _, target := range targets {
		if Normalize(target.Romanization, ModeRomanized) == normalizedRoman {
			return matched(target, 1, models.MatchExactRomanization, normalizedRoman)
		}
	}

	if target, confidence, ok := bestFuzzy(cfg, normalizedThai, targets, ModeScript); ok {
		return matched(target, confidence, models.MatchFuzzyThai, normalizedThai)
	}

	if target, confidence, ok := bestFuzzy(cfg, normalizedRoman, targets, ModeRomanized); ok {
		return matched(target, confidence, models.MatchFuzzyRomanization, normalizedRoman)
	}

	diagnostic := normalizedThai
	if diagnostic == "" {
		diagnostic = normalizedRoman
	}
	return models.Unmatched(diagnostic)
}

func matched(target models.IntentTarget, confidence float64, method models.MatchMethod, normalized string) models.IntentMatchResult {
	return models.IntentMatchResult{
		Matched:              true,
		Intent:               target.Intent,
		VocabularyID:         target.VocabularyID,
		Confidence:           confidence,
		MatchedBy:            method,
		NormalizedTranscript: normalized,
	}
}

// bestFuzzy scans all targets and keeps the candidate with the highest
// confidence. Ties keep the first-seen target in original order, so the
// outcome is deterministic for a given target list.
func bestFuzzy(cfg MatcherConfig, normalized string, targets []models.IntentTarget, mode Mode) (models.IntentTarget, float64, bool) {
	var best models.IntentTarget
	bestConfidence := -1.0

	for _, target := range targets {
		raw := target.ThaiScript
		if mode == ModeRomanized {
			raw = target.Romanization
		}
		candidate := Normalize(raw, mode)
		if candidate == "" || normalized == "" {
			continue
		}
		distance := levenshteinDistance(normalized, candidate)
		if distance > cfg.MaxEditDistance {
			continue
		}
		confidence := fuzzyConfidence(distance, candidate)
		if confidence > bestConfidence {
			best = target
			bestConfidence = confidence
		}
	}

	if bestConfidence >= cfg.ConfidenceThreshold {
		return best, bestConfidence, true
	}
	return models.IntentTarget{}, 0, false
}

// fuzzyConfidence maps an edit distance to [0,1] relative to the candidate
// length (floor 1 so empty-adjacent candidates cannot divide by zero).
func fuzzyConfidence(distance int, candidate string) float64 {
	length := len([]rune(candidate))
	if length < 1 {
		length = 1
	}
	ratio := 1 - float64(distance)/float64(length)
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}
