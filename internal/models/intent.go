package models

// MatchMethod identifies which matching stage resolved a transcript.
type MatchMethod string

const (
	MatchExactThai         MatchMethod = "exact_thai"
	MatchExactRomanization MatchMethod = "exact_romanization"
	MatchFuzzyThai         MatchMethod = "fuzzy_thai"
	MatchFuzzyRomanization MatchMethod = "fuzzy_romanization"
	MatchNone              MatchMethod = "none"
)

// IntentMatchResult is the outcome of resolving one transcript against a
// session's intent targets. Produced fresh per call; stateless.
type IntentMatchResult struct {
	Matched              bool        `json:"matched"`
	Intent               string      `json:"intent,omitempty"`
	VocabularyID         string      `json:"vocabulary_id,omitempty"`
	Confidence           float64     `json:"confidence"`
	MatchedBy            MatchMethod `json:"matched_by"`
	NormalizedTranscript string      `json:"normalized_transcript"`
}

// Unmatched returns a no-match result carrying the normalized transcript for
// diagnostics.
func Unmatched(normalized string) IntentMatchResult {
	return IntentMatchResult{
		Matched:              false,
		Confidence:           0,
		MatchedBy:            MatchNone,
		NormalizedTranscript: normalized,
	}
}
