package models

// VocabItem is a single vocabulary entry as served by the vocabulary store.
// Identity is the ID; all other fields are opaque display text.
type VocabItem struct {
	ID                 string `json:"id"`
	ThaiScript         string `json:"thai_script"`
	Romanization       string `json:"romanization"`
	EnglishTranslation string `json:"english_translation"`
	PartOfSpeech       string `json:"part_of_speech,omitempty"`
	DifficultyLevel    int    `json:"difficulty_level,omitempty"`
}

// IntentTarget is a per-session projection of a VocabItem with a unique
// intent tag. Built once when a definition is constructed, never mutated.
type IntentTarget struct {
	Intent             string `json:"intent"`
	ThaiScript         string `json:"thai_script"`
	Romanization       string `json:"romanization"`
	EnglishTranslation string `json:"english_translation"`
	VocabularyID       string `json:"vocabulary_id"`
}

// GamePrompt is a read-only projection of an IntentTarget ordered into the
// challenge sequence of one session.
type GamePrompt struct {
	ID                string `json:"id"`
	Intent            string `json:"intent"`
	LabelThai         string `json:"label_thai"`
	LabelRomanization string `json:"label_romanization"`
	LabelEnglish      string `json:"label_english"`
}
