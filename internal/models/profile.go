package models

import "time"

// RuntimeSettings are the player-facing toggles stored with the profile.
type RuntimeSettings struct {
	VoiceModeEnabled   bool `json:"voice_mode_enabled"`
	PublicModeEnabled  bool `json:"public_mode_enabled"`
	ShowRomanization   bool `json:"show_romanization"`
	ShowEnglishMeaning bool `json:"show_english_meaning"`
}

// DefaultRuntimeSettings returns the settings applied to new profiles and
// used to backfill malformed stored values.
func DefaultRuntimeSettings() RuntimeSettings {
	return RuntimeSettings{
		VoiceModeEnabled:   true,
		PublicModeEnabled:  false,
		ShowRomanization:   true,
		ShowEnglishMeaning: false,
	}
}

// Profile is the per-user progression state: token balance, unlocked levels
// and runtime settings. Level 1 is always unlocked.
type Profile struct {
	UserID            string          `json:"user_id"`
	Tokens            int             `json:"tokens"`
	UnlockedLevels    []int           `json:"unlocked_levels"`
	UnlockedCosmetics []string        `json:"unlocked_cosmetics"`
	Settings          RuntimeSettings `json:"settings"`
	CreatedAt         time.Time       `json:"created_at"`
}
