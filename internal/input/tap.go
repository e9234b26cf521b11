package input

import (
	"github.com/nara/thaiquest/internal/intent"
	"github.com/nara/thaiquest/internal/models"
)

// TapAdapter resolves tap input. Tapping a tile submits the tile's Thai
// label, which goes through the same matcher as speech so both input paths
// produce identical IntentMatchResult values.
type TapAdapter struct {
	cfg intent.MatcherConfig
}

func NewTapAdapter(cfg intent.MatcherConfig) *TapAdapter {
	return &TapAdapter{cfg: cfg}
}

// Resolve maps the tapped tile text to an intent. A tap on a real tile
// always exact-matches; free-typed input falls through the fuzzy stages like
// any transcript would.
func (a *TapAdapter) Resolve(text string, targets []models.IntentTarget) models.IntentMatchResult {
	return intent.MatchSpokenIntentWith(a.cfg, text, targets)
}
