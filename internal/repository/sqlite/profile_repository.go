package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sort"

	"github.com/nara/thaiquest/internal/logger"
	"github.com/nara/thaiquest/internal/minigame"
	"github.com/nara/thaiquest/internal/models"
	"github.com/nara/thaiquest/internal/repository"
)

type profileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new ProfileRepository implementation
func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Get(ctx context.Context, userID string) (*models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("getting profile: user_id=%s", userID)

	var p models.Profile
	var levelsJSON, cosmeticsJSON, settingsJSON string
	err := r.db.QueryRowContext(ctx, `
SELECT user_id, tokens, unlocked_levels, unlocked_cosmetics, settings, created_at
FROM user_profile
WHERE user_id = ?
`, userID).Scan(&p.UserID, &p.Tokens, &levelsJSON, &cosmeticsJSON, &settingsJSON, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("profile not found: user_id=%s", userID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get profile: %v", err)
		return nil, err
	}

	p.UnlockedLevels = normalizeUnlockedLevels(levelsJSON)
	p.UnlockedCosmetics = normalizeCosmetics(cosmeticsJSON)
	p.Settings = normalizeSettings(settingsJSON)
	return &p, nil
}

func (r *profileRepository) Upsert(ctx context.Context, profile models.Profile) error {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("upserting profile: user_id=%s, tokens=%d", profile.UserID, profile.Tokens)

	levelsJSON, err := json.Marshal(normalizeLevelSlice(profile.UnlockedLevels))
	if err != nil {
		return err
	}
	cosmetics := profile.UnlockedCosmetics
	if cosmetics == nil {
		cosmetics = []string{}
	}
	cosmeticsJSON, err := json.Marshal(cosmetics)
	if err != nil {
		return err
	}
	settingsJSON, err := json.Marshal(profile.Settings)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO user_profile (user_id, tokens, unlocked_levels, unlocked_cosmetics, settings)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (user_id) DO UPDATE SET
    tokens = excluded.tokens,
    unlocked_levels = excluded.unlocked_levels,
    unlocked_cosmetics = excluded.unlocked_cosmetics,
    settings = excluded.settings
`, profile.UserID, profile.Tokens, string(levelsJSON), string(cosmeticsJSON), string(settingsJSON))
	if err != nil {
		log.Error("failed to upsert profile: %v", err)
	}
	return err
}

// normalizeUnlockedLevels tolerates malformed stored JSON: only integers in
// [1, LevelCount] survive, duplicates collapse, and level 1 is always
// present.
func normalizeUnlockedLevels(raw string) []int {
	var values []int
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return []int{1}
	}
	return normalizeLevelSlice(values)
}

func normalizeLevelSlice(values []int) []int {
	seen := make(map[int]struct{}, len(values))
	out := make([]int, 0, len(values)+1)
	for _, v := range values {
		if v < 1 || v > minigame.LevelCount {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if _, ok := seen[1]; !ok {
		out = append(out, 1)
	}
	sort.Ints(out)
	return out
}

func normalizeCosmetics(raw string) []string {
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil || values == nil {
		return []string{}
	}
	return values
}

// normalizeSettings starts from the defaults so fields missing from the
// stored JSON keep their default values.
func normalizeSettings(raw string) models.RuntimeSettings {
	settings := models.DefaultRuntimeSettings()
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return models.DefaultRuntimeSettings()
	}
	return settings
}
