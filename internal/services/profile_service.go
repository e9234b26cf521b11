package services

import (
	"context"
	"sort"
	"time"

	"github.com/nara/thaiquest/internal/errors"
	"github.com/nara/thaiquest/internal/logger"
	"github.com/nara/thaiquest/internal/minigame"
	"github.com/nara/thaiquest/internal/models"
	"github.com/nara/thaiquest/internal/repository"
)

// Tokens granted for every completed mini-game session.
const completionTokenReward = 25

// ProfileService handles per-user progression: token balance, level
// unlocks, cosmetics and runtime settings.
type ProfileService interface {
	EnsureProfile(ctx context.Context, userID string) (*models.Profile, error)
	UpdateSettings(ctx context.Context, userID string, settings models.RuntimeSettings) (*models.Profile, error)
	AwardCompletion(ctx context.Context, userID string, levelID int) (*models.Profile, error)
	PurchaseCosmetic(ctx context.Context, userID, cosmeticID string, cost int) (*models.Profile, error)
}

type profileService struct {
	profiles repository.ProfileRepository
}

// NewProfileService creates a new ProfileService
func NewProfileService(profiles repository.ProfileRepository) ProfileService {
	return &profileService{profiles: profiles}
}

// EnsureProfile returns the user's profile, creating the default one on
// first contact: zero tokens, level 1 unlocked, default settings.
func (s *profileService) EnsureProfile(ctx context.Context, userID string) (*models.Profile, error) {
	log := logger.FromContext(ctx)

	if userID == "" {
		return nil, errors.NewValidationError("user_id", "cannot be empty")
	}

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if profile != nil {
		return profile, nil
	}

	log.Info("creating default profile: user_id=%s", userID)
	fresh := models.Profile{
		UserID:            userID,
		Tokens:            0,
		UnlockedLevels:    []int{1},
		UnlockedCosmetics: []string{},
		Settings:          models.DefaultRuntimeSettings(),
		CreatedAt:         time.Now(),
	}
	if err := s.profiles.Upsert(ctx, fresh); err != nil {
		log.Error("failed to create profile: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return &fresh, nil
}

func (s *profileService) UpdateSettings(ctx context.Context, userID string, settings models.RuntimeSettings) (*models.Profile, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating settings: user_id=%s", userID)

	profile, err := s.EnsureProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile.Settings = settings
	if err := s.profiles.Upsert(ctx, *profile); err != nil {
		log.Error("failed to update settings: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return profile, nil
}

// AwardCompletion applies the fixed session reward: tokens plus unlocking
// the next level, capped at the last defined level.
func (s *profileService) AwardCompletion(ctx context.Context, userID string, levelID int) (*models.Profile, error) {
	log := logger.FromContext(ctx)

	profile, err := s.EnsureProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.Tokens += completionTokenReward
	next := levelID + 1
	if next >= 1 && next <= minigame.LevelCount && !containsLevel(profile.UnlockedLevels, next) {
		profile.UnlockedLevels = append(profile.UnlockedLevels, next)
		sort.Ints(profile.UnlockedLevels)
		log.Info("unlocked level %d for user %s", next, userID)
	}

	if err := s.profiles.Upsert(ctx, *profile); err != nil {
		log.Error("failed to persist completion award: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("awarded %d tokens to user %s (balance %d)", completionTokenReward, userID, profile.Tokens)
	return profile, nil
}

func (s *profileService) PurchaseCosmetic(ctx context.Context, userID, cosmeticID string, cost int) (*models.Profile, error) {
	log := logger.FromContext(ctx)

	if cosmeticID == "" {
		return nil, errors.NewValidationError("cosmetic_id", "cannot be empty")
	}
	if cost < 0 {
		return nil, errors.NewValidationError("cost", "cannot be negative")
	}

	profile, err := s.EnsureProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, owned := range profile.UnlockedCosmetics {
		if owned == cosmeticID {
			return nil, errors.NewConflictError("cosmetic already owned")
		}
	}
	if profile.Tokens < cost {
		return nil, errors.NewValidationError("tokens", "insufficient balance")
	}

	profile.Tokens -= cost
	profile.UnlockedCosmetics = append(profile.UnlockedCosmetics, cosmeticID)
	if err := s.profiles.Upsert(ctx, *profile); err != nil {
		log.Error("failed to persist cosmetic purchase: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("user %s purchased cosmetic %s for %d tokens", userID, cosmeticID, cost)
	return profile, nil
}

func containsLevel(levels []int, level int) bool {
	for _, l := range levels {
		if l == level {
			return true
		}
	}
	return false
}
