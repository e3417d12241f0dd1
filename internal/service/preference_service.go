package service

import (
	"context"
	"fmt"
	"strings"

	"food-journal/internal/model"
	"food-journal/internal/repository"
	"food-journal/internal/view"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// preferenceService implements PreferenceService.
type preferenceService struct {
	repo        repository.PreferenceRepository
	invalidator view.Invalidator
	logger      zerolog.Logger
}

// NewPreferenceService creates a new preference service.
func NewPreferenceService(repo repository.PreferenceRepository, invalidator view.Invalidator, logger zerolog.Logger) PreferenceService {
	return &preferenceService{
		repo:        repo,
		invalidator: invalidator,
		logger:      logger.With().Str("service", "preference").Logger(),
	}
}

// Upsert validates and saves the owner's preferences.
func (s *preferenceService) Upsert(ctx context.Context, ownerID string, req *model.PreferenceRequest) (*model.PreferenceResponse, error) {
	if ownerID == "" {
		return nil, model.ErrUnauthorized
	}
	if req == nil {
		req = &model.PreferenceRequest{}
	}

	mealType := model.MealType(strings.TrimSpace(req.DefaultMealType))
	if mealType == "" {
		mealType = model.MealTypeBreakfast
	}
	if !mealType.Valid() {
		return nil, model.ErrInvalidMealType
	}

	saved, err := s.repo.Upsert(ctx, &model.Preference{
		ID:              uuid.New(),
		UserID:          ownerID,
		DefaultMealType: mealType,
		DietaryTags:     ParseTags(req.DietaryTags),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", ownerID).Msg("failed to save preferences")
		return nil, fmt.Errorf("failed to save preferences: %w", err)
	}

	s.logger.Info().
		Str("user_id", ownerID).
		Str("default_meal_type", string(saved.DefaultMealType)).
		Int("tag_count", len(saved.DietaryTags)).
		Msg("preferences saved")

	if s.invalidator != nil {
		if err := s.invalidator.Invalidate(ctx, ownerID, view.PathProfile); err != nil {
			s.logger.Warn().Err(err).Str("user_id", ownerID).Msg("failed to invalidate profile view")
		}
	}

	return &model.PreferenceResponse{
		DefaultMealType: saved.DefaultMealType,
		DietaryTags:     saved.DietaryTags,
		Exists:          true,
	}, nil
}

// Get returns saved preferences, or Breakfast with no tags.
func (s *preferenceService) Get(ctx context.Context, ownerID string) (*model.PreferenceResponse, error) {
	if ownerID == "" {
		return nil, model.ErrUnauthorized
	}

	pref, err := s.repo.GetByUserID(ctx, ownerID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", ownerID).Msg("failed to load preferences")
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}

	if pref == nil {
		return &model.PreferenceResponse{
			DefaultMealType: model.MealTypeBreakfast,
			DietaryTags:     []string{},
			Exists:          false,
		}, nil
	}

	return &model.PreferenceResponse{
		DefaultMealType: pref.DefaultMealType,
		DietaryTags:     pref.DietaryTags,
		Exists:          true,
	}, nil
}

// ParseTags splits comma separated input into trimmed, non-empty tags.
// Repeats are dropped, keeping the first occurrence.
func ParseTags(raw string) []string {
	tags := []string{}
	seen := map[string]struct{}{}
	for _, part := range strings.Split(raw, ",") {
		tag := strings.TrimSpace(part)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}
