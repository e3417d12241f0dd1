package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"food-journal/internal/metrics"
	"food-journal/internal/model"
	"food-journal/internal/repository"
	"food-journal/internal/suggest"
	"food-journal/internal/view"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MealServiceConfig holds the time basis for a meal service.
type MealServiceConfig struct {
	Location *time.Location
	Now      func() time.Time
}

// mealService implements MealService.
type mealService struct {
	repo        repository.MealRepository
	invalidator view.Invalidator
	catalog     Catalog
	loc         *time.Location
	now         func() time.Time
	logger      zerolog.Logger
}

// NewMealService creates a new meal service. catalog may be nil.
func NewMealService(
	repo repository.MealRepository,
	invalidator view.Invalidator,
	catalog Catalog,
	cfg MealServiceConfig,
	logger zerolog.Logger,
) MealService {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &mealService{
		repo:        repo,
		invalidator: invalidator,
		catalog:     catalog,
		loc:         cfg.Location,
		now:         cfg.Now,
		logger:      logger.With().Str("service", "meal").Logger(),
	}
}

// Create logs a new meal.
func (s *mealService) Create(ctx context.Context, ownerID string, req *model.MealRequest) (meal *model.Meal, err error) {
	defer func() { metrics.RecordMealOperation("create", err) }()

	if ownerID == "" {
		return nil, model.ErrUnauthorized
	}

	description, quantity, err := validateMealRequest(req)
	if err != nil {
		return nil, err
	}

	consumedAt, err := ResolveConsumedAt(req.Date, req.Time, s.now(), s.loc)
	if err != nil {
		s.logger.Debug().Err(err).Str("date", req.Date).Str("time", req.Time).Msg("rejected meal timestamp")
		return nil, err
	}

	meal = &model.Meal{
		ID:          uuid.New(),
		UserID:      ownerID,
		Description: description,
		Quantity:    quantity,
		ConsumedAt:  consumedAt,
	}

	if err = s.repo.Create(ctx, meal); err != nil {
		s.logger.Error().Err(err).Str("user_id", ownerID).Msg("failed to create meal")
		return nil, fmt.Errorf("failed to create meal: %w", err)
	}

	s.logger.Info().
		Str("meal_id", meal.ID.String()).
		Str("user_id", ownerID).
		Time("consumed_at", meal.ConsumedAt).
		Msg("meal created")

	s.invalidate(ctx, ownerID, view.PathMeals)
	return meal, nil
}

// Update overwrites description, quantity and consumedAt. Without a date or
// time in the request the stored consumedAt is kept.
func (s *mealService) Update(ctx context.Context, ownerID, mealID string, req *model.MealRequest) (meal *model.Meal, err error) {
	defer func() { metrics.RecordMealOperation("update", err) }()

	if ownerID == "" {
		return nil, model.ErrUnauthorized
	}

	id, err := uuid.Parse(mealID)
	if err != nil {
		return nil, model.ErrNotFoundOrUnauthorized
	}

	description, quantity, err := validateMealRequest(req)
	if err != nil {
		return nil, err
	}

	changes := repository.MealChanges{
		Description: description,
		Quantity:    quantity,
	}
	if strings.TrimSpace(req.Date) != "" || strings.TrimSpace(req.Time) != "" {
		consumedAt, err := ResolveConsumedAt(req.Date, req.Time, s.now(), s.loc)
		if err != nil {
			return nil, err
		}
		changes.ConsumedAt = &consumedAt
	}

	meal, err = s.repo.Update(ctx, ownerID, id, changes)
	if err != nil {
		s.logger.Error().Err(err).Str("meal_id", mealID).Msg("failed to update meal")
		return nil, fmt.Errorf("failed to update meal: %w", err)
	}
	if meal == nil {
		s.logger.Debug().Str("meal_id", mealID).Str("user_id", ownerID).Msg("meal not found for owner")
		return nil, model.ErrNotFoundOrUnauthorized
	}

	meal.ConsumedAt = meal.ConsumedAt.In(s.loc)

	s.logger.Info().Str("meal_id", mealID).Str("user_id", ownerID).Msg("meal updated")

	s.invalidate(ctx, ownerID, view.PathMeals)
	return meal, nil
}

// Delete removes the owner's meal.
func (s *mealService) Delete(ctx context.Context, ownerID, mealID string) (err error) {
	defer func() { metrics.RecordMealOperation("delete", err) }()

	if ownerID == "" {
		return model.ErrUnauthorized
	}

	id, err := uuid.Parse(mealID)
	if err != nil {
		return model.ErrNotFoundOrUnauthorized
	}

	deleted, err := s.repo.Delete(ctx, ownerID, id)
	if err != nil {
		s.logger.Error().Err(err).Str("meal_id", mealID).Msg("failed to delete meal")
		return fmt.Errorf("failed to delete meal: %w", err)
	}
	if !deleted {
		return model.ErrNotFoundOrUnauthorized
	}

	s.logger.Info().Str("meal_id", mealID).Str("user_id", ownerID).Msg("meal deleted")

	s.invalidate(ctx, ownerID, view.PathMeals)
	return nil
}

// ListByDay returns the day view for date. An absent or unparsable date
// means today.
func (s *mealService) ListByDay(ctx context.Context, ownerID, date string) (*model.DayView, error) {
	if ownerID == "" {
		return nil, model.ErrUnauthorized
	}

	day := ResolveDay(date, s.now(), s.loc)
	start, end := DayBounds(day)

	meals, err := s.repo.ListBetween(ctx, ownerID, start, end)
	if err != nil {
		s.logger.Error().Err(err).Str("day", day.Format(model.DateLayout)).Msg("failed to list meals")
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}
	if meals == nil {
		meals = []model.Meal{}
	}
	// Returned times carry the journal zone so clients format the same
	// wall clock the meal was logged with.
	for i := range meals {
		meals[i].ConsumedAt = meals[i].ConsumedAt.In(s.loc)
	}

	return &model.DayView{
		Date:  day.Format(model.DateLayout),
		Prev:  day.AddDate(0, 0, -1).Format(model.DateLayout),
		Next:  day.AddDate(0, 0, 1).Format(model.DateLayout),
		Meals: meals,
	}, nil
}

// ListDistinctDescriptions fails open: no session gives an empty list.
func (s *mealService) ListDistinctDescriptions(ctx context.Context, ownerID string) ([]string, error) {
	if ownerID == "" {
		return []string{}, nil
	}

	descriptions, err := s.repo.ListDistinctDescriptions(ctx, ownerID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", ownerID).Msg("failed to list descriptions")
		return nil, fmt.Errorf("failed to list descriptions: %w", err)
	}
	if descriptions == nil {
		descriptions = []string{}
	}
	return descriptions, nil
}

// Suggest filters history and catalogue entries against query.
func (s *mealService) Suggest(ctx context.Context, ownerID, query string) ([]string, error) {
	history, err := s.ListDistinctDescriptions(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	candidates := history
	if s.catalog != nil {
		candidates = suggest.Merge(history, s.catalog.Names())
	}

	return suggest.Filter(candidates, query, suggest.DefaultLimit), nil
}

// invalidate signals that the owner's view is stale. The mutation has already
// committed, so failures are only logged.
func (s *mealService) invalidate(ctx context.Context, ownerID, path string) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.Invalidate(ctx, ownerID, path); err != nil {
		s.logger.Warn().Err(err).Str("user_id", ownerID).Str("path", path).Msg("failed to invalidate view")
	}
}

func validateMealRequest(req *model.MealRequest) (string, *string, error) {
	if req == nil {
		return "", nil, model.ErrDescriptionRequired
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		return "", nil, model.ErrDescriptionRequired
	}

	var quantity *string
	if req.Quantity != nil {
		if q := strings.TrimSpace(*req.Quantity); q != "" {
			quantity = &q
		}
	}

	return description, quantity, nil
}
