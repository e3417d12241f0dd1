package service

import (
	"context"

	"food-journal/internal/model"
)

// MealService defines the meal operations. ownerID is the authenticated
// caller; an empty ownerID means no session.
type MealService interface {
	// Create logs a new meal for the owner.
	Create(ctx context.Context, ownerID string, req *model.MealRequest) (*model.Meal, error)

	// Update overwrites an existing meal owned by ownerID.
	Update(ctx context.Context, ownerID, mealID string, req *model.MealRequest) (*model.Meal, error)

	// Delete removes a meal owned by ownerID.
	Delete(ctx context.Context, ownerID, mealID string) error

	// ListByDay returns the owner's meals for a calendar day, newest first.
	ListByDay(ctx context.Context, ownerID, date string) (*model.DayView, error)

	// ListDistinctDescriptions returns the owner's past descriptions, sorted.
	ListDistinctDescriptions(ctx context.Context, ownerID string) ([]string, error)

	// Suggest returns autocomplete entries for query from the owner's history
	// followed by the food catalogue.
	Suggest(ctx context.Context, ownerID, query string) ([]string, error)
}

// PreferenceService defines the preference operations.
type PreferenceService interface {
	// Upsert creates or replaces the owner's preferences.
	Upsert(ctx context.Context, ownerID string, req *model.PreferenceRequest) (*model.PreferenceResponse, error)

	// Get returns the owner's preferences, or defaults when none are saved.
	Get(ctx context.Context, ownerID string) (*model.PreferenceResponse, error)
}

// Catalog supplies the common food names used by Suggest.
type Catalog interface {
	Names() []string
}
