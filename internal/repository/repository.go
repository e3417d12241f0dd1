package repository

import (
	"context"
	"time"

	"food-journal/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the query surface shared by *pgxpool.Pool, pgx.Tx and
// *database.Gateway.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// MealChanges holds the mutable fields of a meal. A nil ConsumedAt leaves the
// stored timestamp untouched.
type MealChanges struct {
	Description string
	Quantity    *string
	ConsumedAt  *time.Time
}

// MealRepository defines the interface for meal data access operations.
// Every method is scoped to a single owner.
type MealRepository interface {
	// Create inserts a new meal.
	Create(ctx context.Context, meal *model.Meal) error

	// Update overwrites the mutable fields of the owner's meal.
	// Returns nil if no meal with that id belongs to the owner.
	Update(ctx context.Context, ownerID string, id uuid.UUID, changes MealChanges) (*model.Meal, error)

	// Delete removes the owner's meal. Returns false if nothing was removed.
	Delete(ctx context.Context, ownerID string, id uuid.UUID) (bool, error)

	// ListBetween returns the owner's meals with start <= consumed_at <= end,
	// newest first.
	ListBetween(ctx context.Context, ownerID string, start, end time.Time) ([]model.Meal, error)

	// ListDistinctDescriptions returns every description the owner has used,
	// byte-wise ascending.
	ListDistinctDescriptions(ctx context.Context, ownerID string) ([]string, error)
}

// PreferenceRepository defines the interface for preference data access operations.
type PreferenceRepository interface {
	// Upsert creates or replaces the owner's single preference row.
	Upsert(ctx context.Context, pref *model.Preference) (*model.Preference, error)

	// GetByUserID returns the owner's preference, or nil if none was saved.
	GetByUserID(ctx context.Context, ownerID string) (*model.Preference, error)
}
