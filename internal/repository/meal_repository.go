package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"food-journal/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const mealColumns = "id, user_id, description, quantity, consumed_at, created_at, updated_at"

// mealRepository implements the MealRepository interface using PostgreSQL.
type mealRepository struct {
	db     DBTX
	logger zerolog.Logger
}

// NewMealRepository creates a new PostgreSQL-backed meal repository.
func NewMealRepository(db DBTX, logger zerolog.Logger) MealRepository {
	return &mealRepository{
		db:     db,
		logger: logger.With().Str("repository", "meal").Logger(),
	}
}

// Create inserts a new meal. CreatedAt and UpdatedAt are filled from the row.
func (r *mealRepository) Create(ctx context.Context, meal *model.Meal) error {
	query := `
		INSERT INTO meals (id, user_id, description, quantity, consumed_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		meal.ID,
		meal.UserID,
		meal.Description,
		meal.Quantity,
		meal.ConsumedAt,
	).Scan(&meal.CreatedAt, &meal.UpdatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("meal_id", meal.ID.String()).
			Msg("failed to create meal")
		return fmt.Errorf("failed to create meal: %w", err)
	}

	r.logger.Debug().
		Str("meal_id", meal.ID.String()).
		Msg("meal created successfully")

	return nil
}

// Update overwrites description, quantity and (optionally) consumed_at in a
// single statement guarded by the owner.
func (r *mealRepository) Update(ctx context.Context, ownerID string, id uuid.UUID, changes MealChanges) (*model.Meal, error) {
	query := `
		UPDATE meals
		SET description = $3,
			quantity = $4,
			consumed_at = COALESCE($5, consumed_at),
			updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + mealColumns

	meal, err := scanMeal(r.db.QueryRow(ctx, query,
		id,
		ownerID,
		changes.Description,
		changes.Quantity,
		changes.ConsumedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("meal_id", id.String()).Msg("meal not found for owner")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("meal_id", id.String()).Msg("failed to update meal")
		return nil, fmt.Errorf("failed to update meal: %w", err)
	}

	return meal, nil
}

// Delete removes the owner's meal.
func (r *mealRepository) Delete(ctx context.Context, ownerID string, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM meals WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		r.logger.Error().Err(err).Str("meal_id", id.String()).Msg("failed to delete meal")
		return false, fmt.Errorf("failed to delete meal: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// ListBetween returns the owner's meals inside the inclusive range, newest first.
func (r *mealRepository) ListBetween(ctx context.Context, ownerID string, start, end time.Time) ([]model.Meal, error) {
	query := `
		SELECT ` + mealColumns + `
		FROM meals
		WHERE user_id = $1 AND consumed_at >= $2 AND consumed_at <= $3
		ORDER BY consumed_at DESC
	`

	rows, err := r.db.Query(ctx, query, ownerID, start, end)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query meals")
		return nil, fmt.Errorf("failed to query meals: %w", err)
	}
	defer rows.Close()

	meals := []model.Meal{}
	for rows.Next() {
		meal, err := scanMeal(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan meal row")
			return nil, fmt.Errorf("failed to scan meal: %w", err)
		}
		meals = append(meals, *meal)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating meal rows")
		return nil, fmt.Errorf("error iterating meals: %w", err)
	}

	return meals, nil
}

// ListDistinctDescriptions returns the owner's distinct descriptions.
// Distinctness is case-sensitive and ordering is byte-wise.
func (r *mealRepository) ListDistinctDescriptions(ctx context.Context, ownerID string) ([]string, error) {
	query := `
		SELECT DISTINCT description COLLATE "C" AS description
		FROM meals
		WHERE user_id = $1
		ORDER BY description
	`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query meal descriptions")
		return nil, fmt.Errorf("failed to query meal descriptions: %w", err)
	}
	defer rows.Close()

	descriptions := []string{}
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan meal description: %w", err)
		}
		descriptions = append(descriptions, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating meal descriptions: %w", err)
	}

	return descriptions, nil
}

func scanMeal(row pgx.Row) (*model.Meal, error) {
	var m model.Meal
	if err := row.Scan(
		&m.ID,
		&m.UserID,
		&m.Description,
		&m.Quantity,
		&m.ConsumedAt,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}
