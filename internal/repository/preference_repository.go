package repository

import (
	"context"
	"errors"
	"fmt"

	"food-journal/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// preferenceRepository implements the PreferenceRepository interface using PostgreSQL.
type preferenceRepository struct {
	db     DBTX
	logger zerolog.Logger
}

// NewPreferenceRepository creates a new PostgreSQL-backed preference repository.
func NewPreferenceRepository(db DBTX, logger zerolog.Logger) PreferenceRepository {
	return &preferenceRepository{
		db:     db,
		logger: logger.With().Str("repository", "preference").Logger(),
	}
}

// Upsert inserts the preference or, when the owner already has one, replaces
// its meal type and tags. The row id and created_at of an existing row are kept.
func (r *preferenceRepository) Upsert(ctx context.Context, pref *model.Preference) (*model.Preference, error) {
	tags := pref.DietaryTags
	if tags == nil {
		tags = []string{}
	}

	query := `
		INSERT INTO preferences (id, user_id, default_meal_type, dietary_tags)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET default_meal_type = EXCLUDED.default_meal_type,
			dietary_tags = EXCLUDED.dietary_tags,
			updated_at = NOW()
		RETURNING id, user_id, default_meal_type, dietary_tags, created_at, updated_at
	`

	saved, err := scanPreference(r.db.QueryRow(ctx, query,
		pref.ID,
		pref.UserID,
		string(pref.DefaultMealType),
		tags,
	))
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", pref.UserID).Msg("failed to upsert preference")
		return nil, fmt.Errorf("failed to upsert preference: %w", err)
	}

	return saved, nil
}

// GetByUserID returns the owner's preference or nil.
func (r *preferenceRepository) GetByUserID(ctx context.Context, ownerID string) (*model.Preference, error) {
	query := `
		SELECT id, user_id, default_meal_type, dietary_tags, created_at, updated_at
		FROM preferences
		WHERE user_id = $1
	`

	pref, err := scanPreference(r.db.QueryRow(ctx, query, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", ownerID).Msg("failed to query preference")
		return nil, fmt.Errorf("failed to query preference: %w", err)
	}

	return pref, nil
}

func scanPreference(row pgx.Row) (*model.Preference, error) {
	var (
		p        model.Preference
		mealType string
	)
	if err := row.Scan(&p.ID, &p.UserID, &mealType, &p.DietaryTags, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.DefaultMealType = model.MealType(mealType)
	if p.DietaryTags == nil {
		p.DietaryTags = []string{}
	}
	return &p, nil
}
