package integration

import (
	"context"
	"testing"
	"time"

	"food-journal/internal/model"
	"food-journal/internal/repository"
	"food-journal/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMealRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	repo := repository.NewMealRepository(testDB.Gateway, zerolog.Nop())

	ctx := context.Background()

	at := func(day, hour int) time.Time {
		return time.Date(2024, 3, day, hour, 0, 0, 0, time.UTC)
	}
	create := func(owner, desc string, consumedAt time.Time) *model.Meal {
		m := &model.Meal{ID: uuid.New(), UserID: owner, Description: desc, ConsumedAt: consumedAt}
		require.NoError(t, repo.Create(ctx, m))
		return m
	}

	t.Run("ListBetween stays inside the day bucket, newest first", func(t *testing.T) {
		CleanupDB(t, testDB.Gateway)

		create("alice", "Late snack yesterday", time.Date(2024, 3, 14, 23, 59, 59, 999_000_000, time.UTC))
		create("alice", "Breakfast", at(15, 8))
		create("alice", "Dinner", at(15, 19))
		create("alice", "Midnight", at(15, 0))
		create("alice", "Tomorrow", at(16, 0))
		create("bob", "Not mine", at(15, 12))

		start, end := service.DayBounds(at(15, 0))
		meals, err := repo.ListBetween(ctx, "alice", start, end)
		require.NoError(t, err)

		require.Len(t, meals, 3)
		assert.Equal(t, "Dinner", meals[0].Description)
		assert.Equal(t, "Breakfast", meals[1].Description)
		assert.Equal(t, "Midnight", meals[2].Description)
		for _, m := range meals {
			assert.Equal(t, "alice", m.UserID)
			assert.False(t, m.ConsumedAt.Before(start))
			assert.False(t, m.ConsumedAt.After(end))
		}
	})

	t.Run("Update only touches the owner's row", func(t *testing.T) {
		CleanupDB(t, testDB.Gateway)

		m := create("alice", "Toast", at(15, 8))
		qty := "2 slices"

		got, err := repo.Update(ctx, "bob", m.ID, repository.MealChanges{Description: "Hijack"})
		require.NoError(t, err)
		assert.Nil(t, got)

		got, err = repo.Update(ctx, "alice", m.ID, repository.MealChanges{Description: "Toast", Quantity: &qty})
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "2 slices", *got.Quantity)
		assert.True(t, got.ConsumedAt.Equal(at(15, 8)))
		assert.False(t, got.UpdatedAt.Before(got.CreatedAt))
	})

	t.Run("Delete reports whether a row was removed", func(t *testing.T) {
		CleanupDB(t, testDB.Gateway)

		m := create("alice", "Soup", at(15, 12))

		deleted, err := repo.Delete(ctx, "bob", m.ID)
		require.NoError(t, err)
		assert.False(t, deleted)

		deleted, err = repo.Delete(ctx, "alice", m.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.Delete(ctx, "alice", m.ID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("ListDistinctDescriptions is sorted and unique per owner", func(t *testing.T) {
		CleanupDB(t, testDB.Gateway)

		for _, d := range []string{"Toast", "Apple", "Toast", "Oatmeal"} {
			create("alice", d, at(15, 8))
		}
		create("bob", "Banana", at(15, 8))

		descriptions, err := repo.ListDistinctDescriptions(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, []string{"Apple", "Oatmeal", "Toast"}, descriptions)
	})
}

func TestPreferenceRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	repo := repository.NewPreferenceRepository(testDB.Gateway, zerolog.Nop())

	ctx := context.Background()
	CleanupDB(t, testDB.Gateway)

	got, err := repo.GetByUserID(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, got)

	first, err := repo.Upsert(ctx, &model.Preference{
		ID:              uuid.New(),
		UserID:          "alice",
		DefaultMealType: model.MealTypeLunch,
		DietaryTags:     []string{"vegan"},
	})
	require.NoError(t, err)

	second, err := repo.Upsert(ctx, &model.Preference{
		ID:              uuid.New(),
		UserID:          "alice",
		DefaultMealType: model.MealTypeSnack,
		DietaryTags:     nil,
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, model.MealTypeSnack, second.DefaultMealType)
	assert.Equal(t, []string{}, second.DietaryTags)

	var count int
	require.NoError(t, testDB.Gateway.QueryRow(ctx, "SELECT COUNT(*) FROM preferences").Scan(&count))
	assert.Equal(t, 1, count)
}
