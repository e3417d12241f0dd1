package service

import (
	"context"
	"time"

	"food-journal/internal/model"
	"food-journal/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockMealRepository is a mock implementation of MealRepository.
type MockMealRepository struct {
	mock.Mock
}

func (m *MockMealRepository) Create(ctx context.Context, meal *model.Meal) error {
	args := m.Called(ctx, meal)
	return args.Error(0)
}

func (m *MockMealRepository) Update(ctx context.Context, ownerID string, id uuid.UUID, changes repository.MealChanges) (*model.Meal, error) {
	args := m.Called(ctx, ownerID, id, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Meal), args.Error(1)
}

func (m *MockMealRepository) Delete(ctx context.Context, ownerID string, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, ownerID, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockMealRepository) ListBetween(ctx context.Context, ownerID string, start, end time.Time) ([]model.Meal, error) {
	args := m.Called(ctx, ownerID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Meal), args.Error(1)
}

func (m *MockMealRepository) ListDistinctDescriptions(ctx context.Context, ownerID string) ([]string, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockPreferenceRepository is a mock implementation of PreferenceRepository.
type MockPreferenceRepository struct {
	mock.Mock
}

func (m *MockPreferenceRepository) Upsert(ctx context.Context, pref *model.Preference) (*model.Preference, error) {
	args := m.Called(ctx, pref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Preference), args.Error(1)
}

func (m *MockPreferenceRepository) GetByUserID(ctx context.Context, ownerID string) (*model.Preference, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Preference), args.Error(1)
}

// MockInvalidator is a mock implementation of view.Invalidator.
type MockInvalidator struct {
	mock.Mock
}

func (m *MockInvalidator) Invalidate(ctx context.Context, ownerID, path string) error {
	args := m.Called(ctx, ownerID, path)
	return args.Error(0)
}

type staticCatalog []string

func (c staticCatalog) Names() []string {
	return c
}
