package handler

import (
	"context"
	"net/http"

	"food-journal/internal/auth"
	"food-journal/internal/model"

	"github.com/stretchr/testify/mock"
)

// MockMealService is a mock implementation of MealService.
type MockMealService struct {
	mock.Mock
}

func (m *MockMealService) Create(ctx context.Context, ownerID string, req *model.MealRequest) (*model.Meal, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Meal), args.Error(1)
}

func (m *MockMealService) Update(ctx context.Context, ownerID, mealID string, req *model.MealRequest) (*model.Meal, error) {
	args := m.Called(ctx, ownerID, mealID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Meal), args.Error(1)
}

func (m *MockMealService) Delete(ctx context.Context, ownerID, mealID string) error {
	args := m.Called(ctx, ownerID, mealID)
	return args.Error(0)
}

func (m *MockMealService) ListByDay(ctx context.Context, ownerID, date string) (*model.DayView, error) {
	args := m.Called(ctx, ownerID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DayView), args.Error(1)
}

func (m *MockMealService) ListDistinctDescriptions(ctx context.Context, ownerID string) ([]string, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockMealService) Suggest(ctx context.Context, ownerID, query string) ([]string, error) {
	args := m.Called(ctx, ownerID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockPreferenceService is a mock implementation of PreferenceService.
type MockPreferenceService struct {
	mock.Mock
}

func (m *MockPreferenceService) Upsert(ctx context.Context, ownerID string, req *model.PreferenceRequest) (*model.PreferenceResponse, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PreferenceResponse), args.Error(1)
}

func (m *MockPreferenceService) Get(ctx context.Context, ownerID string) (*model.PreferenceResponse, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PreferenceResponse), args.Error(1)
}

// asUser attaches an authenticated identity to req.
func asUser(req *http.Request, id, email string) *http.Request {
	return req.WithContext(auth.WithIdentity(req.Context(), &auth.Identity{ID: id, Email: email}))
}
