package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"food-journal/internal/model"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMealHandler_Create(t *testing.T) {
	logger := zerolog.Nop()

	created := &model.Meal{
		ID:          uuid.New(),
		Description: "Oatmeal",
		ConsumedAt:  time.Date(2024, 3, 20, 8, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name           string
		owner          string
		body           interface{}
		mockError      error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "Success",
			owner:          "user-1",
			body:           &model.MealRequest{Description: "Oatmeal", Date: "2024-03-20", Time: "08:00"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Missing description",
			owner:          "user-1",
			body:           &model.MealRequest{Description: "  "},
			mockError:      model.ErrDescriptionRequired,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeValidation,
		},
		{
			name:           "Anonymous caller",
			body:           &model.MealRequest{Description: "Oatmeal"},
			mockError:      model.ErrUnauthorized,
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   model.ErrCodeUnauthorised,
		},
		{
			name:           "Storage failure",
			owner:          "user-1",
			body:           &model.MealRequest{Description: "Oatmeal"},
			mockError:      errors.New("connection reset"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   model.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockMealService)
			h := NewMealHandler(svc, logger)

			if tt.mockError != nil {
				svc.On("Create", mock.Anything, tt.owner, mock.AnythingOfType("*model.MealRequest")).Return(nil, tt.mockError)
			} else {
				svc.On("Create", mock.Anything, tt.owner, mock.AnythingOfType("*model.MealRequest")).Return(created, nil)
			}

			var buf bytes.Buffer
			require.NoError(t, json.NewEncoder(&buf).Encode(tt.body))

			req := httptest.NewRequest(http.MethodPost, "/api/meals", &buf)
			req.Header.Set("Content-Type", "application/json")
			if tt.owner != "" {
				req = asUser(req, tt.owner, "a@example.com")
			}
			w := httptest.NewRecorder()

			h.Create(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				var resp model.ErrorResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Equal(t, tt.expectedCode, resp.Error)
			} else {
				var resp model.Meal
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Equal(t, created.ID, resp.ID)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestMealHandler_Create_InvalidJSON(t *testing.T) {
	svc := new(MockMealService)
	h := NewMealHandler(svc, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/meals", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(correlationHeader, "req-42")
	w := httptest.NewRecorder()

	h.Create(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp model.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, model.ErrCodeInvalidJSON, resp.Error)
	assert.Equal(t, "req-42", resp.CorrelationID)
	svc.AssertNotCalled(t, "Create")
}

func TestMealHandler_Create_FormWithIDUpdates(t *testing.T) {
	svc := new(MockMealService)
	h := NewMealHandler(svc, zerolog.Nop())

	id := uuid.New()
	updated := &model.Meal{ID: id, Description: "Toast"}

	svc.On("Update", mock.Anything, "user-1", id.String(), mock.MatchedBy(func(req *model.MealRequest) bool {
		return req.Description == "Toast" && req.Quantity != nil && *req.Quantity == "2 slices" && req.Time == "07:30"
	})).Return(updated, nil)

	form := url.Values{}
	form.Set("id", id.String())
	form.Set("description", "Toast")
	form.Set("quantity", "2 slices")
	form.Set("time", "07:30")

	req := httptest.NewRequest(http.MethodPost, "/api/meals", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = asUser(req, "user-1", "a@example.com")
	w := httptest.NewRecorder()

	h.Create(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
	svc.AssertNotCalled(t, "Create")
}

func TestMealHandler_Create_FormWithoutQuantity(t *testing.T) {
	svc := new(MockMealService)
	h := NewMealHandler(svc, zerolog.Nop())

	svc.On("Create", mock.Anything, "user-1", mock.MatchedBy(func(req *model.MealRequest) bool {
		return req.Description == "Apple" && req.Quantity == nil
	})).Return(&model.Meal{ID: uuid.New(), Description: "Apple"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/meals", strings.NewReader("description=Apple"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = asUser(req, "user-1", "a@example.com")
	w := httptest.NewRecorder()

	h.Create(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestMealHandler_Update(t *testing.T) {
	tests := []struct {
		name           string
		mockError      error
		expectedStatus int
	}{
		{name: "Success", expectedStatus: http.StatusOK},
		{name: "Not owned", mockError: model.ErrNotFoundOrUnauthorized, expectedStatus: http.StatusNotFound},
		{name: "Bad time", mockError: model.ErrInvalidTime, expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockMealService)
			h := NewMealHandler(svc, zerolog.Nop())

			id := uuid.New().String()
			if tt.mockError != nil {
				svc.On("Update", mock.Anything, "user-1", id, mock.Anything).Return(nil, tt.mockError)
			} else {
				svc.On("Update", mock.Anything, "user-1", id, mock.Anything).Return(&model.Meal{Description: "Soup"}, nil)
			}

			req := httptest.NewRequest(http.MethodPut, "/api/meals/"+id, strings.NewReader(`{"description":"Soup"}`))
			req.Header.Set("Content-Type", "application/json")
			req = mux.SetURLVars(asUser(req, "user-1", "a@example.com"), map[string]string{"id": id})
			w := httptest.NewRecorder()

			h.Update(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestMealHandler_Delete(t *testing.T) {
	tests := []struct {
		name           string
		mockError      error
		expectedStatus int
	}{
		{name: "Success", expectedStatus: http.StatusNoContent},
		{name: "Not found", mockError: model.ErrNotFoundOrUnauthorized, expectedStatus: http.StatusNotFound},
		{name: "Anonymous", mockError: model.ErrUnauthorized, expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockMealService)
			h := NewMealHandler(svc, zerolog.Nop())

			svc.On("Delete", mock.Anything, "user-1", "abc").Return(tt.mockError)

			req := httptest.NewRequest(http.MethodDelete, "/api/meals/abc", nil)
			req = mux.SetURLVars(asUser(req, "user-1", "a@example.com"), map[string]string{"id": "abc"})
			w := httptest.NewRecorder()

			h.Delete(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestMealHandler_List(t *testing.T) {
	svc := new(MockMealService)
	h := NewMealHandler(svc, zerolog.Nop())

	day := &model.DayView{Date: "2024-03-20", Prev: "2024-03-19", Next: "2024-03-21", Meals: []model.Meal{}}
	svc.On("ListByDay", mock.Anything, "user-1", "2024-03-20").Return(day, nil)

	req := asUser(httptest.NewRequest(http.MethodGet, "/api/meals?date=2024-03-20", nil), "user-1", "a@example.com")
	w := httptest.NewRecorder()

	h.List(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp model.DayView
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "2024-03-19", resp.Prev)
	assert.Equal(t, "2024-03-21", resp.Next)
	svc.AssertExpectations(t)
}

func TestMealHandler_Suggestions(t *testing.T) {
	svc := new(MockMealService)
	h := NewMealHandler(svc, zerolog.Nop())

	svc.On("Suggest", mock.Anything, "user-1", "oat").Return([]string{"Oatmeal", "Oat milk"}, nil)

	req := asUser(httptest.NewRequest(http.MethodGet, "/api/meals/suggestions?q=oat", nil), "user-1", "a@example.com")
	w := httptest.NewRecorder()

	h.Suggestions(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, []string{"Oatmeal", "Oat milk"}, resp)
}

func TestMealHandler_Descriptions(t *testing.T) {
	svc := new(MockMealService)
	h := NewMealHandler(svc, zerolog.Nop())

	svc.On("ListDistinctDescriptions", mock.Anything, "").Return([]string{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/meals/descriptions", nil)
	w := httptest.NewRecorder()

	h.Descriptions(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
