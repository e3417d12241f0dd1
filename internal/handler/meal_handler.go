package handler

import (
	"net/http"
	"strings"

	"food-journal/internal/auth"
	"food-journal/internal/model"
	"food-journal/internal/service"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// MealHandler handles meal-related HTTP requests.
type MealHandler struct {
	service service.MealService
	logger  zerolog.Logger
}

// NewMealHandler creates a new meal handler.
func NewMealHandler(service service.MealService, logger zerolog.Logger) *MealHandler {
	return &MealHandler{
		service: service,
		logger:  logger.With().Str("handler", "meal").Logger(),
	}
}

// List handles GET /api/meals?date=YYYY-MM-DD requests.
func (h *MealHandler) List(w http.ResponseWriter, r *http.Request) {
	day, err := h.service.ListByDay(r.Context(), auth.OwnerID(r.Context()), r.URL.Query().Get("date"))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, day)
}

// Create handles POST /api/meals requests. A submission carrying an id is
// an edit of that meal.
func (h *MealHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := decodeMealRequest(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "Invalid request body", h.logger)
		return
	}

	owner := auth.OwnerID(r.Context())

	if id := strings.TrimSpace(req.ID); id != "" {
		meal, err := h.service.Update(r.Context(), owner, id, req)
		if err != nil {
			writeServiceError(w, r, err, h.logger)
			return
		}
		writeJSON(w, http.StatusOK, meal)
		return
	}

	meal, err := h.service.Create(r.Context(), owner, req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, meal)
}

// Update handles PUT /api/meals/{id} requests.
func (h *MealHandler) Update(w http.ResponseWriter, r *http.Request) {
	req, err := decodeMealRequest(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "Invalid request body", h.logger)
		return
	}

	meal, err := h.service.Update(r.Context(), auth.OwnerID(r.Context()), mux.Vars(r)["id"], req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, meal)
}

// Delete handles DELETE /api/meals/{id} requests.
func (h *MealHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), auth.OwnerID(r.Context()), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Descriptions handles GET /api/meals/descriptions requests.
func (h *MealHandler) Descriptions(w http.ResponseWriter, r *http.Request) {
	descriptions, err := h.service.ListDistinctDescriptions(r.Context(), auth.OwnerID(r.Context()))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, descriptions)
}

// Suggestions handles GET /api/meals/suggestions?q= requests.
func (h *MealHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.service.Suggest(r.Context(), auth.OwnerID(r.Context()), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, suggestions)
}
