package handler

import (
	"net/http"

	"food-journal/internal/auth"
	"food-journal/internal/model"
	"food-journal/internal/service"

	"github.com/rs/zerolog"
)

// PreferenceHandler handles preference-related HTTP requests.
type PreferenceHandler struct {
	service service.PreferenceService
	logger  zerolog.Logger
}

// NewPreferenceHandler creates a new preference handler.
func NewPreferenceHandler(service service.PreferenceService, logger zerolog.Logger) *PreferenceHandler {
	return &PreferenceHandler{
		service: service,
		logger:  logger.With().Str("handler", "preference").Logger(),
	}
}

// Get handles GET /api/preferences requests.
func (h *PreferenceHandler) Get(w http.ResponseWriter, r *http.Request) {
	pref, err := h.service.Get(r.Context(), auth.OwnerID(r.Context()))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, pref)
}

// Put handles PUT /api/preferences requests.
func (h *PreferenceHandler) Put(w http.ResponseWriter, r *http.Request) {
	req, err := decodePreferenceRequest(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "Invalid request body", h.logger)
		return
	}

	pref, err := h.service.Upsert(r.Context(), auth.OwnerID(r.Context()), req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, pref)
}
