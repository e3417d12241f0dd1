package handler

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"food-journal/internal/model"

	"github.com/rs/zerolog"
)

// correlationHeader carries a caller-supplied request id echoed back in errors.
const correlationHeader = "X-Request-ID"

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		return
	}
}

// writeError writes an error response with the given status code.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, logger zerolog.Logger) {
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Str("code", code).Str("error", message).Int("status", status).Msg("handler error")

	writeJSON(w, status, model.ErrorResponse{
		Error:         code,
		Message:       message,
		CorrelationID: r.Header.Get(correlationHeader),
	})
}

// writeServiceError maps a service error onto the HTTP taxonomy.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	var de *model.DomainError
	if errors.As(err, &de) {
		switch de.Code {
		case model.ErrCodeUnauthorised:
			writeError(w, r, http.StatusUnauthorized, de.Code, de.Message, logger)
			return
		case model.ErrCodeNotFoundOrUnauthorized:
			writeError(w, r, http.StatusNotFound, de.Code, de.Message, logger)
			return
		case model.ErrCodeValidation:
			writeError(w, r, http.StatusBadRequest, de.Code, de.Message, logger)
			return
		}
	}

	logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "Internal server error", logger)
}

// isJSON reports whether the request body is JSON rather than a form.
func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

// decodeMealRequest reads a meal submission from a JSON or form body.
func decodeMealRequest(r *http.Request) (*model.MealRequest, error) {
	var req model.MealRequest
	if isJSON(r) {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, err
		}
		return &req, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	req.ID = r.PostForm.Get("id")
	req.Description = r.PostForm.Get("description")
	req.Date = r.PostForm.Get("date")
	req.Time = r.PostForm.Get("time")
	if _, ok := r.PostForm["quantity"]; ok {
		q := r.PostForm.Get("quantity")
		req.Quantity = &q
	}
	return &req, nil
}

// decodePreferenceRequest reads a preference submission from a JSON or form body.
func decodePreferenceRequest(r *http.Request) (*model.PreferenceRequest, error) {
	var req model.PreferenceRequest
	if isJSON(r) {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, err
		}
		return &req, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	req.DefaultMealType = r.PostForm.Get("defaultMealType")
	req.DietaryTags = r.PostForm.Get("dietaryTags")
	return &req, nil
}
