package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"food-journal/internal/auth"
	"food-journal/internal/metrics"
	"food-journal/internal/model"
	"food-journal/internal/service"
	"food-journal/internal/view"

	"github.com/rs/zerolog"
)

// ViewHandler serves the materialized /meals and /profile views through the
// view cache.
type ViewHandler struct {
	meals       service.MealService
	preferences service.PreferenceService
	cache       view.Cache
	loc         *time.Location
	now         func() time.Time
	logger      zerolog.Logger
}

// NewViewHandler creates a new view handler. now may be nil.
func NewViewHandler(
	meals service.MealService,
	preferences service.PreferenceService,
	cache view.Cache,
	loc *time.Location,
	now func() time.Time,
	logger zerolog.Logger,
) *ViewHandler {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &ViewHandler{
		meals:       meals,
		preferences: preferences,
		cache:       cache,
		loc:         loc,
		now:         now,
		logger:      logger.With().Str("handler", "view").Logger(),
	}
}

// Meals handles GET /meals?date=YYYY-MM-DD requests.
func (h *ViewHandler) Meals(w http.ResponseWriter, r *http.Request) {
	owner := auth.OwnerID(r.Context())
	if owner == "" {
		writeServiceError(w, r, model.ErrUnauthorized, h.logger)
		return
	}

	day := service.ResolveDay(r.URL.Query().Get("date"), h.now(), h.loc).Format(model.DateLayout)

	h.serve(w, r, owner, view.PathMeals, day, func(ctx context.Context) (interface{}, error) {
		return h.meals.ListByDay(ctx, owner, day)
	})
}

// Profile handles GET /profile requests.
func (h *ViewHandler) Profile(w http.ResponseWriter, r *http.Request) {
	id := auth.FromContext(r.Context())
	if id == nil {
		writeServiceError(w, r, model.ErrUnauthorized, h.logger)
		return
	}

	h.serve(w, r, id.ID, view.PathProfile, "", func(ctx context.Context) (interface{}, error) {
		pref, err := h.preferences.Get(ctx, id.ID)
		if err != nil {
			return nil, err
		}
		return &model.ProfileView{Email: id.Email, Preference: *pref}, nil
	})
}

// serve answers from the cache when possible and fills it otherwise. The fill
// is written under the generation seen by the lookup. Cache failures degrade
// to an uncached response.
func (h *ViewHandler) serve(
	w http.ResponseWriter,
	r *http.Request,
	owner, path, variant string,
	build func(context.Context) (interface{}, error),
) {
	ctx := r.Context()

	lookup, lookupErr := h.cache.Get(ctx, owner, path, variant)
	if lookupErr != nil {
		h.logger.Warn().Err(lookupErr).Str("path", path).Msg("view cache read failed")
	}
	metrics.RecordViewLookup(path, lookup.Hit)
	if lookup.Hit {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-View-Cache", "hit")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(lookup.Data)
		return
	}

	payload, err := build(ctx)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	if lookupErr == nil {
		if err := h.cache.Set(ctx, owner, path, variant, lookup.Generation, data); err != nil {
			h.logger.Warn().Err(err).Str("path", path).Msg("view cache write failed")
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-View-Cache", "miss")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
