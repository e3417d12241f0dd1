package router

import (
	"net/http"

	"food-journal/internal/auth"
	"food-journal/internal/handler"
	"food-journal/internal/metrics"
	"food-journal/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers mounted by the router.
type Handlers struct {
	Meals       *handler.MealHandler
	Preferences *handler.PreferenceHandler
	Views       *handler.ViewHandler
	Health      http.Handler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(
	h Handlers,
	resolver auth.Resolver,
	limiter *middleware.RateLimiter,
	logger zerolog.Logger,
) http.Handler {
	r := mux.NewRouter()

	r.Handle("/health", h.Health).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	// Everything below resolves the caller and is rate limited.
	app := r.NewRoute().Subrouter()
	app.Use(auth.Middleware(resolver, logger))
	app.Use(limiter.Middleware)

	app.HandleFunc("/meals", h.Views.Meals).Methods(http.MethodGet)
	app.HandleFunc("/profile", h.Views.Profile).Methods(http.MethodGet)

	api := app.PathPrefix("/api").Subrouter()
	api.HandleFunc("/meals", h.Meals.List).Methods(http.MethodGet)
	api.HandleFunc("/meals", h.Meals.Create).Methods(http.MethodPost)
	api.HandleFunc("/meals/descriptions", h.Meals.Descriptions).Methods(http.MethodGet)
	api.HandleFunc("/meals/suggestions", h.Meals.Suggestions).Methods(http.MethodGet)
	api.HandleFunc("/meals/{id}", h.Meals.Update).Methods(http.MethodPut)
	api.HandleFunc("/meals/{id}", h.Meals.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/preferences", h.Preferences.Get).Methods(http.MethodGet)
	api.HandleFunc("/preferences", h.Preferences.Put).Methods(http.MethodPut)

	// Apply middleware in order: Recovery -> Logging -> metrics -> CORS
	var handler http.Handler = r
	handler = middleware.CORS(handler)
	handler = metrics.InstrumentHandler(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
