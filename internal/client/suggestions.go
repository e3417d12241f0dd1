package client

import (
	"context"
	"sync"

	"food-journal/internal/suggest"

	"github.com/rs/zerolog"
)

// DescriptionSource fetches the caller's past descriptions.
type DescriptionSource interface {
	Descriptions(ctx context.Context) ([]string, error)
}

// SuggestionCache fetches past descriptions once and filters them locally as
// the user types.
type SuggestionCache struct {
	mu     sync.Mutex
	source DescriptionSource
	loaded bool
	items  []string
	logger zerolog.Logger
}

// NewSuggestionCache creates a cache over source.
func NewSuggestionCache(source DescriptionSource, logger zerolog.Logger) *SuggestionCache {
	return &SuggestionCache{
		source: source,
		logger: logger.With().Str("component", "suggestions").Logger(),
	}
}

// Candidates returns the cached descriptions, fetching them on first use.
// A failed fetch leaves the list empty without notifying the user.
func (s *SuggestionCache) Candidates(ctx context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		items, err := s.source.Descriptions(ctx)
		if err != nil {
			s.logger.Debug().Err(err).Msg("failed to fetch descriptions")
			items = nil
		}
		s.items = items
		s.loaded = true
	}

	return append([]string(nil), s.items...)
}

// Match returns up to suggest.DefaultLimit candidates for input.
func (s *SuggestionCache) Match(ctx context.Context, input string) []string {
	return suggest.Filter(s.Candidates(ctx), input, suggest.DefaultLimit)
}

// Reset forces the next lookup to refetch, e.g. after logging a new meal.
func (s *SuggestionCache) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = false
	s.items = nil
}
