// Package catalog holds the list of common food names offered as
// autocomplete suggestions alongside a user's own history.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Loader reads one catalogue file: gzipped, one food name per line.
type Loader interface {
	Load(ctx context.Context, path string) ([]string, error)
}

// Catalog is an immutable, de-duplicated list of food names. Safe for
// concurrent reads.
type Catalog struct {
	names []string
	index map[string]struct{}
}

// Empty returns a catalogue with no entries.
func Empty() *Catalog {
	return &Catalog{index: map[string]struct{}{}}
}

// FromNames builds a catalogue from names in order, dropping blanks and
// case-insensitive repeats.
func FromNames(names []string) *Catalog {
	c := &Catalog{
		names: make([]string, 0, len(names)),
		index: make(map[string]struct{}, len(names)),
	}
	for _, n := range names {
		c.add(n)
	}
	return c
}

func (c *Catalog) add(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	key := strings.ToLower(name)
	if _, ok := c.index[key]; ok {
		return
	}
	c.index[key] = struct{}{}
	c.names = append(c.names, name)
}

// Names returns the catalogue entries in load order. Callers must not modify
// the returned slice.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	return c.names
}

// Contains reports whether name is in the catalogue, ignoring case.
func (c *Catalog) Contains(name string) bool {
	_, ok := c.index[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Size returns the number of entries.
func (c *Catalog) Size() int {
	return len(c.names)
}

// Load reads every path concurrently and merges the results in path order.
// Any failed file fails the whole load.
func Load(ctx context.Context, paths []string, loader Loader, logger zerolog.Logger) (*Catalog, error) {
	logger = logger.With().Str("component", "catalog").Logger()

	if len(paths) == 0 {
		logger.Info().Msg("no catalogue files configured")
		return Empty(), nil
	}

	type loadResult struct {
		names []string
		err   error
	}

	results := make([]loadResult, len(paths))
	var wg sync.WaitGroup

	for i, path := range paths {
		wg.Add(1)
		go func(index int, p string) {
			defer wg.Done()
			names, err := loader.Load(ctx, p)
			results[index] = loadResult{names: names, err: err}
		}(i, path)
	}

	wg.Wait()

	c := Empty()
	for i, r := range results {
		if r.err != nil {
			logger.Error().Err(r.err).Str("file", paths[i]).Msg("failed to load catalogue file")
			return nil, fmt.Errorf("failed to load catalogue file %s: %w", paths[i], r.err)
		}
		for _, n := range r.names {
			c.add(n)
		}
	}

	logger.Info().
		Int("file_count", len(paths)).
		Int("entries", c.Size()).
		Msg("food catalogue loaded")

	return c, nil
}
