// Package view caches materialized page data per owner and path, and lets
// mutations mark a path stale for one owner.
package view

import (
	"context"
	"time"
)

// Paths of the materialized views.
const (
	PathMeals   = "/meals"
	PathProfile = "/profile"
)

// DefaultTTL bounds how long an entry lives even without invalidation.
const DefaultTTL = 10 * time.Minute

// Invalidator marks every cached variant of path stale for ownerID.
type Invalidator interface {
	Invalidate(ctx context.Context, ownerID, path string) error
}

// Lookup is the result of Cache.Get. Generation is the owner's generation for
// the path at read time and must be handed back to Set, so a payload built
// before an invalidation is stored where no reader looks.
type Lookup struct {
	Data       []byte
	Hit        bool
	Generation uint64
}

// Cache stores rendered view payloads. variant distinguishes entries under the
// same path, e.g. the day of a /meals view.
type Cache interface {
	Invalidator
	Get(ctx context.Context, ownerID, path, variant string) (Lookup, error)
	Set(ctx context.Context, ownerID, path, variant string, gen uint64, data []byte) error
}
