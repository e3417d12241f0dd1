package view

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryCache is a process-local Cache. Each owner+path has a generation
// counter; entries are keyed by generation so a bump hides all of them.
type MemoryCache struct {
	mu          sync.RWMutex
	generations map[string]uint64
	entries     map[string]memoryEntry
	ttl         time.Duration
	now         func() time.Time
	nextSweep   time.Time
}

// NewMemoryCache creates an in-memory cache with the given entry TTL.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryCache{
		generations: make(map[string]uint64),
		entries:     make(map[string]memoryEntry),
		ttl:         ttl,
		now:         time.Now,
	}
}

// Get returns the entry for the current generation, if present and fresh.
func (c *MemoryCache) Get(_ context.Context, ownerID, path, variant string) (Lookup, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	gen := c.generations[genKey(ownerID, path)]
	e, ok := c.entries[entryKey(ownerID, path, variant, gen)]
	if !ok || c.now().After(e.expiresAt) {
		return Lookup{Generation: gen}, nil
	}
	return Lookup{Data: e.data, Hit: true, Generation: gen}, nil
}

// Set stores data under gen. A gen older than the current generation is
// dropped. Expired entries are swept at most once per TTL.
func (c *MemoryCache) Set(_ context.Context, ownerID, path, variant string, gen uint64, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.sweep(now)

	if gen != c.generations[genKey(ownerID, path)] {
		return nil
	}
	c.entries[entryKey(ownerID, path, variant, gen)] = memoryEntry{
		data:      data,
		expiresAt: now.Add(c.ttl),
	}
	return nil
}

// Invalidate bumps the generation and drops the owner's entries for path.
func (c *MemoryCache) Invalidate(_ context.Context, ownerID, path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	gk := genKey(ownerID, path)
	prefix := gk + "|" + strconv.FormatUint(c.generations[gk], 10) + "|"
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
	c.generations[gk]++
	return nil
}

// Len reports the number of stored entries, expired or not.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// sweep must be called with mu held.
func (c *MemoryCache) sweep(now time.Time) {
	if now.Before(c.nextSweep) {
		return
	}
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
	c.nextSweep = now.Add(c.ttl)
}

func genKey(ownerID, path string) string {
	return ownerID + "|" + path
}

func entryKey(ownerID, path, variant string, gen uint64) string {
	return genKey(ownerID, path) + "|" + strconv.FormatUint(gen, 10) + "|" + variant
}
