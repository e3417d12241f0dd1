package view

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"food-journal/internal/config"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const keyPrefix = "food-journal:view:"

// RedisCache is a Cache shared between server instances. The generation for
// an owner+path lives in its own key and is bumped with INCR.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRedisClient creates a go-redis client from configuration.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
}

// NewRedisCache wraps client. The caller owns the client's lifetime.
func NewRedisCache(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "view_cache").Logger(),
	}
}

// Ping checks connectivity.
func (c *RedisCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	return nil
}

// Get returns the entry for the current generation.
func (c *RedisCache) Get(ctx context.Context, ownerID, path, variant string) (Lookup, error) {
	gen, err := c.generation(ctx, ownerID, path)
	if err != nil {
		return Lookup{}, err
	}

	data, err := c.client.Get(ctx, redisEntryKey(ownerID, path, variant, gen)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Lookup{Generation: gen}, nil
	}
	if err != nil {
		return Lookup{Generation: gen}, fmt.Errorf("failed to read view cache: %w", err)
	}
	return Lookup{Data: data, Hit: true, Generation: gen}, nil
}

// Set stores data under gen with the cache TTL. If an invalidation has
// bumped the generation since gen was read, the entry is never looked up
// and simply expires.
func (c *RedisCache) Set(ctx context.Context, ownerID, path, variant string, gen uint64, data []byte) error {
	if err := c.client.Set(ctx, redisEntryKey(ownerID, path, variant, gen), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write view cache: %w", err)
	}
	return nil
}

// Invalidate bumps the owner's generation for path. Entries written under
// older generations are unreachable and expire on their own.
func (c *RedisCache) Invalidate(ctx context.Context, ownerID, path string) error {
	gen, err := c.client.Incr(ctx, redisGenKey(ownerID, path)).Result()
	if err != nil {
		return fmt.Errorf("failed to invalidate view: %w", err)
	}

	c.logger.Debug().
		Str("user_id", ownerID).
		Str("path", path).
		Int64("generation", gen).
		Msg("view invalidated")
	return nil
}

func (c *RedisCache) generation(ctx context.Context, ownerID, path string) (uint64, error) {
	gen, err := c.client.Get(ctx, redisGenKey(ownerID, path)).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read view generation: %w", err)
	}
	return gen, nil
}

func redisGenKey(ownerID, path string) string {
	return keyPrefix + "gen:" + ownerID + ":" + path
}

func redisEntryKey(ownerID, path, variant string, gen uint64) string {
	return keyPrefix + "entry:" + ownerID + ":" + path + ":" + strconv.FormatUint(gen, 10) + ":" + variant
}
