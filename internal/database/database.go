package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"food-journal/internal/config"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// NewPool creates a new PostgreSQL connection pool.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConnections)
	poolConfig.MinConns = int32(cfg.MinConnections)
	poolConfig.MaxConnLifetime = time.Duration(cfg.MaxConnLifetime) * time.Second
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	logger.Info().
		Str("host", poolConfig.ConnConfig.Host).
		Uint16("port", poolConfig.ConnConfig.Port).
		Str("database", poolConfig.ConnConfig.Database).
		Int("max_connections", cfg.MaxConnections).
		Int("min_connections", cfg.MinConnections).
		Msg("creating database connection pool")

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Msg("database connection pool created successfully")

	return pool, nil
}

// PoolFactory builds the underlying pool. It is called at most once per
// successful construction.
type PoolFactory func(ctx context.Context) (*pgxpool.Pool, error)

// Gateway is the process-wide database handle. The pool is built on first
// use and shared by every request afterwards. A failed build is not cached,
// so the next call tries again.
type Gateway struct {
	mu      sync.Mutex
	pool    *pgxpool.Pool
	factory PoolFactory
	logger  zerolog.Logger
}

// NewGateway creates a gateway that connects lazily using cfg.
func NewGateway(cfg config.DatabaseConfig, logger zerolog.Logger) *Gateway {
	gwLogger := logger.With().Str("component", "gateway").Logger()
	return NewGatewayWithFactory(func(ctx context.Context) (*pgxpool.Pool, error) {
		return NewPool(ctx, cfg, gwLogger)
	}, logger)
}

// NewGatewayWithFactory creates a gateway around a custom pool factory.
func NewGatewayWithFactory(factory PoolFactory, logger zerolog.Logger) *Gateway {
	return &Gateway{
		factory: factory,
		logger:  logger.With().Str("component", "gateway").Logger(),
	}
}

// Pool returns the shared pool, constructing it if needed.
func (g *Gateway) Pool(ctx context.Context) (*pgxpool.Pool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.pool != nil {
		return g.pool, nil
	}

	pool, err := g.factory(ctx)
	if err != nil {
		g.logger.Error().Err(err).Msg("failed to construct database pool")
		return nil, err
	}

	g.pool = pool
	return pool, nil
}

// Exec runs a statement on the shared pool.
func (g *Gateway) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	pool, err := g.Pool(ctx)
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	return pool.Exec(ctx, sql, args...)
}

// Query runs a query on the shared pool.
func (g *Gateway) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	pool, err := g.Pool(ctx)
	if err != nil {
		return nil, err
	}
	return pool.Query(ctx, sql, args...)
}

// QueryRow runs a single-row query on the shared pool. Connection failures
// surface from Scan.
func (g *Gateway) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	pool, err := g.Pool(ctx)
	if err != nil {
		return errRow{err: err}
	}
	return pool.QueryRow(ctx, sql, args...)
}

// Ping checks that the database is reachable.
func (g *Gateway) Ping(ctx context.Context) error {
	pool, err := g.Pool(ctx)
	if err != nil {
		return err
	}
	return pool.Ping(ctx)
}

// Close releases the pool if it was ever built.
func (g *Gateway) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.pool != nil {
		g.pool.Close()
		g.pool = nil
		g.logger.Info().Msg("database connection pool closed")
	}
}

type errRow struct {
	err error
}

func (r errRow) Scan(...any) error {
	return r.err
}
