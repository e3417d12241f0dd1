package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies all pending schema migrations embedded in the binary.
func Migrate(pool *pgxpool.Pool, logger zerolog.Logger) error {
	return withMigrator(pool, func(m *migrate.Migrate) error {
		if err := m.Up(); err != nil {
			if errors.Is(err, migrate.ErrNoChange) {
				logger.Info().Msg("database migrations: already up to date")
				return nil
			}
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		version, _, _ := m.Version()
		logger.Info().Uint("version", version).Msg("database migrations applied")
		return nil
	})
}

// Rollback reverts the given number of applied migrations.
func Rollback(pool *pgxpool.Pool, steps int, logger zerolog.Logger) error {
	if steps < 1 {
		return fmt.Errorf("rollback steps must be at least 1")
	}

	return withMigrator(pool, func(m *migrate.Migrate) error {
		if err := m.Steps(-steps); err != nil {
			if errors.Is(err, migrate.ErrNoChange) {
				logger.Info().Msg("database migrations: nothing to roll back")
				return nil
			}
			return fmt.Errorf("failed to roll back migrations: %w", err)
		}

		version, _, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			logger.Info().Msg("database migrations rolled back to empty schema")
			return nil
		}
		logger.Info().Uint("version", version).Int("steps", steps).Msg("database migrations rolled back")
		return nil
	})
}

// SchemaVersion reports the applied migration version and whether the last
// migration left the schema dirty.
func SchemaVersion(pool *pgxpool.Pool) (version uint, dirty bool, err error) {
	err = withMigrator(pool, func(m *migrate.Migrate) error {
		var verr error
		version, dirty, verr = m.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			return nil
		}
		return verr
	})
	return version, dirty, err
}

func withMigrator(pool *pgxpool.Pool, fn func(*migrate.Migrate) error) error {
	if pool == nil {
		return fmt.Errorf("database pool is nil")
	}

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	m, err := newMigrator(db)
	if err != nil {
		return err
	}
	return fn(m)
}

func newMigrator(db *sql.DB) (*migrate.Migrate, error) {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to create migration source driver: %w", err)
	}

	dbDriver, err := migratepgx.WithInstance(db, &migratepgx.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create migration database driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "pgx5", dbDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}
