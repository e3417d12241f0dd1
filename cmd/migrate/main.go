package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"food-journal/internal/config"
	"food-journal/internal/database"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	down := flag.Int("down", 0, "roll back this many migrations instead of migrating up")
	status := flag.Bool("status", false, "print the current schema version and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)

	pool, err := database.NewPool(context.Background(), cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	switch {
	case *status:
		version, dirty, err := database.SchemaVersion(pool)
		if err != nil {
			return err
		}
		fmt.Printf("version=%d dirty=%t\n", version, dirty)
		return nil
	case *down > 0:
		return database.Rollback(pool, *down, logger)
	default:
		return database.Migrate(pool, logger)
	}
}
