package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"food-journal/internal/config"
	"food-journal/internal/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := config.NewLogger(cfg.Logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	gateway := database.NewGateway(cfg.Database, logger)
	defer gateway.Close()

	var dbName string
	if err := gateway.QueryRow(ctx, "SELECT current_database()").Scan(&dbName); err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Successfully connected to database: %s\n", dbName)

	pool, err := gateway.Pool(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Pool unavailable: %v\n", err)
		os.Exit(1)
	}
	version, dirty, err := database.SchemaVersion(pool)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to read schema version: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Schema version: %d (dirty=%t)\n", version, dirty)

	rows, err := gateway.Query(ctx, `
		SELECT relname, n_live_tup
		FROM pg_stat_user_tables
		WHERE relname IN ('meals', 'preferences')
		ORDER BY relname`)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Query failed: %v\n", err)
		os.Exit(1)
	}
	defer rows.Close()

	fmt.Println("\nJournal tables:")
	for rows.Next() {
		var name string
		var count int64
		if err := rows.Scan(&name, &count); err != nil {
			fmt.Fprintf(os.Stderr, "Scan failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("  - %s (~%d rows)\n", name, count)
	}
	if err := rows.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Row iteration failed: %v\n", err)
		os.Exit(1)
	}
}
