package main

import (
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/onurvatan/Clean-KISS-Architecture/internal/platform/postgres"
)

// runMigrations executes the requested goose command against the embedded
// migration set. It's called from main() when the -migrate flag is set.
func runMigrations(db *sql.DB, command string) error {
	goose.SetBaseFS(postgres.MigrationsFS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	switch command {
	case "up":
		if err := goose.Up(db, "migrations"); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
	case "down":
		if err := goose.Down(db, "migrations"); err != nil {
			return fmt.Errorf("failed to roll back migration: %w", err)
		}
	case "status":
		if err := goose.Status(db, "migrations"); err != nil {
			return fmt.Errorf("failed to report migration status: %w", err)
		}
	default:
		return fmt.Errorf("unknown migration command: %q (want up, down, or status)", command)
	}

	return nil
}
