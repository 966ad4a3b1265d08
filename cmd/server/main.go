// Package main implements the entry point for the student registry API
// server: a CRUD service with declarative per-handler authorization and
// idempotency-key replay for mutating requests.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/onurvatan/Clean-KISS-Architecture/internal/config"
	"github.com/onurvatan/Clean-KISS-Architecture/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run database migrations (up|down|status) and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if *migrateCmd != "" {
		if err := runMigrations(db, *migrateCmd); err != nil {
			appLogger.Error("Migration failed", "command", *migrateCmd, "error", err)
			os.Exit(1)
		}
		appLogger.Info("Migration completed", "command", *migrateCmd)
		return
	}

	ctx := context.Background()
	app, err := newApplication(ctx, cfg, appLogger, db)
	if err != nil {
		appLogger.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		appLogger.Error("Server error", "error", err)
		os.Exit(1)
	}
}
