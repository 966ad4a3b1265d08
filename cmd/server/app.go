package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/onurvatan/Clean-KISS-Architecture/internal/api"
	apimiddleware "github.com/onurvatan/Clean-KISS-Architecture/internal/api/middleware"
	"github.com/onurvatan/Clean-KISS-Architecture/internal/config"
	"github.com/onurvatan/Clean-KISS-Architecture/internal/handler"
	"github.com/onurvatan/Clean-KISS-Architecture/internal/idempotency"
	"github.com/onurvatan/Clean-KISS-Architecture/internal/platform/postgres"
	"github.com/onurvatan/Clean-KISS-Architecture/internal/service/auth"
	"github.com/onurvatan/Clean-KISS-Architecture/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	studentStore     store.StudentStore
	idempotencyStore idempotency.Store
	redisClient      *redis.Client

	jwtService auth.JWTService
	authorizer *auth.Authorizer
	registry   *handler.Registry

	rateLimiter   *apimiddleware.RateLimiter
	stopJanitors  func()
	janitorCancel context.CancelFunc
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger,
// and database connection that must be established before application
// initialization.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.studentStore = postgres.NewStudentStore(db)

	if err := app.setupIdempotencyStore(ctx); err != nil {
		return nil, err
	}

	app.authorizer = auth.NewAuthorizer()
	app.registry = buildRequirementRegistry()

	app.rateLimiter = apimiddleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	app.stopJanitors = app.rateLimiter.StartJanitor()

	logger.Info("Application initialized successfully")
	return app, nil
}

// buildRequirementRegistry declares the authorization table for every
// endpoint. This is the single place access rules live; handlers look
// them up by name at composition time.
func buildRequirementRegistry() *handler.Registry {
	registry := handler.NewRegistry()
	registry.Register(api.HandlerCreateStudent, handler.RequirePermission("students:create"))
	registry.Register(api.HandlerGetStudent, handler.RequirePermission("students:read"))
	registry.Register(api.HandlerListStudents, handler.RequirePermission("students:read"))
	registry.Register(api.HandlerDeleteStudent,
		handler.RequirePermission("students:delete"),
		handler.RequireRole("admin"))
	return registry
}

// setupIdempotencyStore selects and initializes the replay store backend.
func (app *application) setupIdempotencyStore(ctx context.Context) error {
	switch app.config.Idempotency.Backend {
	case "memory":
		memStore := idempotency.NewMemoryStore()
		janitorCtx, cancel := context.WithCancel(context.Background())
		memStore.StartJanitor(janitorCtx)
		app.janitorCancel = cancel
		app.idempotencyStore = memStore

	case "redis":
		client := redis.NewClient(&redis.Options{Addr: app.config.Idempotency.RedisAddr})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		app.redisClient = client
		app.idempotencyStore = idempotency.NewRedisStore(client)

	case "postgres":
		app.idempotencyStore = postgres.NewIdempotencyStore(app.db)

	default:
		return fmt.Errorf("unknown idempotency backend: %q", app.config.Idempotency.Backend)
	}

	app.logger.Info("Idempotency store initialized",
		"backend", app.config.Idempotency.Backend,
		"ttl_hours", app.config.Idempotency.TTLHours)
	return nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.stopJanitors != nil {
		app.stopJanitors()
	}
	if app.janitorCancel != nil {
		app.janitorCancel()
	}

	if app.redisClient != nil {
		if err := app.redisClient.Close(); err != nil {
			app.logger.Error("Error closing redis connection", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
