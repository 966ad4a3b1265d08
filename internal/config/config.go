// Package config handles loading and validation of application
// configuration from environment variables and optional config files.
package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server      ServerConfig      `mapstructure:"server" validate:"required"`
	Database    DatabaseConfig    `mapstructure:"database" validate:"required"`
	Auth        AuthConfig        `mapstructure:"auth" validate:"required"`
	Idempotency IdempotencyConfig `mapstructure:"idempotency" validate:"required"`
	RateLimit   RateLimitConfig   `mapstructure:"rate_limit" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// IdempotencyConfig controls the replay store behavior.
type IdempotencyConfig struct {
	// Backend selects the store implementation.
	Backend string `mapstructure:"backend" validate:"required,oneof=memory redis postgres"`

	// TTLHours is the retention window for stored records.
	TTLHours int `mapstructure:"ttl_hours" validate:"required,gt=0"`

	// MaxBodyBytes bounds the response size buffered for recording.
	// Responses larger than this pass through unrecorded.
	MaxBodyBytes int `mapstructure:"max_body_bytes" validate:"required,gt=0"`

	// RedisAddr is required when Backend is "redis".
	RedisAddr string `mapstructure:"redis_addr" validate:"required_if=Backend redis"`
}

// RateLimitConfig contains the per-client rate limiter settings.
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps" validate:"required,gt=0"`
	Burst int     `mapstructure:"burst" validate:"required,gt=0"`
}
