package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables take
// precedence over values from config files and use the REGISTRY_ prefix
// with underscores for nesting (e.g. REGISTRY_SERVER_PORT).
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// A missing config file is fine; environment variables and defaults
	// cover everything. Any other read error is fatal.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("REGISTRY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers defaults for everything that has a sensible one.
// Secrets (database URL, JWT secret) deliberately have no default.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	// Registered empty so AutomaticEnv can bind them; validation rejects
	// the empty values if nothing supplies a real one.
	v.SetDefault("database.url", "")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("idempotency.redis_addr", "")
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("idempotency.backend", "memory")
	v.SetDefault("idempotency.ttl_hours", 24)
	v.SetDefault("idempotency.max_body_bytes", 1<<20) // 1 MiB
	v.SetDefault("rate_limit.rps", 20)
	v.SetDefault("rate_limit.burst", 40)
}
