// Package main implements tokengen, a development utility that mints
// signed access tokens for exercising the API locally. It shares the
// server's JWT service so generated tokens are accepted as-is.
//
// Usage:
//
//	tokengen -secret <jwt-secret> -roles admin -permissions students:create,students:read
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/onurvatan/Clean-KISS-Architecture/internal/config"
	"github.com/onurvatan/Clean-KISS-Architecture/internal/service/auth"
)

func main() {
	secret := flag.String("secret", os.Getenv("REGISTRY_AUTH_JWT_SECRET"),
		"JWT signing secret (defaults to REGISTRY_AUTH_JWT_SECRET)")
	userID := flag.String("user", "", "user ID for the token subject (default: random)")
	roles := flag.String("roles", "", "comma-separated roles to embed")
	permissions := flag.String("permissions", "", "comma-separated permissions to embed")
	lifetime := flag.Int("lifetime", 60, "token lifetime in minutes")
	flag.Parse()

	if *secret == "" {
		log.Fatal("a signing secret is required: pass -secret or set REGISTRY_AUTH_JWT_SECRET")
	}

	id := uuid.New()
	if *userID != "" {
		parsed, err := uuid.Parse(*userID)
		if err != nil {
			log.Fatalf("invalid -user value %q: %v", *userID, err)
		}
		id = parsed
	}

	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            *secret,
		TokenLifetimeMinutes: *lifetime,
	})
	if err != nil {
		log.Fatalf("failed to initialize JWT service: %v", err)
	}

	token, err := jwtService.GenerateToken(context.Background(), id,
		splitList(*roles), splitList(*permissions))
	if err != nil {
		log.Fatalf("failed to generate token: %v", err)
	}

	fmt.Println(token)
}

// splitList parses a comma-separated flag value, dropping empty entries.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
