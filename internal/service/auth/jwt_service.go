package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService defines operations for managing JWT authentication tokens.
// The service only mints and validates tokens; resolving credentials into
// roles and permissions happens outside this core (e.g. an identity
// provider or the tokengen dev tool).
type JWTService interface {
	// GenerateToken creates a signed JWT access token for the given user
	// carrying the user's roles and permissions as claims.
	// Returns the token string or an error if token generation fails.
	GenerateToken(ctx context.Context, userID uuid.UUID, roles, permissions []string) (string, error)

	// ValidateToken validates the provided access token string and extracts the claims.
	// Returns the claims containing user information if the token is valid,
	// or an error if validation fails (expired, invalid signature, etc.).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the custom claims structure for the JWT tokens.
// It extends standard JWT registered claims with application-specific fields.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID `json:"uid,omitempty"`

	// Roles lists the role names granted to the user.
	Roles []string `json:"roles,omitempty"`

	// Permissions lists the permission strings granted to the user.
	Permissions []string `json:"perms,omitempty"`

	// TokenType indicates the purpose of the token ("access").
	// Used to prevent token misuse across different contexts.
	TokenType string `json:"type,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
