package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onurvatan/Clean-KISS-Architecture/internal/config"
)

const testSecret = "test-secret-key-thats-long-enough-for-hmac"

func newTestService(t *testing.T) *hmacJWTService {
	t.Helper()
	svc, err := NewJWTService(config.AuthConfig{
		JWTSecret:            testSecret,
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)
	return svc.(*hmacJWTService)
}

func TestNewJWTService_RejectsShortSecret(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(config.AuthConfig{
		JWTSecret:            "too-short",
		TokenLifetimeMinutes: 60,
	})
	assert.Error(t, err)
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	userID := uuid.New()

	token, err := svc.GenerateToken(context.Background(), userID,
		[]string{"admin"}, []string{"students:create", "students:delete"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, []string{"admin"}, claims.Roles)
	assert.Equal(t, []string{"students:create", "students:delete"}, claims.Permissions)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	issued := time.Now().Add(-2 * time.Hour)
	svc.timeFunc = func() time.Time { return issued }

	token, err := svc.GenerateToken(context.Background(), uuid.New(), nil, nil)
	require.NoError(t, err)

	// Validation happens well past the 60-minute lifetime plus skew.
	svc.timeFunc = time.Now
	_, err = svc.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_TamperedToken(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	token, err := svc.GenerateToken(context.Background(), uuid.New(), nil, nil)
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), token+"x")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_WrongSigningKey(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	other, err := NewJWTService(config.AuthConfig{
		JWTSecret:            "another-secret-key-thats-long-enough!!",
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)

	token, err := other.GenerateToken(context.Background(), uuid.New(), nil, nil)
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_WrongTokenType(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	now := time.Now()

	claims := jwtCustomClaims{
		UserID:    uuid.New(),
		TokenType: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}
