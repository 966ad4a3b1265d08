package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onurvatan/Clean-KISS-Architecture/internal/service/auth"
)

// stubJWTService returns canned validation results.
type stubJWTService struct {
	claims *auth.Claims
	err    error
}

func (s *stubJWTService) GenerateToken(ctx context.Context, userID uuid.UUID, roles, permissions []string) (string, error) {
	return "", errors.New("not implemented")
}

func (s *stubJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.claims, nil
}

// capturePrincipal records the principal the downstream handler observes.
func capturePrincipal(captured *auth.Principal) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = auth.PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestPrincipalMiddleware_NoHeaderYieldsAnonymous(t *testing.T) {
	t.Parallel()

	var captured auth.Principal
	mw := NewPrincipalMiddleware(&stubJWTService{})
	handler := mw.Resolve(capturePrincipal(&captured))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/students", nil))

	require.Equal(t, http.StatusOK, rec.Code, "anonymous requests proceed; handlers decide access")
	assert.False(t, captured.Authenticated)
}

func TestPrincipalMiddleware_ValidTokenAttachesPrincipal(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc := &stubJWTService{claims: &auth.Claims{
		UserID:      userID,
		Roles:       []string{"admin"},
		Permissions: []string{"students:create"},
	}}

	var captured auth.Principal
	mw := NewPrincipalMiddleware(svc)
	handler := mw.Resolve(capturePrincipal(&captured))

	req := httptest.NewRequest(http.MethodGet, "/api/students", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, captured.Authenticated)
	assert.Equal(t, userID, captured.ID)
}

func TestPrincipalMiddleware_RejectsInvalidTokens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		authHeader string
		svcErr     error
		wantStatus int
	}{
		{
			name:       "malformed header",
			authHeader: "NotBearer token",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired token",
			authHeader: "Bearer expired",
			svcErr:     auth.ErrExpiredToken,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer garbage",
			svcErr:     auth.ErrInvalidToken,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong token type",
			authHeader: "Bearer refresh",
			svcErr:     auth.ErrWrongTokenType,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unexpected validation failure",
			authHeader: "Bearer whatever",
			svcErr:     errors.New("key store unavailable"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			downstreamCalled := false
			mw := NewPrincipalMiddleware(&stubJWTService{err: tc.svcErr})
			handler := mw.Resolve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				downstreamCalled = true
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/students", nil)
			req.Header.Set("Authorization", tc.authHeader)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.False(t, downstreamCalled, "invalid credentials must not reach handlers")
		})
	}
}
