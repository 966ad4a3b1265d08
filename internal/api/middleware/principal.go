package middleware

import (
	"net/http"
	"strings"

	"github.com/onurvatan/Clean-KISS-Architecture/internal/api/shared"
	"github.com/onurvatan/Clean-KISS-Architecture/internal/platform/logger"
	"github.com/onurvatan/Clean-KISS-Architecture/internal/redact"
	"github.com/onurvatan/Clean-KISS-Architecture/internal/service/auth"
)

// PrincipalMiddleware resolves the current principal from the request's
// bearer token and stores the snapshot in the request context.
//
// Requests without an Authorization header proceed as the anonymous
// principal: whether anonymity is acceptable is an authorization
// decision made per handler, not an authentication one. A header that is
// present but invalid is rejected with 401.
type PrincipalMiddleware struct {
	jwtService auth.JWTService
}

// NewPrincipalMiddleware creates a new PrincipalMiddleware with the given dependencies.
func NewPrincipalMiddleware(jwtService auth.JWTService) *PrincipalMiddleware {
	return &PrincipalMiddleware{jwtService: jwtService}
}

// Resolve validates the bearer token, if any, and attaches the resulting
// principal snapshot to the request context.
func (m *PrincipalMiddleware) Resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			ctx := auth.WithPrincipal(r.Context(), auth.Anonymous)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		// Check Bearer prefix
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), parts[1])
		if err != nil {
			switch err {
			case auth.ErrExpiredToken:
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case auth.ErrInvalidToken, auth.ErrWrongTokenType:
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			default:
				logger.FromContext(r.Context()).
					Error("failed to validate token", "error", redact.Error(err))
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			}
			return
		}

		principal := auth.NewPrincipal(claims.UserID, claims.Roles, claims.Permissions)
		ctx := auth.WithPrincipal(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
