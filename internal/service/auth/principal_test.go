package auth_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/onurvatan/Clean-KISS-Architecture/internal/service/auth"
	"github.com/stretchr/testify/assert"
)

func TestAuthorizer(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	authorizer := auth.NewAuthorizer()

	ctx := auth.WithPrincipal(context.Background(), auth.NewPrincipal(
		userID,
		[]string{"admin"},
		[]string{"students:create", "students:read"},
	))

	t.Run("has permission", func(t *testing.T) {
		assert.True(t, authorizer.HasPermission(ctx, "students:create"))
		assert.True(t, authorizer.HasPermission(ctx, "students:read"))
	})

	t.Run("missing permission yields false, not an error", func(t *testing.T) {
		assert.False(t, authorizer.HasPermission(ctx, "students:delete"))
		assert.False(t, authorizer.HasPermission(ctx, ""))
	})

	t.Run("has any permission", func(t *testing.T) {
		assert.True(t, authorizer.HasAnyPermission(ctx, "students:delete", "students:read"))
		assert.False(t, authorizer.HasAnyPermission(ctx, "students:delete", "students:update"))
		assert.False(t, authorizer.HasAnyPermission(ctx))
	})

	t.Run("is in role", func(t *testing.T) {
		assert.True(t, authorizer.IsInRole(ctx, "admin"))
		assert.False(t, authorizer.IsInRole(ctx, "registrar"))
	})

	t.Run("user id of authenticated principal", func(t *testing.T) {
		id, ok := authorizer.UserID(ctx)
		assert.True(t, ok)
		assert.Equal(t, userID, id)
	})
}

func TestAuthorizerAnonymous(t *testing.T) {
	t.Parallel()

	authorizer := auth.NewAuthorizer()
	ctx := context.Background() // never passed through the auth middleware

	assert.False(t, authorizer.HasPermission(ctx, "students:read"))
	assert.False(t, authorizer.IsInRole(ctx, "admin"))

	id, ok := authorizer.UserID(ctx)
	assert.False(t, ok)
	assert.Equal(t, uuid.Nil, id)
}
