package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/onurvatan/Clean-KISS-Architecture/internal/handler"
	"github.com/onurvatan/Clean-KISS-Architecture/internal/result"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingAuthorizer counts every check it is asked to perform so tests
// can assert short-circuit behavior.
type recordingAuthorizer struct {
	permissions map[string]bool
	roles       map[string]bool

	permissionCalls []string
	roleCalls       []string
}

func (a *recordingAuthorizer) HasPermission(ctx context.Context, permission string) bool {
	a.permissionCalls = append(a.permissionCalls, permission)
	return a.permissions[permission]
}

func (a *recordingAuthorizer) IsInRole(ctx context.Context, role string) bool {
	a.roleCalls = append(a.roleCalls, role)
	return a.roles[role]
}

// countingHandler records how often it was invoked.
type countingHandler struct {
	calls int
}

func (h *countingHandler) Handle(ctx context.Context, req string) result.Result[string] {
	h.calls++
	return result.Ok("handled:" + req)
}

func TestAuthorizedPassthroughWithoutRequirements(t *testing.T) {
	t.Parallel()

	registry := handler.NewRegistry()
	authorizer := &recordingAuthorizer{}
	inner := &countingHandler{}

	// No registration for this handler, including for an anonymous caller.
	wrapped := handler.Authorized("students.list", registry, authorizer, handler.Handler[string, string](inner))

	res := wrapped.Handle(context.Background(), "req")
	require.True(t, res.IsSuccess())
	assert.Equal(t, "handled:req", res.Value())
	assert.Equal(t, 1, inner.calls)
	assert.Empty(t, authorizer.permissionCalls)
	assert.Empty(t, authorizer.roleCalls)
}

func TestAuthorizedDeniesMissingPermission(t *testing.T) {
	t.Parallel()

	registry := handler.NewRegistry()
	registry.Register("students.create", handler.RequirePermission("students:create"))

	authorizer := &recordingAuthorizer{permissions: map[string]bool{}}
	inner := &countingHandler{}

	wrapped := handler.Authorized("students.create", registry, authorizer, handler.Handler[string, string](inner))

	res := wrapped.Handle(context.Background(), "req")
	require.False(t, res.IsSuccess())
	assert.Equal(t, http.StatusForbidden, res.StatusCode())
	assert.Equal(t, "Missing permission: students:create", res.Error())

	// The wrapped handler's side effects must never run on denial.
	assert.Zero(t, inner.calls)
}

func TestAuthorizedDeniesMissingRole(t *testing.T) {
	t.Parallel()

	registry := handler.NewRegistry()
	registry.Register("students.delete",
		handler.RequirePermission("students:delete"),
		handler.RequireRole("admin"),
	)

	authorizer := &recordingAuthorizer{
		permissions: map[string]bool{"students:delete": true},
		roles:       map[string]bool{},
	}
	inner := &countingHandler{}

	wrapped := handler.Authorized("students.delete", registry, authorizer, handler.Handler[string, string](inner))

	res := wrapped.Handle(context.Background(), "req")
	require.False(t, res.IsSuccess())
	assert.Equal(t, http.StatusForbidden, res.StatusCode())
	assert.Equal(t, "Missing role: admin", res.Error())
	assert.Zero(t, inner.calls)
}

func TestAuthorizedConjunctiveFailFast(t *testing.T) {
	t.Parallel()

	registry := handler.NewRegistry()
	registry.Register("students.create",
		handler.RequirePermission("students:create"),
		handler.RequirePermission("students:audit"),
	)

	// First requirement fails; the second check must never be evaluated.
	authorizer := &recordingAuthorizer{permissions: map[string]bool{"students:audit": true}}
	inner := &countingHandler{}

	wrapped := handler.Authorized("students.create", registry, authorizer, handler.Handler[string, string](inner))

	res := wrapped.Handle(context.Background(), "req")
	require.False(t, res.IsSuccess())
	assert.Equal(t, "Missing permission: students:create", res.Error())
	assert.Equal(t, []string{"students:create"}, authorizer.permissionCalls)
	assert.Zero(t, inner.calls)
}

func TestAuthorizedDelegatesWhenAllRequirementsPass(t *testing.T) {
	t.Parallel()

	registry := handler.NewRegistry()
	registry.Register("students.delete",
		handler.RequirePermission("students:delete"),
		handler.RequireRole("admin"),
	)

	authorizer := &recordingAuthorizer{
		permissions: map[string]bool{"students:delete": true},
		roles:       map[string]bool{"admin": true},
	}
	inner := &countingHandler{}

	wrapped := handler.Authorized("students.delete", registry, authorizer, handler.Handler[string, string](inner))

	res := wrapped.Handle(context.Background(), "req")
	require.True(t, res.IsSuccess())
	assert.Equal(t, "handled:req", res.Value())
	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, []string{"students:delete"}, authorizer.permissionCalls)
	assert.Equal(t, []string{"admin"}, authorizer.roleCalls)
}

func TestApplyDecoratorOrder(t *testing.T) {
	t.Parallel()

	var order []string
	mkDecorator := func(name string) handler.Decorator[string, string] {
		return func(next handler.Handler[string, string]) handler.Handler[string, string] {
			return handler.Func[string, string](func(ctx context.Context, req string) result.Result[string] {
				order = append(order, name)
				return next.Handle(ctx, req)
			})
		}
	}

	base := handler.Func[string, string](func(ctx context.Context, req string) result.Result[string] {
		order = append(order, "base")
		return result.Ok(req)
	})

	decorated := handler.Apply[string, string](base, mkDecorator("outer"), mkDecorator("inner"))
	res := decorated.Handle(context.Background(), "x")

	require.True(t, res.IsSuccess())
	assert.Equal(t, []string{"outer", "inner", "base"}, order)
}
