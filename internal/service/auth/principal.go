package auth

import (
	"context"

	"github.com/google/uuid"
)

// Principal is the per-request identity snapshot derived from the bearer
// token's claims. It is constructed once at request start by the auth
// middleware, read-only for the duration of the request, and discarded
// at request end.
type Principal struct {
	ID            uuid.UUID
	Authenticated bool

	roles       map[string]struct{}
	permissions map[string]struct{}
}

// Anonymous is the principal used for requests without credentials.
var Anonymous = Principal{}

// NewPrincipal builds an authenticated principal snapshot from resolved
// claims.
func NewPrincipal(id uuid.UUID, roles, permissions []string) Principal {
	p := Principal{
		ID:            id,
		Authenticated: true,
		roles:         make(map[string]struct{}, len(roles)),
		permissions:   make(map[string]struct{}, len(permissions)),
	}
	for _, r := range roles {
		p.roles[r] = struct{}{}
	}
	for _, perm := range permissions {
		p.permissions[perm] = struct{}{}
	}
	return p
}

type principalContextKey struct{}

// WithPrincipal returns a context carrying the given principal snapshot.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// PrincipalFromContext retrieves the principal snapshot from the context.
// Requests that never passed through the auth middleware yield the
// anonymous principal.
func PrincipalFromContext(ctx context.Context) Principal {
	p, ok := ctx.Value(principalContextKey{}).(Principal)
	if !ok {
		return Anonymous
	}
	return p
}

// Authorizer answers permission and role questions for the current
// principal. All checks are set-membership against the already-resolved
// snapshot; absence of a permission simply yields false, never an error.
type Authorizer struct{}

// NewAuthorizer creates an Authorizer. It carries no state of its own;
// the principal snapshot travels in the request context.
func NewAuthorizer() *Authorizer {
	return &Authorizer{}
}

// HasPermission reports whether the current principal holds the given
// permission.
func (a *Authorizer) HasPermission(ctx context.Context, permission string) bool {
	p := PrincipalFromContext(ctx)
	_, ok := p.permissions[permission]
	return ok
}

// HasAnyPermission reports whether the current principal holds at least
// one of the given permissions.
func (a *Authorizer) HasAnyPermission(ctx context.Context, permissions ...string) bool {
	p := PrincipalFromContext(ctx)
	for _, perm := range permissions {
		if _, ok := p.permissions[perm]; ok {
			return true
		}
	}
	return false
}

// IsInRole reports whether the current principal holds the given role.
func (a *Authorizer) IsInRole(ctx context.Context, role string) bool {
	p := PrincipalFromContext(ctx)
	_, ok := p.roles[role]
	return ok
}

// UserID returns the identity of the current principal, or false if the
// request is unauthenticated.
func (a *Authorizer) UserID(ctx context.Context) (uuid.UUID, bool) {
	p := PrincipalFromContext(ctx)
	if !p.Authenticated {
		return uuid.Nil, false
	}
	return p.ID, true
}
