package handler

import (
	"context"

	"github.com/onurvatan/Clean-KISS-Architecture/internal/result"
)

// Authorizer answers permission and role questions for the current
// principal. Checks are side-effect-free reads against an already-resolved
// snapshot; a missing permission yields false, never an error.
type Authorizer interface {
	HasPermission(ctx context.Context, permission string) bool
	IsInRole(ctx context.Context, role string) bool
}

// Requirement is a declared permission or role a caller must hold to
// invoke a handler. Exactly one of the two fields is set; the
// constructors below are the only way to build one.
type Requirement struct {
	permission string
	role       string
}

// RequirePermission declares that callers must hold the named permission.
func RequirePermission(name string) Requirement {
	return Requirement{permission: name}
}

// RequireRole declares that callers must hold the named role.
func RequireRole(name string) Requirement {
	return Requirement{role: name}
}

// Registry maps handler identity to its ordered list of requirements.
// It replaces attribute-based metadata discovery with an explicit
// registration table populated once during startup wiring; it is not
// written to after composition and is therefore safe for concurrent
// lookups.
type Registry struct {
	requirements map[string][]Requirement
}

// NewRegistry creates an empty requirement registry.
func NewRegistry() *Registry {
	return &Registry{requirements: make(map[string][]Requirement)}
}

// Register attaches requirements to the named handler, appending to any
// already registered. Declaration order is evaluation order.
func (r *Registry) Register(handlerName string, reqs ...Requirement) {
	r.requirements[handlerName] = append(r.requirements[handlerName], reqs...)
}

// RequirementsFor returns the requirements registered for the named
// handler. A handler with no registration has zero requirements and
// always passes.
func (r *Registry) RequirementsFor(handlerName string) []Requirement {
	return r.requirements[handlerName]
}

// Authorized wraps a handler with requirement enforcement. Requirements
// are resolved once at composition time; the zero-requirement case
// delegates with no per-call overhead. Checks run in declaration order
// and short-circuit on the first failure, returning Forbidden and never
// invoking the wrapped handler.
func Authorized[Req, Resp any](
	handlerName string,
	registry *Registry,
	authorizer Authorizer,
	inner Handler[Req, Resp],
) Handler[Req, Resp] {
	reqs := registry.RequirementsFor(handlerName)
	if len(reqs) == 0 {
		return inner
	}

	return Func[Req, Resp](func(ctx context.Context, req Req) result.Result[Resp] {
		for _, requirement := range reqs {
			switch {
			case requirement.permission != "":
				if !authorizer.HasPermission(ctx, requirement.permission) {
					return result.Forbidden[Resp]("Missing permission: " + requirement.permission)
				}
			case requirement.role != "":
				if !authorizer.IsInRole(ctx, requirement.role) {
					return result.Forbidden[Resp]("Missing role: " + requirement.role)
				}
			}
			// A requirement naming neither a permission nor a role is
			// inert; the constructors make that state unreachable.
		}
		return inner.Handle(ctx, req)
	})
}
