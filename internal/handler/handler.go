// Package handler defines the generic request-handler contract shared by
// all business operations, plus the decorators that compose around it.
// A handler is a pure function from (request, context) to a Result; no
// exceptions cross component boundaries for expected outcomes.
package handler

import (
	"context"

	"github.com/onurvatan/Clean-KISS-Architecture/internal/result"
)

// Handler processes a request of type Req and produces a Result carrying
// a Resp. Implementations must honor context cancellation on any blocking
// call they make.
type Handler[Req, Resp any] interface {
	Handle(ctx context.Context, req Req) result.Result[Resp]
}

// Func adapts an ordinary function to the Handler interface.
type Func[Req, Resp any] func(ctx context.Context, req Req) result.Result[Resp]

// Handle implements Handler.
func (f Func[Req, Resp]) Handle(ctx context.Context, req Req) result.Result[Resp] {
	return f(ctx, req)
}

// Decorator wraps a handler to add cross-cutting behavior, following the
// same composition pattern as HTTP middleware.
type Decorator[Req, Resp any] func(Handler[Req, Resp]) Handler[Req, Resp]

// Apply applies decorators to a handler. The first decorator in the list
// becomes the outermost wrapper and executes first.
func Apply[Req, Resp any](h Handler[Req, Resp], decorators ...Decorator[Req, Resp]) Handler[Req, Resp] {
	for i := len(decorators) - 1; i >= 0; i-- {
		h = decorators[i](h)
	}
	return h
}
