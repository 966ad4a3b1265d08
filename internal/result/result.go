// Package result provides a tagged success/failure outcome type that
// replaces exception-style control flow for expected business conditions.
// Handlers construct a Result once; callers consume it once via Match.
package result

import "net/http"

// Result is the uniform outcome vocabulary shared between layers.
// Exactly one of {value, error message} is meaningful at a time,
// determined by whether the result is a failure. The status code is
// always set and drives the boundary (HTTP) mapping.
type Result[T any] struct {
	value      T
	errMessage string
	statusCode int
	failed     bool
}

// Ok returns a successful result carrying value with a 200 status.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value, statusCode: http.StatusOK}
}

// Created returns a successful result carrying value with a 201 status.
func Created[T any](value T) Result[T] {
	return Result[T]{value: value, statusCode: http.StatusCreated}
}

// NoContent returns a successful result with a 204 status and no
// meaningful value.
func NoContent[T any]() Result[T] {
	return Result[T]{statusCode: http.StatusNoContent}
}

// BadRequest returns a failed result with a 400 status.
func BadRequest[T any](message string) Result[T] {
	return fail[T](http.StatusBadRequest, message)
}

// Unauthorized returns a failed result with a 401 status.
func Unauthorized[T any](message string) Result[T] {
	return fail[T](http.StatusUnauthorized, message)
}

// Forbidden returns a failed result with a 403 status.
func Forbidden[T any](message string) Result[T] {
	return fail[T](http.StatusForbidden, message)
}

// NotFound returns a failed result with a 404 status.
func NotFound[T any](message string) Result[T] {
	return fail[T](http.StatusNotFound, message)
}

// Conflict returns a failed result with a 409 status.
func Conflict[T any](message string) Result[T] {
	return fail[T](http.StatusConflict, message)
}

// Internal returns a failed result with a 500 status. The message must
// already be safe to show to a client; raw errors belong in the logs.
func Internal[T any](message string) Result[T] {
	return fail[T](http.StatusInternalServerError, message)
}

func fail[T any](status int, message string) Result[T] {
	return Result[T]{errMessage: message, statusCode: status, failed: true}
}

// IsSuccess reports whether the result represents a successful outcome.
func (r Result[T]) IsSuccess() bool {
	return !r.failed
}

// StatusCode returns the outcome code. It is an abstract HTTP-style code;
// the transport layer maps it to wire semantics.
func (r Result[T]) StatusCode() int {
	return r.statusCode
}

// Error returns the failure message, or the empty string for successes.
func (r Result[T]) Error() string {
	return r.errMessage
}

// Value returns the success value. For failed results it returns the
// zero value; callers should branch through Match instead of calling
// Value directly.
func (r Result[T]) Value() T {
	return r.value
}

// Match folds the result into one of the two continuations. This is the
// sanctioned way to branch on success/failure: it makes forgetting the
// failure arm a compile error rather than a nil dereference at runtime.
func Match[T, R any](
	r Result[T],
	onSuccess func(value T, status int) R,
	onFailure func(message string, status int) R,
) R {
	if r.failed {
		return onFailure(r.errMessage, r.statusCode)
	}
	return onSuccess(r.value, r.statusCode)
}
