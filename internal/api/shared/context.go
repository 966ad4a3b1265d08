package shared

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
)

// ContextKey is the key type for context values owned by this package.
type ContextKey string

// TraceIDKey is the key for the trace ID in the request context.
const TraceIDKey ContextKey = "traceID"

// traceIDLength is the number of random bytes in a generated trace ID
// (32 hex characters).
const traceIDLength = 16

// SetTraceID adds the given trace ID to the context, generating a fresh
// one when id is empty. Trace IDs correlate logs and error responses.
func SetTraceID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = generateTraceID()
	}
	return context.WithValue(ctx, TraceIDKey, id)
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// generateTraceID creates a random trace ID for request tracking.
func generateTraceID() string {
	b := make([]byte, traceIDLength)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing is effectively a broken platform; log and
		// carry on without a trace ID rather than taking the request down.
		slog.Error("failed to generate trace ID", "error", err)
		return ""
	}
	return hex.EncodeToString(b)
}
