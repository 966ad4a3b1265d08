package middleware

import (
	"log/slog"
	"net/http"

	"github.com/onurvatan/Clean-KISS-Architecture/internal/api/shared"
	"github.com/onurvatan/Clean-KISS-Architecture/internal/platform/logger"
)

// CorrelationIDHeader is the inbound header whose value, when present,
// is used as the request's trace ID instead of a generated one.
const CorrelationIDHeader = "X-Correlation-Id"

// Trace adds a trace ID to the request context and attaches a
// trace-scoped logger. It should be applied early in the middleware chain
// so all subsequent handlers share the same trace ID.
func Trace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Honor a client-supplied correlation ID; generate otherwise.
		ctx := shared.SetTraceID(r.Context(), r.Header.Get(CorrelationIDHeader))
		traceID := shared.GetTraceID(ctx)

		log := slog.With(slog.String("trace_id", traceID))
		ctx = logger.WithLogger(ctx, log)

		log.Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
