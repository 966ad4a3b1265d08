package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/onurvatan/Clean-KISS-Architecture/internal/idempotency"
	"github.com/onurvatan/Clean-KISS-Architecture/internal/platform/logger"
)

// Header names owned by the idempotency layer.
const (
	// IdempotencyKeyHeader is the client-supplied opaque token identifying
	// a logical operation attempt.
	IdempotencyKeyHeader = "X-Idempotency-Key"

	// ReplayedHeader tags responses served from the replay store.
	ReplayedHeader = "X-Idempotent-Replayed"
)

// IdempotencyMiddleware enforces replay semantics for mutating requests:
// a repeated request bearing a previously seen key receives the recorded
// response verbatim and never re-executes business logic.
type IdempotencyMiddleware struct {
	store        idempotency.Store
	ttl          time.Duration
	maxBodyBytes int
}

// NewIdempotencyMiddleware creates the middleware. ttl <= 0 falls back to
// the store default; maxBodyBytes bounds the response size buffered for
// recording (larger responses pass through unrecorded).
func NewIdempotencyMiddleware(store idempotency.Store, ttl time.Duration, maxBodyBytes int) *IdempotencyMiddleware {
	if ttl <= 0 {
		ttl = idempotency.DefaultTTL
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = 1 << 20
	}
	return &IdempotencyMiddleware{store: store, ttl: ttl, maxBodyBytes: maxBodyBytes}
}

// isMutating reports whether the method can have side effects worth
// replaying. Safe methods always bypass the idempotency layer.
func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// Handle wraps the downstream pipeline with replay orchestration.
func (m *IdempotencyMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isMutating(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		// Idempotency is opt-in per request.
		key := r.Header.Get(IdempotencyKeyHeader)
		if key == "" {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromContext(r.Context())

		rec, ok, err := m.store.TryGet(r.Context(), key)
		if err != nil {
			// Fail open: a broken replay store must not block all
			// mutations. The request executes normally; at-most-once
			// degrades to at-least-once until the store recovers.
			log.Error("idempotency store lookup failed, executing request",
				"key", key,
				"error", err)
		} else if ok {
			// Replay the recorded response verbatim; the downstream
			// handler is never invoked.
			if rec.ContentType != "" {
				w.Header().Set("Content-Type", rec.ContentType)
			}
			w.Header().Set(ReplayedHeader, "true")
			w.WriteHeader(rec.StatusCode)
			if _, err := w.Write(rec.Body); err != nil {
				log.Error("failed to write replayed response", "key", key, "error", err)
			}
			log.Debug("replayed idempotent response",
				"key", key,
				"status_code", rec.StatusCode)
			return
		}

		// Miss: capture the response so it can be persisted after the
		// downstream call completes.
		recorder := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK, limit: m.maxBodyBytes}
		next.ServeHTTP(recorder, r)

		// An aborted attempt must not poison the cache with an
		// incomplete result; a future retry with this key re-executes.
		if r.Context().Err() != nil {
			log.Debug("request cancelled, skipping idempotency record", "key", key)
			return
		}

		if recorder.overflowed {
			log.Warn("response exceeds idempotency buffer limit, not recorded",
				"key", key,
				"limit_bytes", m.maxBodyBytes)
			return
		}

		record := idempotency.Record{
			StatusCode:  recorder.statusCode,
			ContentType: recorder.Header().Get("Content-Type"),
			Body:        recorder.body.Bytes(),
		}
		if err := m.store.Store(r.Context(), key, record, m.ttl); err != nil {
			// The response already went out; losing the record only means
			// a retry re-executes.
			log.Error("failed to store idempotency record", "key", key, "error", err)
		}
	})
}

// responseRecorder captures response status and body for idempotency
// recording while streaming them through to the real response channel.
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
	limit      int
	overflowed bool
}

func (rec *responseRecorder) WriteHeader(code int) {
	rec.statusCode = code
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *responseRecorder) Write(b []byte) (int, error) {
	if !rec.overflowed {
		if rec.body.Len()+len(b) > rec.limit {
			// Stop buffering; the entry will not be recorded.
			rec.overflowed = true
			rec.body.Reset()
		} else {
			rec.body.Write(b)
		}
	}
	return rec.ResponseWriter.Write(b)
}
