// Package idempotency provides the replay store used to guarantee
// at-most-once side effects for retried mutating requests. A record maps
// a client-supplied key to the response recorded on the first successful
// pass-through; subsequent requests with the same key replay that
// response verbatim for the retention window.
package idempotency

import (
	"context"
	"time"
)

// DefaultTTL is the retention window for stored records. Entries are not
// deleted explicitly; expiry is the only eviction.
const DefaultTTL = 24 * time.Hour

// keyPrefix namespaces store entries so they cannot collide with
// unrelated data sharing the same backing store.
const keyPrefix = "idem:"

// Record is the stored response replayed for a duplicate request.
type Record struct {
	StatusCode  int    `json:"status_code"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// Store is the mapping from idempotency key to a previously recorded
// response. Implementations are shared, concurrently accessed resources;
// callers must not assume atomicity across a TryGet/Store pair (the
// miss-miss race is last-writer-wins, see the package tests).
type Store interface {
	// TryGet looks up the record for key. A miss returns ok=false with a
	// zero Record and a nil error; errors are reserved for backing-store
	// faults.
	TryGet(ctx context.Context, key string) (Record, bool, error)

	// Store upserts the record for key with the given retention window.
	// The last write for a given key wins if called concurrently.
	Store(ctx context.Context, key string, rec Record, ttl time.Duration) error
}
