package idempotency

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory implementation of Store with per-entry
// expiry. It is safe for concurrent use and suitable for single-process
// deployments and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry

	now          func() time.Time // Injectable for testing expiry
	cleanupEvery time.Duration
}

type memoryEntry struct {
	rec       Record
	expiresAt time.Time
}

// MemoryOption customizes a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithClock overrides the store's time source. Used by tests to step
// past a record's TTL without sleeping.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) { s.now = now }
}

// WithCleanupEvery sets the janitor sweep interval.
func WithCleanupEvery(d time.Duration) MemoryOption {
	return func(s *MemoryStore) { s.cleanupEvery = d }
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		entries:      make(map[string]memoryEntry),
		now:          time.Now,
		cleanupEvery: 10 * time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ Store = (*MemoryStore)(nil)

// TryGet implements Store. Expired entries are treated as misses even if
// the janitor has not swept them yet.
func (s *MemoryStore) TryGet(ctx context.Context, key string) (Record, bool, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, false, err
	}

	s.mu.RLock()
	ent, ok := s.entries[keyPrefix+key]
	s.mu.RUnlock()

	if !ok || s.now().After(ent.expiresAt) {
		return Record{}, false, nil
	}
	return ent.rec, true, nil
}

// Store implements Store. The last write for a given key wins.
func (s *MemoryStore) Store(ctx context.Context, key string, rec Record, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[keyPrefix+key] = memoryEntry{rec: rec, expiresAt: s.now().Add(ttl)}
	return nil
}

// Cleanup removes expired entries.
func (s *MemoryStore) Cleanup() {
	cutoff := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	for k, ent := range s.entries {
		if cutoff.After(ent.expiresAt) {
			delete(s.entries, k)
		}
	}
}

// StartJanitor starts a goroutine that sweeps expired entries
// periodically. Stop it by cancelling the context.
func (s *MemoryStore) StartJanitor(ctx context.Context) {
	if s.cleanupEvery <= 0 {
		return
	}

	t := time.NewTicker(s.cleanupEvery)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.Cleanup()
			}
		}
	}()
}
