package idempotency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a Redis-backed implementation of Store for deployments
// where replicas must share the replay cache. Records are stored as JSON
// under namespaced keys with a per-key TTL handled by Redis.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a store backed by the given Redis client. The
// client's lifetime is owned by the caller.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

var _ Store = (*RedisStore)(nil)

// TryGet implements Store. A missing or expired key is a miss, not an
// error.
func (s *RedisStore) TryGet(ctx context.Context, key string) (Record, bool, error) {
	raw, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("idempotency redis get: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		// A corrupt record is unreadable; treat it as absent rather than
		// failing every retry carrying this key.
		return Record{}, false, nil
	}
	return rec, true, nil
}

// Store implements Store via SET with expiry; the last write wins.
func (s *RedisStore) Store(ctx context.Context, key string, rec Record, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("idempotency record marshal: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("idempotency redis set: %w", err)
	}
	return nil
}
