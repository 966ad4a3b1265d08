package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/onurvatan/Clean-KISS-Architecture/internal/idempotency"
	"github.com/onurvatan/Clean-KISS-Architecture/internal/platform/logger"
	"github.com/onurvatan/Clean-KISS-Architecture/internal/store"
)

// IdempotencyStore implements idempotency.Store against the
// idempotency_records table. Entries past their expiry are invisible to
// readers; a periodic external cleanup (or the upsert itself) reclaims
// them.
type IdempotencyStore struct {
	db store.DBTX
}

// NewIdempotencyStore creates a PostgreSQL-backed idempotency store.
func NewIdempotencyStore(db store.DBTX) *IdempotencyStore {
	return &IdempotencyStore{db: db}
}

var _ idempotency.Store = (*IdempotencyStore)(nil)

// TryGet implements idempotency.Store. Expired records are misses.
func (s *IdempotencyStore) TryGet(ctx context.Context, key string) (idempotency.Record, bool, error) {
	query := `
		SELECT status_code, content_type, body
		FROM idempotency_records
		WHERE key = $1 AND expires_at > NOW()
	`

	var rec idempotency.Record
	err := s.db.QueryRowContext(ctx, query, key).Scan(
		&rec.StatusCode,
		&rec.ContentType,
		&rec.Body,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return idempotency.Record{}, false, nil
	}
	if err != nil {
		return idempotency.Record{}, false, fmt.Errorf("failed to query idempotency record: %w", err)
	}

	return rec, true, nil
}

// Store implements idempotency.Store as an upsert; the last write for a
// given key wins.
func (s *IdempotencyStore) Store(ctx context.Context, key string, rec idempotency.Record, ttl time.Duration) error {
	log := logger.FromContext(ctx)

	if ttl <= 0 {
		ttl = idempotency.DefaultTTL
	}

	query := `
		INSERT INTO idempotency_records (key, status_code, content_type, body, created_at, expires_at)
		VALUES ($1, $2, $3, $4, NOW(), $5)
		ON CONFLICT (key) DO UPDATE
		SET status_code = EXCLUDED.status_code,
		    content_type = EXCLUDED.content_type,
		    body = EXCLUDED.body,
		    created_at = EXCLUDED.created_at,
		    expires_at = EXCLUDED.expires_at
	`

	_, err := s.db.ExecContext(ctx, query,
		key,
		rec.StatusCode,
		rec.ContentType,
		rec.Body,
		time.Now().UTC().Add(ttl),
	)
	if err != nil {
		log.Error("failed to store idempotency record",
			"key", key,
			"error", err)
		return fmt.Errorf("failed to store idempotency record: %w", err)
	}

	return nil
}
