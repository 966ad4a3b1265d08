package idempotency_test

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/onurvatan/Clean-KISS-Architecture/internal/idempotency"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := idempotency.NewMemoryStore()
	ctx := context.Background()

	rec := idempotency.Record{
		StatusCode:  http.StatusCreated,
		ContentType: "application/json",
		Body:        []byte(`{"id":"abc"}`),
	}

	require.NoError(t, store.Store(ctx, "order-123", rec, time.Hour))

	got, ok, err := store.TryGet(ctx, "order-123")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rec, got)
}

func TestMemoryStoreMiss(t *testing.T) {
	t.Parallel()

	store := idempotency.NewMemoryStore()

	got, ok, err := store.TryGet(context.Background(), "never-stored")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, got)
}

func TestMemoryStoreExpiry(t *testing.T) {
	t.Parallel()

	now := time.Now()
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	advance := func(d time.Duration) {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(d)
	}

	store := idempotency.NewMemoryStore(idempotency.WithClock(clock))
	ctx := context.Background()

	rec := idempotency.Record{StatusCode: http.StatusOK, Body: []byte("ok")}
	require.NoError(t, store.Store(ctx, "short-lived", rec, time.Minute))

	// Retrievable immediately.
	_, ok, err := store.TryGet(ctx, "short-lived")
	require.NoError(t, err)
	assert.True(t, ok)

	// No longer retrievable after the TTL elapses.
	advance(2 * time.Minute)
	_, ok, err = store.TryGet(ctx, "short-lived")
	require.NoError(t, err)
	assert.False(t, ok)

	// Cleanup drops the expired entry as well.
	store.Cleanup()
	_, ok, err = store.TryGet(ctx, "short-lived")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreDefaultTTL(t *testing.T) {
	t.Parallel()

	now := time.Now()
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}

	store := idempotency.NewMemoryStore(idempotency.WithClock(clock))
	ctx := context.Background()

	// ttl <= 0 falls back to the 24h default.
	require.NoError(t, store.Store(ctx, "default-ttl", idempotency.Record{StatusCode: 200}, 0))

	mu.Lock()
	now = now.Add(23 * time.Hour)
	mu.Unlock()
	_, ok, err := store.TryGet(ctx, "default-ttl")
	require.NoError(t, err)
	assert.True(t, ok)

	mu.Lock()
	now = now.Add(2 * time.Hour)
	mu.Unlock()
	_, ok, err = store.TryGet(ctx, "default-ttl")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreLastWriteWins(t *testing.T) {
	t.Parallel()

	store := idempotency.NewMemoryStore()
	ctx := context.Background()

	first := idempotency.Record{StatusCode: http.StatusCreated, Body: []byte("first")}
	second := idempotency.Record{StatusCode: http.StatusCreated, Body: []byte("second")}

	require.NoError(t, store.Store(ctx, "raced", first, time.Hour))
	require.NoError(t, store.Store(ctx, "raced", second, time.Hour))

	got, ok, err := store.TryGet(ctx, "raced")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, second, got)
}

func TestMemoryStoreCancelledContext(t *testing.T) {
	t.Parallel()

	store := idempotency.NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Store(ctx, "cancelled", idempotency.Record{StatusCode: 200}, time.Hour)
	assert.Error(t, err)

	_, _, err = store.TryGet(ctx, "cancelled")
	assert.Error(t, err)
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	t.Parallel()

	store := idempotency.NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := "concurrent"
			_ = store.Store(ctx, key, idempotency.Record{StatusCode: 200}, time.Hour)
			_, _, _ = store.TryGet(ctx, key)
		}(i)
	}
	wg.Wait()

	_, ok, err := store.TryGet(ctx, "concurrent")
	require.NoError(t, err)
	assert.True(t, ok)
}
