package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Value string `json:"value"`
	N     int    `json:"n"`
}

// brokenStore simulates an unavailable cache backend: every operation fails.
type brokenStore struct{}

func (brokenStore) Get(context.Context, string) ([]byte, bool)            { return nil, false }
func (brokenStore) Set(context.Context, string, []byte, time.Duration) bool { return false }
func (brokenStore) Delete(context.Context, ...string) bool                  { return false }
func (brokenStore) DeletePattern(context.Context, string) bool              { return false }

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, ok := store.Get(ctx, "missing")
	assert.False(t, ok)

	require.True(t, store.Set(ctx, "k", []byte("v"), time.Minute))

	data, ok := store.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), data)

	store.Delete(ctx, "k")
	_, ok = store.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryStoreTTL(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	store.Set(ctx, "short", []byte("v"), -time.Second)

	_, ok := store.Get(ctx, "short")
	assert.False(t, ok, "expired entries read as misses")
	assert.Equal(t, 0, store.Size())
}

func TestMemoryStoreDeletePattern(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	store.Set(ctx, UserAnalyticsKey("42"), []byte("a"), time.Minute)
	store.Set(ctx, MonthlyTrendsKey("42", 2024), []byte("b"), time.Minute)
	store.Set(ctx, UserAnalyticsKey("43"), []byte("c"), time.Minute)
	store.Set(ctx, CategoriesKey, []byte("d"), time.Minute)

	InvalidateUserAnalytics(ctx, store, "42")

	_, ok := store.Get(ctx, UserAnalyticsKey("42"))
	assert.False(t, ok)
	_, ok = store.Get(ctx, MonthlyTrendsKey("42", 2024))
	assert.False(t, ok)

	// Other users and the shared list survive.
	_, ok = store.Get(ctx, UserAnalyticsKey("43"))
	assert.True(t, ok)
	_, ok = store.Get(ctx, CategoriesKey)
	assert.True(t, ok)
}

func TestMemoryStoreExpiredDropSparesNewerWrite(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	// An expired entry observed before a concurrent overwrite must not take
	// the fresh value down with it.
	stale := memoryItem{data: []byte("old"), expiresAt: time.Now().Add(-time.Second)}
	store.Set(ctx, "k", []byte("new"), time.Minute)

	store.dropExpired("k", stale)

	data, ok := store.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("new"), data)
}

func TestMemoryStoreExpiredDropRemovesObservedEntry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	store.Set(ctx, "k", []byte("v"), -time.Second)
	store.mu.RLock()
	observed := store.items["k"]
	store.mu.RUnlock()

	store.dropExpired("k", observed)

	assert.Equal(t, 0, store.Size())
}

func TestMemoryStoreCleanExpired(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	store.Set(ctx, "live", []byte("a"), time.Minute)
	store.Set(ctx, "dead1", []byte("b"), -time.Second)
	store.Set(ctx, "dead2", []byte("c"), -time.Second)

	assert.Equal(t, 2, store.CleanExpired())
	assert.Equal(t, 1, store.Size())
}

func TestGetOrComputeMissThenHit(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	computed := 0
	compute := func() (payload, error) {
		computed++
		return payload{Value: "hello", N: computed}, nil
	}

	first, err := GetOrCompute(ctx, store, "k", time.Minute, compute)
	require.NoError(t, err)
	assert.Equal(t, 1, computed)

	// Second call with no intervening write returns the cached value
	// verbatim: no recompute, identical result.
	second, err := GetOrCompute(ctx, store, "k", time.Minute, compute)
	require.NoError(t, err)
	assert.Equal(t, 1, computed)
	assert.Equal(t, first, second)
}

func TestGetOrComputeRecomputesAfterInvalidation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	key := UserAnalyticsKey("u1")

	computed := 0
	compute := func() (payload, error) {
		computed++
		return payload{N: computed}, nil
	}

	_, err := GetOrCompute(ctx, store, key, time.Minute, compute)
	require.NoError(t, err)

	// A transaction write for this owner drops the cached entry, so the
	// next read must recompute rather than serve the pre-write value.
	InvalidateUserAnalytics(ctx, store, "u1")

	result, err := GetOrCompute(ctx, store, key, time.Minute, compute)
	require.NoError(t, err)
	assert.Equal(t, 2, computed)
	assert.Equal(t, 2, result.N)
}

func TestGetOrComputeDegradesWhenStoreBroken(t *testing.T) {
	ctx := context.Background()

	computed := 0
	compute := func() (payload, error) {
		computed++
		return payload{Value: "direct"}, nil
	}

	// The cache is an optimization, never a correctness dependency: a dead
	// backend means every call computes directly, with no error surfaced.
	for i := 0; i < 3; i++ {
		result, err := GetOrCompute(ctx, brokenStore{}, "k", time.Minute, compute)
		require.NoError(t, err)
		assert.Equal(t, "direct", result.Value)
	}
	assert.Equal(t, 3, computed)
}

func TestGetOrComputePropagatesComputeError(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	wantErr := errors.New("storage down")
	_, err := GetOrCompute(ctx, store, "k", time.Minute, func() (payload, error) {
		return payload{}, wantErr
	})
	assert.ErrorIs(t, err, wantErr)

	// Failed computations are not cached.
	_, ok := store.Get(ctx, "k")
	assert.False(t, ok)
}

func TestGetOrComputeDropsCorruptEntries(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	store.Set(ctx, "k", []byte("{not json"), time.Minute)

	result, err := GetOrCompute(ctx, store, "k", time.Minute, func() (payload, error) {
		return payload{Value: "fresh"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", result.Value)
}

func TestKeyConstruction(t *testing.T) {
	// Keys must encode every parameter that affects the result.
	assert.Equal(t, "analytics:42", UserAnalyticsKey("42"))
	assert.NotEqual(t, UserAnalyticsKey("42"), UserAnalyticsKey("43"))

	assert.NotEqual(t, MonthlyTrendsKey("42", 2024), MonthlyTrendsKey("42", 2025))
	assert.NotEqual(t, MonthlyTrendsKey("42", 2024), MonthlyTrendsKey("43", 2024))
	assert.NotEqual(t, MonthlyTrendsKey("42", 2024), YearlyOverviewKey("42", 2024))

	assert.NotEqual(t,
		CategoryBreakdownKey("42", 2024, 3, "expense"),
		CategoryBreakdownKey("42", 2024, 4, "expense"))
	assert.NotEqual(t,
		CategoryBreakdownKey("42", 2024, 3, "expense"),
		CategoryBreakdownKey("42", 2024, 3, "income"))
}

func TestTTLFromEnv(t *testing.T) {
	t.Setenv("CACHE_ANALYTICS_TTL", "60")
	assert.Equal(t, time.Minute, AnalyticsTTL())

	t.Setenv("CACHE_ANALYTICS_TTL", "not-a-number")
	assert.Equal(t, DefaultAnalyticsTTL, AnalyticsTTL())

	t.Setenv("CACHE_CATEGORIES_TTL", "")
	assert.Equal(t, DefaultCategoriesTTL, CategoriesTTL())
}
