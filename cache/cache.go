// Package cache implements the cache-aside layer over analytics results and
// the shared category list. The cache is strictly an optimization: every
// backend failure is absorbed and treated as a miss or no-op, never surfaced
// to callers.
package cache

import (
	"context"
	"encoding/json"
	"os"
	"strconv"
	"time"
)

// Default TTLs. Per-user analytics go stale within 15 minutes at worst; the
// shared category list within an hour.
const (
	DefaultAnalyticsTTL  = 15 * time.Minute
	DefaultCategoriesTTL = time.Hour
)

// Store is the best-effort cache backend. Implementations must never return
// errors: a failed Get is a miss, failed writes report false and are logged
// by the implementation.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) bool
	Delete(ctx context.Context, keys ...string) bool
	// DeletePattern removes every key matching a glob-style pattern such as
	// "analytics:42*".
	DeletePattern(ctx context.Context, pattern string) bool
}

// AnalyticsTTL returns the TTL for per-user analytics entries, overridable
// via CACHE_ANALYTICS_TTL (seconds).
func AnalyticsTTL() time.Duration {
	return ttlFromEnv("CACHE_ANALYTICS_TTL", DefaultAnalyticsTTL)
}

// CategoriesTTL returns the TTL for the shared category list, overridable
// via CACHE_CATEGORIES_TTL (seconds).
func CategoriesTTL() time.Duration {
	return ttlFromEnv("CACHE_CATEGORIES_TTL", DefaultCategoriesTTL)
}

func ttlFromEnv(name string, fallback time.Duration) time.Duration {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}

// GetOrCompute returns the cached value for key, or computes, stores and
// returns it on a miss. Stored values are JSON round-tripped. Cache failures
// degrade to direct computation.
func GetOrCompute[T any](ctx context.Context, store Store, key string, ttl time.Duration, compute func() (T, error)) (T, error) {
	var result T

	if data, ok := store.Get(ctx, key); ok {
		if err := json.Unmarshal(data, &result); err == nil {
			return result, nil
		}
		// Corrupt entry: drop it and recompute.
		store.Delete(ctx, key)
	}

	result, err := compute()
	if err != nil {
		return result, err
	}

	if data, err := json.Marshal(result); err == nil {
		store.Set(ctx, key, data, ttl)
	}

	return result, nil
}
