package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/imudaynigam/finance-tracker-techbridge/cache"
	"github.com/imudaynigam/finance-tracker-techbridge/models"
	"github.com/imudaynigam/finance-tracker-techbridge/scope"
)

func TestReadOnlyScopeClearsCachedAnalytics(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()
	svc := NewAnalyticsService(nil, store)

	store.Set(ctx, cache.UserAnalyticsKey("viewer"), []byte(`{}`), time.Minute)
	store.Set(ctx, cache.MonthlyTrendsKey("viewer", 2024), []byte(`{}`), time.Minute)
	store.Set(ctx, cache.UserAnalyticsKey("other"), []byte(`{}`), time.Minute)

	// Read-only responses span every user, so anything cached under this
	// identity must be dropped before serving.
	svc.guardReadOnlyScope(ctx, scope.ForCaller("viewer", models.RoleReadOnly))

	_, ok := store.Get(ctx, cache.UserAnalyticsKey("viewer"))
	assert.False(t, ok)
	_, ok = store.Get(ctx, cache.MonthlyTrendsKey("viewer", 2024))
	assert.False(t, ok)

	_, ok = store.Get(ctx, cache.UserAnalyticsKey("other"))
	assert.True(t, ok, "other users' entries are untouched")
}

func TestOwnerScopeKeepsCachedAnalytics(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()
	svc := NewAnalyticsService(nil, store)

	store.Set(ctx, cache.UserAnalyticsKey("u1"), []byte(`{}`), time.Minute)

	svc.guardReadOnlyScope(ctx, scope.ForCaller("u1", models.RoleUser))

	_, ok := store.Get(ctx, cache.UserAnalyticsKey("u1"))
	assert.True(t, ok, "owner-scoped callers serve from cache")
}
