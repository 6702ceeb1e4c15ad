package cache

import (
	"context"
	"fmt"
)

// CategoriesKey holds the shared active-category list.
const CategoriesKey = "categories:all"

// Key construction is deterministic and encodes every parameter that affects
// the result: operation, caller identity and query parameters. All per-user
// analytics keys share the "analytics:{userID}" prefix so a single pattern
// delete invalidates them together.

func UserAnalyticsKey(userID string) string {
	return "analytics:" + userID
}

func MonthlyTrendsKey(userID string, year int) string {
	return fmt.Sprintf("analytics:%s:monthly:%d", userID, year)
}

func YearlyOverviewKey(userID string, year int) string {
	return fmt.Sprintf("analytics:%s:yearly:%d", userID, year)
}

func CategoryBreakdownKey(userID string, year, month int, txType string) string {
	return fmt.Sprintf("analytics:%s:categories:%d:%d:%s", userID, year, month, txType)
}

func userAnalyticsPattern(userID string) string {
	return "analytics:" + userID + "*"
}

// InvalidateUserAnalytics drops every cached analytics entry for one user.
// Called after any transaction write touching that user, and proactively for
// read-only callers whose scope semantics differ from cached user-scoped
// entries.
func InvalidateUserAnalytics(ctx context.Context, store Store, userID string) {
	store.DeletePattern(ctx, userAnalyticsPattern(userID))
}

// InvalidateCategories drops the shared category list after any category
// write.
func InvalidateCategories(ctx context.Context, store Store) {
	store.Delete(ctx, CategoriesKey)
}
