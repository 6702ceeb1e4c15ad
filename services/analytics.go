package services

import (
	"context"
	"log"
	"time"

	"github.com/imudaynigam/finance-tracker-techbridge/cache"
	"github.com/imudaynigam/finance-tracker-techbridge/models"
	"github.com/imudaynigam/finance-tracker-techbridge/scope"
	"github.com/imudaynigam/finance-tracker-techbridge/utils"
)

// AnalyticsService wraps the aggregation engine with the cache-aside layer.
// Results are cached under deterministic keys for 15 minutes; a cache hit is
// returned verbatim, so bounded staleness up to the TTL is accepted.
type AnalyticsService struct {
	txns  *TransactionService
	cache cache.Store
}

func NewAnalyticsService(txns *TransactionService, store cache.Store) *AnalyticsService {
	return &AnalyticsService{txns: txns, cache: store}
}

// guardReadOnlyScope drops any cached per-user analytics before serving a
// read-only caller. Read-only responses span every user, so entries cached
// under this identity from a prior role assignment must not leak through.
func (s *AnalyticsService) guardReadOnlyScope(ctx context.Context, sc scope.Scope) {
	if sc.ReadOnly() {
		cache.InvalidateUserAnalytics(ctx, s.cache, sc.CallerID)
		log.Printf("🧹 Cleared cached analytics for read-only caller %s", utils.MaskID(sc.CallerID))
	}
}

// Totals returns the caller-visible income/expense summary.
func (s *AnalyticsService) Totals(ctx context.Context, sc scope.Scope) (models.Totals, error) {
	s.guardReadOnlyScope(ctx, sc)

	key := cache.UserAnalyticsKey(sc.CallerID)
	return cache.GetOrCompute(ctx, s.cache, key, cache.AnalyticsTTL(), func() (models.Totals, error) {
		txns, err := s.txns.FetchScoped(ctx, sc)
		if err != nil {
			return models.Totals{}, err
		}
		return TotalsByType(txns), nil
	})
}

// MonthlyTrends returns 12 month buckets for the year.
func (s *AnalyticsService) MonthlyTrends(ctx context.Context, sc scope.Scope, year int) (models.MonthlyTrends, error) {
	s.guardReadOnlyScope(ctx, sc)

	key := cache.MonthlyTrendsKey(sc.CallerID, year)
	return cache.GetOrCompute(ctx, s.cache, key, cache.AnalyticsTTL(), func() (models.MonthlyTrends, error) {
		txns, err := s.txns.FetchScoped(ctx, sc)
		if err != nil {
			return models.MonthlyTrends{}, err
		}
		return models.MonthlyTrends{
			Year:        year,
			MonthlyData: MonthlyTrend(txns, year),
		}, nil
	})
}

// Yearly returns the totals for one calendar year.
func (s *AnalyticsService) Yearly(ctx context.Context, sc scope.Scope, year int) (models.YearlyOverview, error) {
	s.guardReadOnlyScope(ctx, sc)

	key := cache.YearlyOverviewKey(sc.CallerID, year)
	return cache.GetOrCompute(ctx, s.cache, key, cache.AnalyticsTTL(), func() (models.YearlyOverview, error) {
		txns, err := s.txns.FetchScoped(ctx, sc)
		if err != nil {
			return models.YearlyOverview{}, err
		}
		return YearlyOverview(txns, year), nil
	})
}

// Categories returns the per-category sums for one calendar month.
func (s *AnalyticsService) Categories(ctx context.Context, sc scope.Scope, year, month int, txType string) (models.CategoryBreakdown, error) {
	s.guardReadOnlyScope(ctx, sc)

	if txType == "" {
		txType = models.TypeExpense
	}
	if !models.ValidTransactionType(txType) {
		return models.CategoryBreakdown{}, validationf("type must be income or expense")
	}
	if month < 1 || month > 12 {
		return models.CategoryBreakdown{}, validationf("month must be 1-12")
	}

	key := cache.CategoryBreakdownKey(sc.CallerID, year, month, txType)
	return cache.GetOrCompute(ctx, s.cache, key, cache.AnalyticsTTL(), func() (models.CategoryBreakdown, error) {
		txns, err := s.txns.FetchScoped(ctx, sc)
		if err != nil {
			return models.CategoryBreakdown{}, err
		}
		return CategoryBreakdown(txns, year, month, txType), nil
	})
}

// CurrentYear is the default year parameter for trend endpoints.
func CurrentYear() int {
	return time.Now().Year()
}
