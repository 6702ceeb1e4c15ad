package services

import (
	"context"
	"time"

	"github.com/imudaynigam/finance-tracker-techbridge/models"
	"github.com/imudaynigam/finance-tracker-techbridge/scope"
)

// AdminService computes system-wide aggregates. Every entry point assumes the
// caller already passed the admin-only middleware; queries here are
// deliberately unscoped.
type AdminService struct {
	users      *UserService
	txns       *TransactionService
	categories *CategoryService
}

func NewAdminService(users *UserService, txns *TransactionService, categories *CategoryService) *AdminService {
	return &AdminService{users: users, txns: txns, categories: categories}
}

// unscoped is the query scope for admin aggregates: no owner filter.
func unscoped() scope.Scope {
	return scope.Scope{}
}

// Overview returns the admin dashboard counters.
func (s *AdminService) Overview(ctx context.Context) (models.SystemOverview, error) {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return models.SystemOverview{}, err
	}
	txns, err := s.txns.FetchScoped(ctx, unscoped())
	if err != nil {
		return models.SystemOverview{}, err
	}
	categoryCount, err := s.categories.Count(ctx)
	if err != nil {
		return models.SystemOverview{}, err
	}

	return SystemOverview(users, txns, categoryCount), nil
}

// Analytics returns system activity over the trailing window (default 30
// days): daily transaction trends, registrations, category usage and the top
// 10 most active users.
func (s *AdminService) Analytics(ctx context.Context, windowDays int) (models.SystemAnalytics, error) {
	if windowDays <= 0 {
		windowDays = 30
	}

	users, err := s.users.ListAll(ctx)
	if err != nil {
		return models.SystemAnalytics{}, err
	}
	txns, err := s.txns.FetchScoped(ctx, unscoped())
	if err != nil {
		return models.SystemAnalytics{}, err
	}

	now := time.Now()
	return models.SystemAnalytics{
		PeriodDays:        windowDays,
		TransactionTrends: DailyTransactionTrends(txns, windowDays, now),
		UserTrends:        RegistrationTrends(users, windowDays, now),
		CategoryUsage:     CategoryUsageStats(txns, windowDays, now),
		TopUsers:          TopActiveUsers(txns, windowDays, 10, now),
	}, nil
}

// UserDetails returns one user with their recent transactions and lifetime
// per-type and per-category statistics.
func (s *AdminService) UserDetails(ctx context.Context, userID string) (*models.User, []models.Transaction, models.Totals, models.CategoryBreakdown, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, models.Totals{}, models.CategoryBreakdown{}, err
	}

	sc := scope.Scope{CallerID: userID, Role: models.RoleUser, OwnerID: userID}
	txns, err := s.txns.FetchScoped(ctx, sc)
	if err != nil {
		return nil, nil, models.Totals{}, models.CategoryBreakdown{}, err
	}

	recent := txns
	if len(recent) > 50 {
		recent = recent[:50]
	}

	now := time.Now()
	breakdown := CategoryBreakdown(txns, now.Year(), int(now.Month()), models.TypeExpense)

	return user, recent, TotalsByType(txns), breakdown, nil
}
