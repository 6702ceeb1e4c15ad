package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imudaynigam/finance-tracker-techbridge/models"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return d
}

func txn(t *testing.T, userID, category, txType, amount, date string) models.Transaction {
	t.Helper()
	d := mustDate(t, date)
	return models.Transaction{
		UserID:       userID,
		CategoryName: category,
		Type:         txType,
		Amount:       decimal.RequireFromString(amount),
		Date:         d,
		CreatedAt:    d,
	}
}

func TestTotalsByType(t *testing.T) {
	txns := []models.Transaction{
		txn(t, "u1", "salary", models.TypeIncome, "2500.00", "2024-03-01"),
		txn(t, "u1", "food", models.TypeExpense, "10.00", "2024-03-05"),
		txn(t, "u1", "food", models.TypeExpense, "20.00", "2024-03-12"),
		txn(t, "u1", "transport", models.TypeExpense, "5.50", "2024-03-20"),
	}

	totals := TotalsByType(txns)

	assert.True(t, totals.Income.Equal(decimal.RequireFromString("2500.00")))
	assert.True(t, totals.Expenses.Equal(decimal.RequireFromString("35.50")))
	assert.True(t, totals.Net.Equal(decimal.RequireFromString("2464.50")))
	assert.Equal(t, 4, totals.Count)

	// Net is always income minus expenses.
	assert.True(t, totals.Net.Equal(totals.Income.Sub(totals.Expenses)))
}

func TestTotalsByTypeEmpty(t *testing.T) {
	totals := TotalsByType(nil)

	assert.True(t, totals.Income.IsZero())
	assert.True(t, totals.Expenses.IsZero())
	assert.True(t, totals.Net.IsZero())
	assert.Equal(t, 0, totals.Count)
}

func TestTotalsByTypeDecimalPrecision(t *testing.T) {
	// 0.1 summed ten times must be exactly 1, not 0.9999999999.
	var txns []models.Transaction
	for i := 0; i < 10; i++ {
		txns = append(txns, txn(t, "u1", "food", models.TypeExpense, "0.10", "2024-01-15"))
	}

	totals := TotalsByType(txns)
	assert.True(t, totals.Expenses.Equal(decimal.NewFromInt(1)))
}

func TestMonthlyTrend(t *testing.T) {
	txns := []models.Transaction{
		txn(t, "u1", "salary", models.TypeIncome, "1000.00", "2024-01-15"),
		txn(t, "u1", "food", models.TypeExpense, "200.00", "2024-01-20"),
		txn(t, "u1", "salary", models.TypeIncome, "1000.00", "2024-06-01"),
		txn(t, "u1", "bills", models.TypeExpense, "300.00", "2024-12-31"),
		// Different year, must not leak into 2024 buckets.
		txn(t, "u1", "salary", models.TypeIncome, "9999.00", "2023-01-15"),
	}

	buckets := MonthlyTrend(txns, 2024)
	require.Len(t, buckets, 12)

	assert.Equal(t, "Jan", buckets[0].Month)
	assert.Equal(t, "Dec", buckets[11].Month)

	assert.True(t, buckets[0].Income.Equal(decimal.NewFromInt(1000)))
	assert.True(t, buckets[0].Expenses.Equal(decimal.NewFromInt(200)))
	assert.True(t, buckets[0].Net.Equal(decimal.NewFromInt(800)))

	assert.True(t, buckets[5].Income.Equal(decimal.NewFromInt(1000)))
	assert.True(t, buckets[11].Expenses.Equal(decimal.NewFromInt(300)))

	// Untouched months stay zero.
	assert.True(t, buckets[2].Income.IsZero())
	assert.True(t, buckets[2].Expenses.IsZero())
}

func TestMonthlyTrendMatchesYearlyOverview(t *testing.T) {
	txns := []models.Transaction{
		txn(t, "u1", "salary", models.TypeIncome, "1200.50", "2024-02-01"),
		txn(t, "u1", "salary", models.TypeIncome, "800.25", "2024-07-14"),
		txn(t, "u1", "food", models.TypeExpense, "99.99", "2024-03-03"),
		txn(t, "u1", "bills", models.TypeExpense, "150.01", "2024-11-30"),
		txn(t, "u1", "salary", models.TypeIncome, "500.00", "2025-01-01"),
	}

	buckets := MonthlyTrend(txns, 2024)
	overview := YearlyOverview(txns, 2024)

	monthlyIncome := decimal.Zero
	monthlyExpenses := decimal.Zero
	for _, b := range buckets {
		monthlyIncome = monthlyIncome.Add(b.Income)
		monthlyExpenses = monthlyExpenses.Add(b.Expenses)
	}

	assert.True(t, monthlyIncome.Equal(overview.TotalIncome))
	assert.True(t, monthlyExpenses.Equal(overview.TotalExpenses))
}

func TestYearlyOverviewBoundaries(t *testing.T) {
	txns := []models.Transaction{
		txn(t, "u1", "salary", models.TypeIncome, "100.00", "2024-01-01"),
		txn(t, "u1", "salary", models.TypeIncome, "100.00", "2024-12-31"),
		txn(t, "u1", "salary", models.TypeIncome, "100.00", "2023-12-31"),
		txn(t, "u1", "salary", models.TypeIncome, "100.00", "2025-01-01"),
	}

	overview := YearlyOverview(txns, 2024)

	// Jan 1 and Dec 31 are inclusive; neighbors are out.
	assert.True(t, overview.TotalIncome.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, 2, overview.TransactionCount)
}

func TestSavingsRate(t *testing.T) {
	assert.True(t, SavingsRate(decimal.Zero, decimal.NewFromInt(50)).IsZero(),
		"zero income must not divide")

	rate := SavingsRate(decimal.NewFromInt(1000), decimal.NewFromInt(250))
	assert.True(t, rate.Equal(decimal.NewFromInt(75)))
}

func TestCategoryBreakdown(t *testing.T) {
	txns := []models.Transaction{
		txn(t, "u1", "food", models.TypeExpense, "10.00", "2024-03-02"),
		txn(t, "u1", "food", models.TypeExpense, "20.00", "2024-03-15"),
		txn(t, "u1", "food", models.TypeExpense, "5.00", "2024-03-28"),
		// Outside the month.
		txn(t, "u1", "food", models.TypeExpense, "99.00", "2024-04-01"),
		// Wrong type.
		txn(t, "u1", "salary", models.TypeIncome, "500.00", "2024-03-10"),
	}

	result := CategoryBreakdown(txns, 2024, 3, models.TypeExpense)

	require.Len(t, result.Breakdown, 1)
	assert.True(t, result.Breakdown["food"].Equal(decimal.RequireFromString("35.00")))
	assert.True(t, result.TotalExpenses.Equal(decimal.RequireFromString("35.00")))
}

func TestCategoryBreakdownUncategorized(t *testing.T) {
	txns := []models.Transaction{
		txn(t, "u1", "", models.TypeExpense, "12.34", "2024-05-05"),
	}

	result := CategoryBreakdown(txns, 2024, 5, models.TypeExpense)
	assert.True(t, result.Breakdown["Uncategorized"].Equal(decimal.RequireFromString("12.34")))
}

func TestSystemOverview(t *testing.T) {
	users := []models.User{
		{ID: "u1", Role: models.RoleAdmin},
		{ID: "u2", Role: models.RoleUser},
	}
	txns := []models.Transaction{
		txn(t, "u1", "salary", models.TypeIncome, "100.00", "2024-01-01"),
		txn(t, "u2", "food", models.TypeExpense, "10.00", "2024-01-02"),
		txn(t, "u2", "food", models.TypeExpense, "10.00", "2024-01-03"),
		txn(t, "u2", "food", models.TypeExpense, "10.00", "2024-01-04"),
		txn(t, "u2", "salary", models.TypeIncome, "50.00", "2024-01-05"),
	}

	overview := SystemOverview(users, txns, 10)

	assert.Equal(t, 2, overview.TotalUsers)
	assert.Equal(t, 5, overview.TotalTransactions)
	assert.Equal(t, 10, overview.TotalCategories)

	require.Len(t, overview.UserRoles, 3)
	assert.Equal(t, models.RoleCount{Role: models.RoleAdmin, Count: 1}, overview.UserRoles[0])
	assert.Equal(t, models.RoleCount{Role: models.RoleUser, Count: 1}, overview.UserRoles[1])
	assert.Equal(t, models.RoleCount{Role: models.RoleReadOnly, Count: 0}, overview.UserRoles[2])

	assert.True(t, overview.TotalIncome.Equal(decimal.NewFromInt(150)))
	assert.True(t, overview.TotalExpenses.Equal(decimal.NewFromInt(30)))
	assert.True(t, overview.NetAmount.Equal(decimal.NewFromInt(120)))
}

func TestTopActiveUsers(t *testing.T) {
	now := mustDate(t, "2024-06-30")
	recent := now.AddDate(0, 0, -5).Format("2006-01-02")
	old := now.AddDate(0, 0, -60).Format("2006-01-02")

	txns := []models.Transaction{
		txn(t, "u1", "food", models.TypeExpense, "10.00", recent),
		txn(t, "u2", "food", models.TypeExpense, "10.00", recent),
		txn(t, "u2", "food", models.TypeExpense, "10.00", recent),
		txn(t, "u3", "food", models.TypeExpense, "10.00", recent),
		// Outside the 30 day window.
		txn(t, "u1", "food", models.TypeExpense, "10.00", old),
		txn(t, "u1", "food", models.TypeExpense, "10.00", old),
	}

	ranked := TopActiveUsers(txns, 30, 10, now)

	require.Len(t, ranked, 3)
	assert.Equal(t, "u2", ranked[0].UserID)
	assert.Equal(t, 2, ranked[0].TransactionCount)

	// u1 and u3 tie at one transaction each; first-seen order wins.
	assert.Equal(t, "u1", ranked[1].UserID)
	assert.Equal(t, "u3", ranked[2].UserID)
}

func TestTopActiveUsersLimit(t *testing.T) {
	now := mustDate(t, "2024-06-30")
	day := now.AddDate(0, 0, -1).Format("2006-01-02")

	var txns []models.Transaction
	for _, id := range []string{"a", "b", "c", "d"} {
		txns = append(txns, txn(t, id, "food", models.TypeExpense, "1.00", day))
	}

	ranked := TopActiveUsers(txns, 30, 2, now)
	assert.Len(t, ranked, 2)
}

func TestDailyTransactionTrends(t *testing.T) {
	now := mustDate(t, "2024-06-30")
	d1 := now.AddDate(0, 0, -2).Format("2006-01-02")
	d2 := now.AddDate(0, 0, -1).Format("2006-01-02")

	txns := []models.Transaction{
		txn(t, "u1", "salary", models.TypeIncome, "100.00", d2),
		txn(t, "u1", "food", models.TypeExpense, "25.00", d1),
		txn(t, "u1", "food", models.TypeExpense, "25.00", d1),
	}

	trends := DailyTransactionTrends(txns, 30, now)

	require.Len(t, trends, 2)
	// Sorted ascending by day.
	assert.Equal(t, d1, trends[0].Date)
	assert.Equal(t, 2, trends[0].Count)
	assert.True(t, trends[0].Expenses.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, d2, trends[1].Date)
	assert.True(t, trends[1].Income.Equal(decimal.NewFromInt(100)))
}

func TestCategoryUsageStats(t *testing.T) {
	now := mustDate(t, "2024-06-30")
	day := now.AddDate(0, 0, -1).Format("2006-01-02")

	txns := []models.Transaction{
		txn(t, "u1", "food", models.TypeExpense, "10.00", day),
		txn(t, "u1", "food", models.TypeExpense, "10.00", day),
		txn(t, "u1", "bills", models.TypeExpense, "99.00", day),
	}

	usage := CategoryUsageStats(txns, 30, now)

	require.Len(t, usage, 2)
	assert.Equal(t, "food", usage[0].Category)
	assert.Equal(t, 2, usage[0].Count)
	assert.True(t, usage[0].Total.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, "bills", usage[1].Category)
}
