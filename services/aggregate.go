package services

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/imudaynigam/finance-tracker-techbridge/models"
)

// Aggregation engine. Each function is pure given a transaction set and its
// parameters, and uses decimal accumulation so sums never lose precision
// beyond two fractional digits. An empty input yields all-zero aggregates.

// uncategorizedLabel is used when a transaction's category cannot be
// resolved.
const uncategorizedLabel = "Uncategorized"

// TotalsByType sums income and expenses over the whole set.
func TotalsByType(txns []models.Transaction) models.Totals {
	income := decimal.Zero
	expenses := decimal.Zero

	for _, t := range txns {
		switch t.Type {
		case models.TypeIncome:
			income = income.Add(t.Amount)
		case models.TypeExpense:
			expenses = expenses.Add(t.Amount)
		}
	}

	return models.Totals{
		Income:   income,
		Expenses: expenses,
		Net:      income.Sub(expenses),
		Count:    len(txns),
	}
}

// MonthlyTrend buckets one year of transactions into 12 calendar months,
// keyed by the transaction's date, not its creation timestamp.
func MonthlyTrend(txns []models.Transaction, year int) []models.MonthBucket {
	buckets := make([]models.MonthBucket, 12)
	for m := 0; m < 12; m++ {
		buckets[m] = models.MonthBucket{
			Month:    time.Month(m + 1).String()[:3],
			Income:   decimal.Zero,
			Expenses: decimal.Zero,
			Net:      decimal.Zero,
		}
	}

	for _, t := range txns {
		if t.Date.Year() != year {
			continue
		}
		m := int(t.Date.Month()) - 1
		switch t.Type {
		case models.TypeIncome:
			buckets[m].Income = buckets[m].Income.Add(t.Amount)
		case models.TypeExpense:
			buckets[m].Expenses = buckets[m].Expenses.Add(t.Amount)
		}
	}

	for m := range buckets {
		buckets[m].Net = buckets[m].Income.Sub(buckets[m].Expenses)
	}

	return buckets
}

// YearlyOverview totals transactions dated within [Jan 1, Dec 31] of year,
// inclusive.
func YearlyOverview(txns []models.Transaction, year int) models.YearlyOverview {
	var inYear []models.Transaction
	for _, t := range txns {
		if t.Date.Year() == year {
			inYear = append(inYear, t)
		}
	}

	totals := TotalsByType(inYear)

	return models.YearlyOverview{
		Year:             year,
		TotalIncome:      totals.Income,
		TotalExpenses:    totals.Expenses,
		NetAmount:        totals.Net,
		SavingsRate:      SavingsRate(totals.Income, totals.Expenses),
		TransactionCount: totals.Count,
	}
}

// SavingsRate returns (income - expenses) / income as a percentage rounded to
// two places, or zero when income is zero.
func SavingsRate(income, expenses decimal.Decimal) decimal.Decimal {
	if income.IsZero() {
		return decimal.Zero
	}
	return income.Sub(expenses).Div(income).Mul(decimal.NewFromInt(100)).Round(2)
}

// CategoryBreakdown sums amounts per category name for one calendar month,
// restricted to the given transaction type. Transactions without a resolvable
// category land under "Uncategorized".
func CategoryBreakdown(txns []models.Transaction, year, month int, txType string) models.CategoryBreakdown {
	breakdown := make(map[string]decimal.Decimal)
	total := decimal.Zero

	for _, t := range txns {
		if t.Type != txType {
			continue
		}
		if t.Date.Year() != year || int(t.Date.Month()) != month {
			continue
		}
		name := t.CategoryName
		if name == "" {
			name = uncategorizedLabel
		}
		breakdown[name] = breakdown[name].Add(t.Amount)
		total = total.Add(t.Amount)
	}

	return models.CategoryBreakdown{
		Year:          year,
		Month:         month,
		Type:          txType,
		Breakdown:     breakdown,
		TotalExpenses: total,
	}
}

// SystemOverview computes the admin dashboard counters: entity counts, a role
// histogram and system-wide income/expense/net.
func SystemOverview(users []models.User, txns []models.Transaction, categoryCount int) models.SystemOverview {
	roleCounts := map[string]int{}
	for _, u := range users {
		roleCounts[u.Role]++
	}

	roles := []models.RoleCount{
		{Role: models.RoleAdmin, Count: roleCounts[models.RoleAdmin]},
		{Role: models.RoleUser, Count: roleCounts[models.RoleUser]},
		{Role: models.RoleReadOnly, Count: roleCounts[models.RoleReadOnly]},
	}

	totals := TotalsByType(txns)

	return models.SystemOverview{
		TotalUsers:        len(users),
		TotalTransactions: len(txns),
		TotalCategories:   categoryCount,
		UserRoles:         roles,
		TotalIncome:       totals.Income,
		TotalExpenses:     totals.Expenses,
		NetAmount:         totals.Net,
	}
}

// TopActiveUsers ranks users by transaction count within the trailing window,
// descending. The window is over creation time, so it measures recent
// activity rather than backdated entries. Ties keep first-seen order (stable
// sort).
func TopActiveUsers(txns []models.Transaction, windowDays, limit int, now time.Time) []models.ActiveUser {
	if limit <= 0 {
		limit = 10
	}
	cutoff := now.AddDate(0, 0, -windowDays)

	byUser := map[string]*models.ActiveUser{}
	var order []string

	for _, t := range txns {
		if t.CreatedAt.Before(cutoff) {
			continue
		}
		entry, ok := byUser[t.UserID]
		if !ok {
			entry = &models.ActiveUser{UserID: t.UserID, TotalAmount: decimal.Zero}
			byUser[t.UserID] = entry
			order = append(order, t.UserID)
		}
		entry.TransactionCount++
		entry.TotalAmount = entry.TotalAmount.Add(t.Amount)
	}

	ranked := make([]models.ActiveUser, 0, len(order))
	for _, id := range order {
		ranked = append(ranked, *byUser[id])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TransactionCount > ranked[j].TransactionCount
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// DailyTransactionTrends buckets recent transactions per creation day.
func DailyTransactionTrends(txns []models.Transaction, windowDays int, now time.Time) []models.DailyTrend {
	cutoff := now.AddDate(0, 0, -windowDays)

	byDay := map[string]*models.DailyTrend{}
	var days []string

	for _, t := range txns {
		if t.CreatedAt.Before(cutoff) {
			continue
		}
		day := t.CreatedAt.Format("2006-01-02")
		entry, ok := byDay[day]
		if !ok {
			entry = &models.DailyTrend{Date: day, Income: decimal.Zero, Expenses: decimal.Zero}
			byDay[day] = entry
			days = append(days, day)
		}
		entry.Count++
		switch t.Type {
		case models.TypeIncome:
			entry.Income = entry.Income.Add(t.Amount)
		case models.TypeExpense:
			entry.Expenses = entry.Expenses.Add(t.Amount)
		}
	}

	sort.Strings(days)
	trends := make([]models.DailyTrend, 0, len(days))
	for _, day := range days {
		trends = append(trends, *byDay[day])
	}
	return trends
}

// RegistrationTrends buckets recent user signups per day.
func RegistrationTrends(users []models.User, windowDays int, now time.Time) []models.RegistrationTrend {
	cutoff := now.AddDate(0, 0, -windowDays)

	byDay := map[string]int{}
	var days []string

	for _, u := range users {
		if u.CreatedAt.Before(cutoff) {
			continue
		}
		day := u.CreatedAt.Format("2006-01-02")
		if _, ok := byDay[day]; !ok {
			days = append(days, day)
		}
		byDay[day]++
	}

	sort.Strings(days)
	trends := make([]models.RegistrationTrend, 0, len(days))
	for _, day := range days {
		trends = append(trends, models.RegistrationTrend{Date: day, Count: byDay[day]})
	}
	return trends
}

// CategoryUsageStats counts and sums recent transactions per category,
// most used first.
func CategoryUsageStats(txns []models.Transaction, windowDays int, now time.Time) []models.CategoryUsage {
	cutoff := now.AddDate(0, 0, -windowDays)

	byName := map[string]*models.CategoryUsage{}
	var order []string

	for _, t := range txns {
		if t.CreatedAt.Before(cutoff) {
			continue
		}
		name := t.CategoryName
		if name == "" {
			name = uncategorizedLabel
		}
		entry, ok := byName[name]
		if !ok {
			entry = &models.CategoryUsage{Category: name, Total: decimal.Zero}
			byName[name] = entry
			order = append(order, name)
		}
		entry.Count++
		entry.Total = entry.Total.Add(t.Amount)
	}

	usage := make([]models.CategoryUsage, 0, len(order))
	for _, name := range order {
		usage = append(usage, *byName[name])
	}
	sort.SliceStable(usage, func(i, j int) bool {
		return usage[i].Count > usage[j].Count
	})
	return usage
}
