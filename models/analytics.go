package models

import "github.com/shopspring/decimal"

// ============================================================================
// ANALYTICS RESPONSE SHAPES
// ============================================================================

// Totals is the per-caller analytics summary.
type Totals struct {
	Income   decimal.Decimal `json:"total_income"`
	Expenses decimal.Decimal `json:"total_expenses"`
	Net      decimal.Decimal `json:"net_amount"`
	Count    int             `json:"total_transactions"`
}

// MonthBucket is one calendar month of a yearly trend.
type MonthBucket struct {
	Month    string          `json:"month"` // Jan..Dec
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

type MonthlyTrends struct {
	Year        int           `json:"year"`
	MonthlyData []MonthBucket `json:"monthly_data"`
}

type YearlyOverview struct {
	Year             int             `json:"year"`
	TotalIncome      decimal.Decimal `json:"total_income"`
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
	NetAmount        decimal.Decimal `json:"net_amount"`
	SavingsRate      decimal.Decimal `json:"savings_rate"`
	TransactionCount int             `json:"transaction_count"`
}

type CategoryBreakdown struct {
	Year          int                        `json:"year"`
	Month         int                        `json:"month"`
	Type          string                     `json:"type"`
	Breakdown     map[string]decimal.Decimal `json:"category_breakdown"`
	TotalExpenses decimal.Decimal            `json:"total_expenses"`
}

// ============================================================================
// ADMIN ANALYTICS
// ============================================================================

type RoleCount struct {
	Role  string `json:"role"`
	Count int    `json:"count"`
}

type SystemOverview struct {
	TotalUsers        int             `json:"total_users"`
	TotalTransactions int             `json:"total_transactions"`
	TotalCategories   int             `json:"total_categories"`
	UserRoles         []RoleCount     `json:"user_roles"`
	TotalIncome       decimal.Decimal `json:"total_income"`
	TotalExpenses     decimal.Decimal `json:"total_expenses"`
	NetAmount         decimal.Decimal `json:"net_amount"`
}

type ActiveUser struct {
	UserID           string          `json:"user_id"`
	TransactionCount int             `json:"transaction_count"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
}

type DailyTrend struct {
	Date     string          `json:"date"` // YYYY-MM-DD
	Count    int             `json:"count"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

type RegistrationTrend struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type CategoryUsage struct {
	Category string          `json:"category"`
	Count    int             `json:"count"`
	Total    decimal.Decimal `json:"total"`
}

type SystemAnalytics struct {
	PeriodDays        int                 `json:"period_days"`
	TransactionTrends []DailyTrend        `json:"transaction_trends"`
	UserTrends        []RegistrationTrend `json:"user_trends"`
	CategoryUsage     []CategoryUsage     `json:"category_usage"`
	TopUsers          []ActiveUser        `json:"top_users"`
}
