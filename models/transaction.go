package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types. The amount is always non-negative; the type decides
// the sign in aggregates.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// ValidTransactionType reports whether t is income or expense.
func ValidTransactionType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}

type Transaction struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id"`
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name,omitempty"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	Date         time.Time       `json:"date"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type CreateTransactionRequest struct {
	Type        string          `json:"type" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	CategoryID  string          `json:"category_id" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Date        string          `json:"date" binding:"required"` // YYYY-MM-DD
}

type UpdateTransactionRequest struct {
	Type        string          `json:"type" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	CategoryID  string          `json:"category_id" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Date        string          `json:"date" binding:"required"`
}

// TransactionFilter narrows list queries. Zero values mean "no filter".
type TransactionFilter struct {
	Type       string
	CategoryID string
	StartDate  *time.Time
	EndDate    *time.Time
	Page       int
	Limit      int
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

type TransactionList struct {
	Transactions []Transaction `json:"transactions"`
	Pagination   Pagination    `json:"pagination"`
}
