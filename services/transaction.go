package services

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/imudaynigam/finance-tracker-techbridge/cache"
	"github.com/imudaynigam/finance-tracker-techbridge/models"
	"github.com/imudaynigam/finance-tracker-techbridge/scope"
	"github.com/imudaynigam/finance-tracker-techbridge/utils"
)

const txnColumns = `t.id, t.user_id, t.category_id, COALESCE(c.name, ''), t.type, t.amount, t.description, t.date, t.created_at, t.updated_at`

type TransactionService struct {
	db    *sql.DB
	cache cache.Store
}

func NewTransactionService(db *sql.DB, store cache.Store) *TransactionService {
	return &TransactionService{db: db, cache: store}
}

// List returns the caller-visible transactions, newest first, with optional
// filters and pagination. Read-only callers see every user's transactions.
func (s *TransactionService) List(ctx context.Context, sc scope.Scope, filter models.TransactionFilter) (models.TransactionList, error) {
	var (
		where []string
		args  []interface{}
	)

	if pred, predArgs := sc.Predicate(len(args) + 1); pred != "" {
		where = append(where, pred)
		args = append(args, predArgs...)
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		where = append(where, fmt.Sprintf("t.type = $%d", len(args)))
	}
	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		where = append(where, fmt.Sprintf("t.category_id = $%d", len(args)))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		where = append(where, fmt.Sprintf("t.date >= $%d", len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		where = append(where, fmt.Sprintf("t.date <= $%d", len(args)))
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM transactions t" + whereClause
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return models.TransactionList{}, fmt.Errorf("failed to count transactions: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	args = append(args, limit, (page-1)*limit)
	query := fmt.Sprintf(`
		SELECT %s
		FROM transactions t
		LEFT JOIN categories c ON t.category_id = c.id
		%s
		ORDER BY t.date DESC, t.created_at DESC
		LIMIT $%d OFFSET $%d
	`, txnColumns, whereClause, len(args)-1, len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return models.TransactionList{}, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	txns, err := scanTransactions(rows)
	if err != nil {
		return models.TransactionList{}, err
	}

	pages := (total + limit - 1) / limit

	return models.TransactionList{
		Transactions: txns,
		Pagination: models.Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
	}, nil
}

// Get returns one transaction if it is visible to the caller's scope.
func (s *TransactionService) Get(ctx context.Context, sc scope.Scope, id string) (*models.Transaction, error) {
	args := []interface{}{id}
	query := fmt.Sprintf(`
		SELECT %s
		FROM transactions t
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE t.id = $1
	`, txnColumns)

	if pred, predArgs := sc.Predicate(2); pred != "" {
		query += " AND " + pred
		args = append(args, predArgs...)
	}

	var t models.Transaction
	err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&t.ID, &t.UserID, &t.CategoryID, &t.CategoryName,
		&t.Type, &t.Amount, &t.Description, &t.Date, &t.CreatedAt, &t.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, notFoundf("transaction %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return &t, nil
}

// Create validates and persists a new transaction owned by ownerID, then
// invalidates the owner's cached analytics. An invalidation failure is logged
// only; the persisted write is the source of truth.
func (s *TransactionService) Create(ctx context.Context, ownerID string, req models.CreateTransactionRequest) (*models.Transaction, error) {
	date, err := s.validateWrite(ctx, req.Type, req.Amount, req.CategoryID, req.Date)
	if err != nil {
		return nil, err
	}

	var t models.Transaction
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO transactions (user_id, category_id, type, amount, description, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, category_id, type, amount, description, date, created_at, updated_at
	`, ownerID, req.CategoryID, req.Type, req.Amount, req.Description, date).Scan(
		&t.ID, &t.UserID, &t.CategoryID, &t.Type, &t.Amount, &t.Description, &t.Date, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	s.invalidateOwner(ctx, t.UserID)
	return &t, nil
}

// Update rewrites a transaction. No optimistic version check: concurrent
// edits are last-write-wins, serialized by the row update.
func (s *TransactionService) Update(ctx context.Context, sc scope.Scope, id string, req models.UpdateTransactionRequest) (*models.Transaction, error) {
	date, err := s.validateWrite(ctx, req.Type, req.Amount, req.CategoryID, req.Date)
	if err != nil {
		return nil, err
	}

	existing, err := s.Get(ctx, sc, id)
	if err != nil {
		return nil, err
	}

	var t models.Transaction
	err = s.db.QueryRowContext(ctx, `
		UPDATE transactions
		SET category_id = $1, type = $2, amount = $3, description = $4, date = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING id, user_id, category_id, type, amount, description, date, created_at, updated_at
	`, req.CategoryID, req.Type, req.Amount, req.Description, date, id).Scan(
		&t.ID, &t.UserID, &t.CategoryID, &t.Type, &t.Amount, &t.Description, &t.Date, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	s.invalidateOwner(ctx, existing.UserID)
	return &t, nil
}

// Delete removes a transaction visible to the caller's scope.
func (s *TransactionService) Delete(ctx context.Context, sc scope.Scope, id string) error {
	existing, err := s.Get(ctx, sc, id)
	if err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = $1", id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	s.invalidateOwner(ctx, existing.UserID)
	return nil
}

// FetchScoped loads the caller-visible transaction set for aggregation, with
// the category name resolved.
func (s *TransactionService) FetchScoped(ctx context.Context, sc scope.Scope) ([]models.Transaction, error) {
	args := []interface{}{}
	query := fmt.Sprintf(`
		SELECT %s
		FROM transactions t
		LEFT JOIN categories c ON t.category_id = c.id
	`, txnColumns)

	if pred, predArgs := sc.Predicate(1); pred != "" {
		query += " WHERE " + pred
		args = append(args, predArgs...)
	}
	query += " ORDER BY t.date DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func (s *TransactionService) validateWrite(ctx context.Context, txType string, amount decimal.Decimal, categoryID, rawDate string) (time.Time, error) {
	if !models.ValidTransactionType(txType) {
		return time.Time{}, validationf("type must be income or expense")
	}
	if amount.IsNegative() {
		return time.Time{}, validationf("amount must be non-negative")
	}

	date, err := time.Parse("2006-01-02", rawDate)
	if err != nil {
		return time.Time{}, validationf("date must be YYYY-MM-DD")
	}

	var active bool
	err = s.db.QueryRowContext(ctx, "SELECT is_active FROM categories WHERE id = $1", categoryID).Scan(&active)
	if err == sql.ErrNoRows {
		return time.Time{}, validationf("category %s does not exist", categoryID)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to check category: %w", err)
	}
	if !active {
		return time.Time{}, validationf("category %s is inactive", categoryID)
	}

	return date, nil
}

func (s *TransactionService) invalidateOwner(ctx context.Context, ownerID string) {
	cache.InvalidateUserAnalytics(ctx, s.cache, ownerID)
	log.Printf("🧹 Invalidated analytics cache for user %s", utils.MaskID(ownerID))
}

func scanTransactions(rows *sql.Rows) ([]models.Transaction, error) {
	var txns []models.Transaction
	for rows.Next() {
		var t models.Transaction
		err := rows.Scan(
			&t.ID, &t.UserID, &t.CategoryID, &t.CategoryName,
			&t.Type, &t.Amount, &t.Description, &t.Date, &t.CreatedAt, &t.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}
