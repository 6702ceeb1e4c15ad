package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/imudaynigam/finance-tracker-techbridge/cache"
	"github.com/imudaynigam/finance-tracker-techbridge/models"
	"github.com/imudaynigam/finance-tracker-techbridge/utils"
)

const userColumns = `id, email, password_hash, role, COALESCE(first_name, ''), COALESCE(last_name, ''), COALESCE(totp_secret, ''), totp_enabled, created_at, updated_at`

type UserService struct {
	db    *sql.DB
	cache cache.Store
}

func NewUserService(db *sql.DB, store cache.Store) *UserService {
	return &UserService{db: db, cache: store}
}

// Register creates a user with the default user role.
func (s *UserService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	return s.create(ctx, req.Email, req.Password, req.FirstName, req.LastName, models.RoleUser)
}

// CreateWithRole creates a user with an explicit role (admin user
// management).
func (s *UserService) CreateWithRole(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if !models.ValidRole(role) {
		return nil, validationf("role must be admin, user or read-only")
	}
	return s.create(ctx, req.Email, req.Password, req.FirstName, req.LastName, role)
}

func (s *UserService) create(ctx context.Context, email, password, firstName, lastName, role string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var exists bool
	if err := s.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)", email).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, conflictf("user with email %s", utils.MaskEmail(email))
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var u models.User
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO users (email, password_hash, role, first_name, last_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns+`
	`, email, hash, role, firstName, lastName).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.FirstName, &u.LastName,
		&u.TOTPSecret, &u.TOTPEnabled, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &u, nil
}

// GetByEmail returns a user by email, for credential checks.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getWhere(ctx, "email = $1", strings.ToLower(strings.TrimSpace(email)))
}

// GetByID returns a user by ID.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.getWhere(ctx, "id = $1", id)
}

func (s *UserService) getWhere(ctx context.Context, clause string, arg interface{}) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE "+clause, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.FirstName, &u.LastName,
		&u.TOTPSecret, &u.TOTPEnabled, &u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, notFoundf("user")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// ListWithStats returns every user with lifetime transaction statistics,
// newest first.
func (s *UserService) ListWithStats(ctx context.Context) ([]models.UserWithStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT u.id, u.email, u.role, COALESCE(u.first_name, ''), COALESCE(u.last_name, ''),
		       u.totp_enabled, u.created_at, u.updated_at,
		       COUNT(t.id),
		       COALESCE(SUM(CASE WHEN t.type = 'income' THEN t.amount ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN t.type = 'expense' THEN t.amount ELSE 0 END), 0)
		FROM users u
		LEFT JOIN transactions t ON t.user_id = u.id
		GROUP BY u.id
		ORDER BY u.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []models.UserWithStats{}
	for rows.Next() {
		var (
			u                models.User
			income, expenses decimal.Decimal
			count            int
		)
		err := rows.Scan(
			&u.ID, &u.Email, &u.Role, &u.FirstName, &u.LastName,
			&u.TOTPEnabled, &u.CreatedAt, &u.UpdatedAt,
			&count, &income, &expenses,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, models.UserWithStats{
			User: u,
			Stats: models.UserStats{
				TotalTransactions: count,
				TotalIncome:       income.StringFixed(2),
				TotalExpenses:     expenses.StringFixed(2),
				NetAmount:         income.Sub(expenses).StringFixed(2),
			},
		})
	}
	return users, rows.Err()
}

// Update modifies user fields (admin user management).
func (s *UserService) Update(ctx context.Context, id string, req models.UpdateUserRequest) (*models.User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != u.Email {
			var exists bool
			if err := s.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND id <> $2)", email, id).Scan(&exists); err != nil {
				return nil, fmt.Errorf("failed to check email: %w", err)
			}
			if exists {
				return nil, conflictf("user with email %s", utils.MaskEmail(email))
			}
		}
		u.Email = email
	}
	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Role != nil {
		if !models.ValidRole(*req.Role) {
			return nil, validationf("role must be admin, user or read-only")
		}
		u.Role = *req.Role
	}
	if req.Password != nil {
		if len(*req.Password) < 6 {
			return nil, validationf("password must be at least 6 characters")
		}
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		u.PasswordHash = hash
	}

	err = s.db.QueryRowContext(ctx, `
		UPDATE users
		SET email = $1, password_hash = $2, role = $3, first_name = $4, last_name = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at
	`, u.Email, u.PasswordHash, u.Role, u.FirstName, u.LastName, id).Scan(&u.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return u, nil
}

// Delete removes a user. The transactions foreign key cascades, so the user's
// transactions go with them; their cached analytics are dropped too. Admins
// cannot delete themselves.
func (s *UserService) Delete(ctx context.Context, id, callerID string) error {
	if id == callerID {
		return validationf("cannot delete your own account")
	}

	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	cache.InvalidateUserAnalytics(ctx, s.cache, id)
	return nil
}

// SetTOTP stores a TOTP secret and its enabled flag.
func (s *UserService) SetTOTP(ctx context.Context, id, secret string, enabled bool) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE users SET totp_secret = $1, totp_enabled = $2, updated_at = NOW() WHERE id = $3
	`, secret, enabled, id)
	if err != nil {
		return fmt.Errorf("failed to update 2FA settings: %w", err)
	}
	return nil
}

// ListAll returns every user (admin aggregation input).
func (s *UserService) ListAll(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY created_at ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		err := rows.Scan(
			&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.FirstName, &u.LastName,
			&u.TOTPSecret, &u.TOTPEnabled, &u.CreatedAt, &u.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
