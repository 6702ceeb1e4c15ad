package config

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/imudaynigam/finance-tracker-techbridge/models"
	"github.com/imudaynigam/finance-tracker-techbridge/utils"
)

var defaultCategories = []struct {
	Name        string
	Description string
	Color       string
}{
	{"salary", "Income from salary", "#22c55e"},
	{"freelance", "Freelance income", "#3b82f6"},
	{"investment", "Investment returns", "#8b5cf6"},
	{"food", "Food and dining expenses", "#ef4444"},
	{"transport", "Transportation costs", "#f97316"},
	{"shopping", "Shopping expenses", "#ec4899"},
	{"bills", "Utility bills and subscriptions", "#6b7280"},
	{"entertainment", "Entertainment and leisure", "#06b6d4"},
	{"healthcare", "Medical and healthcare expenses", "#84cc16"},
	{"education", "Education and training costs", "#f59e0b"},
}

var demoUsers = []struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
}{
	{"admin@demo.com", "admin123", "Admin", "User", models.RoleAdmin},
	{"user@demo.com", "user123", "Regular", "User", models.RoleUser},
	{"view@demo.com", "view123", "Read", "Only", models.RoleReadOnly},
}

// SeedData inserts the default categories and demo users. It is idempotent:
// existing rows are left untouched.
func SeedData(db *sql.DB) error {
	var userCount, categoryCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&userCount); err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&categoryCount); err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}

	if userCount > 0 && categoryCount > 0 {
		log.Println("Data already seeded, skipping")
		return nil
	}

	for _, cat := range defaultCategories {
		_, err := db.Exec(`
			INSERT INTO categories (name, description, color, is_active)
			VALUES ($1, $2, $3, TRUE)
			ON CONFLICT (name) DO NOTHING
		`, strings.ToLower(cat.Name), cat.Description, cat.Color)
		if err != nil {
			return fmt.Errorf("failed to seed category %s: %w", cat.Name, err)
		}
	}

	for _, u := range demoUsers {
		hash, err := utils.HashPassword(u.Password)
		if err != nil {
			return fmt.Errorf("failed to hash seed password: %w", err)
		}
		_, err = db.Exec(`
			INSERT INTO users (email, password_hash, role, first_name, last_name)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (email) DO NOTHING
		`, u.Email, hash, u.Role, u.FirstName, u.LastName)
		if err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.Email, err)
		}
	}

	log.Println("✅ Seeded default categories and demo users")
	return nil
}
