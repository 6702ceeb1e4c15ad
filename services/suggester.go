package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/imudaynigam/finance-tracker-techbridge/models"
	"github.com/imudaynigam/finance-tracker-techbridge/scope"
)

// SuggesterService proposes a category for a transaction description.
// Matching is two-tier: a static keyword dictionary first, then the caller's
// own history (most frequent category among similar past descriptions).
type SuggesterService struct {
	db *sql.DB
}

func NewSuggesterService(db *sql.DB) *SuggesterService {
	return &SuggesterService{db: db}
}

// Keyword rules keyed on lowercase fragments of merchant names and common
// description words. Values are seeded category names.
var keywordRules = map[string]string{
	// food
	"restaurant": "food", "grocery": "food", "groceries": "food", "lunch": "food",
	"dinner": "food", "coffee": "food", "cafe": "food", "uber eats": "food",
	"doordash": "food", "takeout": "food",

	// transport
	"uber": "transport", "lyft": "transport", "taxi": "transport", "fuel": "transport",
	"gas station": "transport", "parking": "transport", "metro": "transport",
	"bus": "transport", "train": "transport",

	// bills
	"electricity": "bills", "water bill": "bills", "internet": "bills",
	"phone bill": "bills", "rent": "bills", "netflix": "bills", "spotify": "bills",
	"subscription": "bills", "insurance": "bills",

	// shopping
	"amazon": "shopping", "clothes": "shopping", "clothing": "shopping",
	"electronics": "shopping", "furniture": "shopping",

	// entertainment
	"movie": "entertainment", "cinema": "entertainment", "concert": "entertainment",
	"game": "entertainment", "gym": "entertainment",

	// healthcare
	"pharmacy": "healthcare", "doctor": "healthcare", "dentist": "healthcare",
	"hospital": "healthcare", "medicine": "healthcare",

	// education
	"course": "education", "tuition": "education", "books": "education",
	"udemy": "education", "coursera": "education",

	// income
	"salary": "salary", "payroll": "salary", "paycheck": "salary",
	"invoice": "freelance", "client payment": "freelance",
	"dividend": "investment", "interest": "investment",
}

// Suggest returns the active category best matching the description, or
// ErrNotFound when nothing matches.
func (s *SuggesterService) Suggest(ctx context.Context, sc scope.Scope, description string) (*models.Category, error) {
	normalized := strings.ToLower(strings.TrimSpace(description))
	if normalized == "" {
		return nil, validationf("description is required")
	}

	if name, ok := matchKeyword(normalized); ok {
		if cat, err := s.activeByName(ctx, name); err == nil {
			return cat, nil
		}
	}

	// Fall back to the caller's history: the most frequent category among
	// past transactions with a similar description.
	if cat, err := s.fromHistory(ctx, sc, normalized); err == nil {
		return cat, nil
	}

	return nil, notFoundf("no category suggestion for %q", description)
}

func matchKeyword(normalized string) (string, bool) {
	if name, ok := keywordRules[normalized]; ok {
		return name, true
	}
	for keyword, name := range keywordRules {
		if strings.Contains(normalized, keyword) {
			return name, true
		}
	}
	return "", false
}

func (s *SuggesterService) activeByName(ctx context.Context, name string) (*models.Category, error) {
	var cat models.Category
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(description, ''), COALESCE(color, ''), is_active, created_at, updated_at
		FROM categories
		WHERE name = $1 AND is_active = TRUE
	`, name).Scan(&cat.ID, &cat.Name, &cat.Description, &cat.Color, &cat.IsActive, &cat.CreatedAt, &cat.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (s *SuggesterService) fromHistory(ctx context.Context, sc scope.Scope, normalized string) (*models.Category, error) {
	query := `
		SELECT c.id, c.name, COALESCE(c.description, ''), COALESCE(c.color, ''), c.is_active, c.created_at, c.updated_at
		FROM transactions t
		JOIN categories c ON c.id = t.category_id AND c.is_active = TRUE
		WHERE LOWER(t.description) LIKE $1`
	args := []interface{}{"%" + normalized + "%"}

	if clause, scopeArgs := sc.Predicate(2); clause != "" {
		query += " AND " + clause
		args = append(args, scopeArgs...)
	}
	query += `
		GROUP BY c.id, c.name, c.description, c.color, c.is_active, c.created_at, c.updated_at
		ORDER BY COUNT(*) DESC
		LIMIT 1`

	var cat models.Category
	err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&cat.ID, &cat.Name, &cat.Description, &cat.Color, &cat.IsActive, &cat.CreatedAt, &cat.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &cat, nil
}
