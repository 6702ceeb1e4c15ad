package services

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/imudaynigam/finance-tracker-techbridge/cache"
	"github.com/imudaynigam/finance-tracker-techbridge/models"
)

type CategoryService struct {
	db    *sql.DB
	cache cache.Store
}

func NewCategoryService(db *sql.DB, store cache.Store) *CategoryService {
	return &CategoryService{db: db, cache: store}
}

// List returns the active categories, cached under the shared key for an
// hour. The list is shared across all users so the key carries no identity.
func (s *CategoryService) List(ctx context.Context) (models.CategoryList, error) {
	return cache.GetOrCompute(ctx, s.cache, cache.CategoriesKey, cache.CategoriesTTL(), func() (models.CategoryList, error) {
		rows, err := s.db.QueryContext(ctx, `
			SELECT id, name, COALESCE(description, ''), COALESCE(color, ''), is_active, created_at, updated_at
			FROM categories
			WHERE is_active = TRUE
			ORDER BY name ASC
		`)
		if err != nil {
			return models.CategoryList{}, fmt.Errorf("failed to list categories: %w", err)
		}
		defer rows.Close()

		categories := []models.Category{}
		for rows.Next() {
			var c models.Category
			if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Color, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
				return models.CategoryList{}, fmt.Errorf("failed to scan category: %w", err)
			}
			categories = append(categories, c)
		}
		if err := rows.Err(); err != nil {
			return models.CategoryList{}, err
		}

		return models.CategoryList{Categories: categories, Count: len(categories)}, nil
	})
}

// Create adds a category. Names are lowercased; uniqueness is
// case-insensitive.
func (s *CategoryService) Create(ctx context.Context, req models.CreateCategoryRequest) (*models.Category, error) {
	name := strings.ToLower(strings.TrimSpace(req.Name))
	if name == "" {
		return nil, validationf("name is required")
	}

	var exists bool
	if err := s.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM categories WHERE name = $1)", name).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	if exists {
		return nil, conflictf("category %q", name)
	}

	var c models.Category
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO categories (name, description, color, is_active)
		VALUES ($1, $2, $3, TRUE)
		RETURNING id, name, description, color, is_active, created_at, updated_at
	`, name, req.Description, req.Color).Scan(
		&c.ID, &c.Name, &c.Description, &c.Color, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.invalidate(ctx)
	return &c, nil
}

// Update modifies category fields. A renamed category keeps its transactions.
func (s *CategoryService) Update(ctx context.Context, id string, req models.UpdateCategoryRequest) (*models.Category, error) {
	c, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.ToLower(strings.TrimSpace(*req.Name))
		if name == "" {
			return nil, validationf("name cannot be empty")
		}
		if name != c.Name {
			var exists bool
			if err := s.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM categories WHERE name = $1 AND id <> $2)", name, id).Scan(&exists); err != nil {
				return nil, fmt.Errorf("failed to check category name: %w", err)
			}
			if exists {
				return nil, conflictf("category %q", name)
			}
		}
		c.Name = name
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.Color != nil {
		c.Color = *req.Color
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}

	err = s.db.QueryRowContext(ctx, `
		UPDATE categories
		SET name = $1, description = $2, color = $3, is_active = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`, c.Name, c.Description, c.Color, c.IsActive, id).Scan(&c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	s.invalidate(ctx)
	return c, nil
}

// Delete soft-deletes a category. Historical transactions keep referencing
// it; it just disappears from the picker list.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, "UPDATE categories SET is_active = FALSE, updated_at = NOW() WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.invalidate(ctx)
	return nil
}

// Count returns the number of categories, active or not.
func (s *CategoryService) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return count, nil
}

func (s *CategoryService) get(ctx context.Context, id string) (*models.Category, error) {
	var c models.Category
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(description, ''), COALESCE(color, ''), is_active, created_at, updated_at
		FROM categories
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Description, &c.Color, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, notFoundf("category %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &c, nil
}

func (s *CategoryService) invalidate(ctx context.Context) {
	cache.InvalidateCategories(ctx, s.cache)
	log.Println("🧹 Invalidated category list cache")
}
