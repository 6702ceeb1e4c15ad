package models

import "time"

// Category is shared across all users. Names are stored lowercased and are
// unique case-insensitively. Categories are never hard-deleted: IsActive is
// the soft-delete marker so historical transactions keep their reference.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Color       string `json:"color" binding:"required"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// CategoryList is the cached shape served by GET /api/categories.
type CategoryList struct {
	Categories []Category `json:"categories"`
	Count      int        `json:"count"`
}
