package model

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products in the storefront catalog.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateCategoryRequest is the DTO for creating a category.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,notblank,max=255"`
	Slug        string `json:"slug" validate:"required,notblank,max=255,lowercase"`
	Description string `json:"description" validate:"max=2000"`
	IsActive    *bool  `json:"isActive"`
}

// UpdateCategoryRequest is the DTO for updating a category. Nil fields are left unchanged.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,notblank,max=255"`
	Slug        *string `json:"slug" validate:"omitempty,notblank,max=255,lowercase"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	IsActive    *bool   `json:"isActive"`
}
