package model

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog item. Stock is mutated by order placement and
// cancellation; everything else is admin CRUD.
type Product struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	SalePrice   *float64   `json:"salePrice,omitempty"`
	Stock       int        `json:"stock"`
	CategoryID  uuid.UUID  `json:"categoryId"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// EffectivePrice returns the sale price when one is set and lower than the
// list price, otherwise the list price. This is the unit price snapshotted
// onto order line items.
func (p *Product) EffectivePrice() float64 {
	if p.SalePrice != nil && *p.SalePrice < p.Price {
		return *p.SalePrice
	}
	return p.Price
}

// CreateProductRequest is the DTO for creating a product.
type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required,notblank,max=255"`
	Description string   `json:"description" validate:"max=5000"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	SalePrice   *float64 `json:"salePrice" validate:"omitempty,gte=0"`
	Stock       *int     `json:"stock" validate:"required,gte=0"`
	CategoryID  string   `json:"categoryId" validate:"required,uuid"`
	ImageURL    string   `json:"imageUrl" validate:"omitempty,url,max=2048"`
	IsActive    *bool    `json:"isActive"`
}

// UpdateProductRequest is the DTO for updating a product. Nil fields are left unchanged.
type UpdateProductRequest struct {
	Name        *string  `json:"name" validate:"omitempty,notblank,max=255"`
	Description *string  `json:"description" validate:"omitempty,max=5000"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	SalePrice   *float64 `json:"salePrice" validate:"omitempty,gte=0"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	CategoryID  *string  `json:"categoryId" validate:"omitempty,uuid"`
	ImageURL    *string  `json:"imageUrl" validate:"omitempty,url,max=2048"`
	IsActive    *bool    `json:"isActive"`
}

// ProductFilter narrows product listings.
type ProductFilter struct {
	CategoryID *uuid.UUID
	ActiveOnly bool
	Page       int
	PerPage    int
}
