package model

import (
	"time"

	"github.com/google/uuid"
)

// Offer is a time-boxed storefront promotion banner.
type Offer struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DiscountPercent float64   `json:"discountPercent"`
	StartsAt        time.Time `json:"startsAt"`
	EndsAt          time.Time `json:"endsAt"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ActiveNow reports whether the offer is active and inside its window.
func (o *Offer) ActiveNow(now time.Time) bool {
	return o.IsActive && !now.Before(o.StartsAt) && !now.After(o.EndsAt)
}

// CreateOfferRequest is the DTO for creating an offer.
type CreateOfferRequest struct {
	Title           string     `json:"title" validate:"required,notblank,max=255"`
	Description     string     `json:"description" validate:"max=2000"`
	DiscountPercent *float64   `json:"discountPercent" validate:"required,gte=0,lte=100"`
	StartsAt        *time.Time `json:"startsAt" validate:"required"`
	EndsAt          *time.Time `json:"endsAt" validate:"required"`
	IsActive        *bool      `json:"isActive"`
}

// UpdateOfferRequest is the DTO for updating an offer. Nil fields are left unchanged.
type UpdateOfferRequest struct {
	Title           *string    `json:"title" validate:"omitempty,notblank,max=255"`
	Description     *string    `json:"description" validate:"omitempty,max=2000"`
	DiscountPercent *float64   `json:"discountPercent" validate:"omitempty,gte=0,lte=100"`
	StartsAt        *time.Time `json:"startsAt"`
	EndsAt          *time.Time `json:"endsAt"`
	IsActive        *bool      `json:"isActive"`
}
