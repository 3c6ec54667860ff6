package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DiscountType enumerates the supported coupon discount kinds.
type DiscountType string

const (
	DiscountPercentage   DiscountType = "percentage"
	DiscountFixed        DiscountType = "fixed"
	DiscountFreeShipping DiscountType = "free_shipping"
)

// Coupon is a discount code. Codes are matched case-insensitively and
// stored uppercase; uniqueness is enforced by the database.
type Coupon struct {
	ID              uuid.UUID    `json:"id"`
	Code            string       `json:"code"`
	DiscountType    DiscountType `json:"discountType"`
	DiscountValue   float64      `json:"discountValue"`
	MinimumPurchase float64      `json:"minimumPurchase"`
	StartsAt        *time.Time   `json:"startsAt,omitempty"`
	EndsAt          *time.Time   `json:"endsAt,omitempty"`
	IsActive        bool         `json:"isActive"`
	UsageCount      int          `json:"usageCount"`
	UsageLimit      *int         `json:"usageLimit,omitempty"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

// NormalizeCouponCode canonicalizes a coupon code for lookup and storage.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Valid reports whether the coupon can be applied at the given instant:
// it must be active, inside its validity window, and under its usage limit.
func (c *Coupon) Valid(now time.Time) bool {
	if !c.IsActive {
		return false
	}
	if c.StartsAt != nil && now.Before(*c.StartsAt) {
		return false
	}
	if c.EndsAt != nil && now.After(*c.EndsAt) {
		return false
	}
	if c.UsageLimit != nil && c.UsageCount >= *c.UsageLimit {
		return false
	}
	return true
}

// Discount returns the monetary discount this coupon applies to the given
// subtotal. Percentage and fixed discounts are clamped to the subtotal so
// a total can never go negative. Free-shipping coupons carry no monetary
// discount; they waive the shipping fee instead.
func (c *Coupon) Discount(subtotal float64) float64 {
	var d float64
	switch c.DiscountType {
	case DiscountPercentage:
		d = subtotal * c.DiscountValue / 100
	case DiscountFixed:
		d = c.DiscountValue
	case DiscountFreeShipping:
		return 0
	}
	if d > subtotal {
		d = subtotal
	}
	return d
}

// CreateCouponRequest is the DTO for creating a coupon.
type CreateCouponRequest struct {
	Code            string     `json:"code" validate:"required,notblank,max=64"`
	DiscountType    string     `json:"discountType" validate:"required,oneof=percentage fixed free_shipping"`
	DiscountValue   *float64   `json:"discountValue" validate:"required,gte=0"`
	MinimumPurchase float64    `json:"minimumPurchase" validate:"gte=0"`
	StartsAt        *time.Time `json:"startsAt"`
	EndsAt          *time.Time `json:"endsAt"`
	IsActive        *bool      `json:"isActive"`
	UsageLimit      *int       `json:"usageLimit" validate:"omitempty,gte=1"`
}

// UpdateCouponRequest is the DTO for updating a coupon. Nil fields are left unchanged.
type UpdateCouponRequest struct {
	DiscountType    *string    `json:"discountType" validate:"omitempty,oneof=percentage fixed free_shipping"`
	DiscountValue   *float64   `json:"discountValue" validate:"omitempty,gte=0"`
	MinimumPurchase *float64   `json:"minimumPurchase" validate:"omitempty,gte=0"`
	StartsAt        *time.Time `json:"startsAt"`
	EndsAt          *time.Time `json:"endsAt"`
	IsActive        *bool      `json:"isActive"`
	UsageLimit      *int       `json:"usageLimit" validate:"omitempty,gte=1"`
}

// ValidateCouponRequest is the DTO for POST /api/coupons/validate.
type ValidateCouponRequest struct {
	Code        string   `json:"code" validate:"required,notblank,max=64"`
	OrderAmount *float64 `json:"orderAmount" validate:"required,gte=0"`
}

// ValidateCouponResponse reports whether a coupon applies to an order
// amount and the discount it would grant.
type ValidateCouponResponse struct {
	Valid    bool    `json:"valid"`
	Discount float64 `json:"discount"`
	Message  string  `json:"message,omitempty"`
	Coupon   *Coupon `json:"coupon,omitempty"`
}
