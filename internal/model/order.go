package model

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethod enumerates the accepted payment methods.
type PaymentMethod string

const (
	PaymentCOD          PaymentMethod = "cod"
	PaymentCard         PaymentMethod = "card"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

// PaymentStatus tracks payment progress independent of fulfilment.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// CustomerInfo is the contact block captured on an order.
type CustomerInfo struct {
	Name  string `json:"name" validate:"required,notblank,max=255"`
	Email string `json:"email" validate:"required,email,max=255"`
	Phone string `json:"phone" validate:"omitempty,max=32"`
}

// ShippingAddress is the delivery address captured on an order.
type ShippingAddress struct {
	Street  string `json:"street" validate:"required,notblank,max=255"`
	City    string `json:"city" validate:"required,notblank,max=128"`
	State   string `json:"state" validate:"required,notblank,max=128"`
	Zip     string `json:"zip" validate:"required,notblank,max=32"`
	Country string `json:"country" validate:"required,notblank,max=128"`
}

// OrderItem is a line item with the product's name and unit price
// snapshotted at placement time. Later product edits never change it.
type OrderItem struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	UnitPrice float64   `json:"unitPrice"`
	Quantity  int       `json:"quantity"`
}

// AppliedCoupon snapshots the discount terms in force when the order was
// placed. Later coupon edits never change a placed order.
type AppliedCoupon struct {
	Code          string       `json:"code"`
	DiscountType  DiscountType `json:"discountType"`
	DiscountValue float64      `json:"discountValue"`
}

// Order is a placed order. OrderNumber is a best-effort sequential label;
// uniqueness is enforced by the database index, not the numbering scheme.
type Order struct {
	ID              uuid.UUID       `json:"id"`
	OrderNumber     string          `json:"orderNumber"`
	Customer        CustomerInfo    `json:"customerInfo"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	Items           []OrderItem     `json:"items"`
	Subtotal        float64         `json:"subtotal"`
	Discount        float64         `json:"discount"`
	Tax             float64         `json:"tax"`
	ShippingFee     float64         `json:"shippingFee"`
	Total           float64         `json:"total"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus"`
	Status          OrderStatus     `json:"orderStatus"`
	Coupon          *AppliedCoupon  `json:"coupon,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// OrderItemRequest is one cart entry in a placement request.
type OrderItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

// CreateOrderRequest is the DTO for POST /api/orders.
type CreateOrderRequest struct {
	Customer        CustomerInfo       `json:"customerInfo" validate:"required"`
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	ShippingAddress ShippingAddress    `json:"shippingAddress" validate:"required"`
	PaymentMethod   string             `json:"paymentMethod" validate:"required,oneof=cod card bank_transfer"`
	CouponCode      string             `json:"couponCode" validate:"omitempty,max=64"`
	Notes           string             `json:"notes" validate:"omitempty,max=2000"`
}

// UpdateOrderStatusRequest is the DTO for PUT /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	OrderStatus string `json:"orderStatus" validate:"required,oneof=pending processing shipped delivered cancelled"`
}

// OrderFilter narrows order listings.
type OrderFilter struct {
	Status  *OrderStatus
	Page    int
	PerPage int
}
