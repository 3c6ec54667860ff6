package model

import (
	"time"

	"github.com/google/uuid"
)

// Review is a customer product review. Reviews are hidden from the
// storefront until an admin approves them.
type Review struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"productId"`
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateReviewRequest is the DTO for submitting a review.
type CreateReviewRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Author    string `json:"author" validate:"required,notblank,max=255"`
	Rating    *int   `json:"rating" validate:"required,gte=1,lte=5"`
	Comment   string `json:"comment" validate:"omitempty,max=5000"`
}
