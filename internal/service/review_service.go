package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/shopkit-io/shopkit/internal/model"
)

// ReviewRepositoryInterface defines the interface for review data access.
type ReviewRepositoryInterface interface {
	Insert(ctx context.Context, rv *model.Review) error
	ListByProduct(ctx context.Context, productID uuid.UUID, approvedOnly bool) ([]model.Review, error)
	SetApproved(ctx context.Context, id uuid.UUID, approved bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductLookup resolves product references when reviews are submitted.
type ProductLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
}

// ReviewService provides business logic for product reviews. New reviews
// start unapproved and are hidden from the storefront until an admin
// approves them.
type ReviewService struct {
	repo     ReviewRepositoryInterface
	products ProductLookup
}

// NewReviewService creates a new ReviewService with the given repositories.
func NewReviewService(repo ReviewRepositoryInterface, products ProductLookup) *ReviewService {
	return &ReviewService{repo: repo, products: products}
}

// Create submits a review for a product.
// Returns ErrProductNotFound if the product does not resolve.
func (s *ReviewService) Create(ctx context.Context, req *model.CreateReviewRequest) (*model.Review, error) {
	if req == nil || req.Rating == nil {
		return nil, ErrInvalidRequest
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, ErrInvalidRequest
	}
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("resolve product: %w", err)
	}
	if p == nil {
		return nil, ErrProductNotFound
	}

	rv := &model.Review{
		ID:        uuid.New(),
		ProductID: productID,
		Author:    req.Author,
		Rating:    *req.Rating,
		Comment:   req.Comment,
	}
	if err := s.repo.Insert(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

// ListByProduct retrieves reviews for a product. includeUnapproved is the
// admin view; the storefront only sees approved reviews.
func (s *ReviewService) ListByProduct(ctx context.Context, productID uuid.UUID, includeUnapproved bool) ([]model.Review, error) {
	return s.repo.ListByProduct(ctx, productID, !includeUnapproved)
}

// Approve marks a review as approved.
// Returns ErrReviewNotFound if the review doesn't exist.
func (s *ReviewService) Approve(ctx context.Context, id uuid.UUID) error {
	return s.repo.SetApproved(ctx, id, true)
}

// Delete removes a review.
// Returns ErrReviewNotFound if the review doesn't exist.
func (s *ReviewService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
