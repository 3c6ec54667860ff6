package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shopkit-io/shopkit/internal/model"
)

// OfferRepositoryInterface defines the interface for offer data access.
type OfferRepositoryInterface interface {
	Insert(ctx context.Context, o *model.Offer) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Offer, error)
	List(ctx context.Context) ([]model.Offer, error)
	ListActive(ctx context.Context, now time.Time) ([]model.Offer, error)
	Update(ctx context.Context, o *model.Offer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// OfferService provides business logic for promotional offers.
type OfferService struct {
	repo OfferRepositoryInterface
	now  func() time.Time
}

// NewOfferService creates a new OfferService with the given repository.
func NewOfferService(repo OfferRepositoryInterface) *OfferService {
	return &OfferService{repo: repo, now: time.Now}
}

// Create creates a new offer from the request. The window must be ordered:
// an offer that ends before it starts is rejected.
func (s *OfferService) Create(ctx context.Context, req *model.CreateOfferRequest) (*model.Offer, error) {
	if req == nil || req.DiscountPercent == nil || req.StartsAt == nil || req.EndsAt == nil {
		return nil, ErrInvalidRequest
	}
	if req.EndsAt.Before(*req.StartsAt) {
		return nil, ErrInvalidRequest
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	o := &model.Offer{
		ID:              uuid.New(),
		Title:           req.Title,
		Description:     req.Description,
		DiscountPercent: *req.DiscountPercent,
		StartsAt:        *req.StartsAt,
		EndsAt:          *req.EndsAt,
		IsActive:        active,
	}
	if err := s.repo.Insert(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// Get retrieves an offer by id.
// Returns ErrOfferNotFound if the offer doesn't exist.
func (s *OfferService) Get(ctx context.Context, id uuid.UUID) (*model.Offer, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get offer: %w", err)
	}
	if o == nil {
		return nil, ErrOfferNotFound
	}
	return o, nil
}

// List retrieves all offers.
func (s *OfferService) List(ctx context.Context) ([]model.Offer, error) {
	return s.repo.List(ctx)
}

// ListActive retrieves offers currently inside their active window.
func (s *OfferService) ListActive(ctx context.Context) ([]model.Offer, error) {
	return s.repo.ListActive(ctx, s.now())
}

// Update applies the non-nil fields of the request to an existing offer.
// Returns ErrOfferNotFound if the offer doesn't exist.
func (s *OfferService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateOfferRequest) (*model.Offer, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}

	o, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		o.Title = *req.Title
	}
	if req.Description != nil {
		o.Description = *req.Description
	}
	if req.DiscountPercent != nil {
		o.DiscountPercent = *req.DiscountPercent
	}
	if req.StartsAt != nil {
		o.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		o.EndsAt = *req.EndsAt
	}
	if req.IsActive != nil {
		o.IsActive = *req.IsActive
	}
	if o.EndsAt.Before(o.StartsAt) {
		return nil, ErrInvalidRequest
	}
	if err := s.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// Delete removes an offer.
// Returns ErrOfferNotFound if the offer doesn't exist.
func (s *OfferService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
