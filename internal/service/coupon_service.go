package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shopkit-io/shopkit/internal/model"
)

// CouponRepositoryInterface defines the interface for coupon data access.
type CouponRepositoryInterface interface {
	Insert(ctx context.Context, c *model.Coupon) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error)
	GetByCode(ctx context.Context, code string) (*model.Coupon, error)
	List(ctx context.Context) ([]model.Coupon, error)
	Update(ctx context.Context, c *model.Coupon) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CouponService provides business logic for coupon administration and the
// storefront validity quote. It never consumes usage; only order placement
// increments the usage count.
type CouponService struct {
	repo CouponRepositoryInterface
	now  func() time.Time
}

// NewCouponService creates a new CouponService with the given repository.
func NewCouponService(repo CouponRepositoryInterface) *CouponService {
	return &CouponService{repo: repo, now: time.Now}
}

// Create creates a new coupon from the request. The code is stored uppercase
// so lookups are case-insensitive.
// Returns ErrCouponExists if the code is already taken.
func (s *CouponService) Create(ctx context.Context, req *model.CreateCouponRequest) (*model.Coupon, error) {
	// Defense-in-depth: check for nil pointer even though handler validates
	if req == nil || req.DiscountValue == nil {
		return nil, ErrInvalidRequest
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	c := &model.Coupon{
		ID:              uuid.New(),
		Code:            model.NormalizeCouponCode(req.Code),
		DiscountType:    model.DiscountType(req.DiscountType),
		DiscountValue:   *req.DiscountValue,
		MinimumPurchase: req.MinimumPurchase,
		StartsAt:        req.StartsAt,
		EndsAt:          req.EndsAt,
		IsActive:        active,
		UsageLimit:      req.UsageLimit,
	}
	if c.DiscountType == model.DiscountPercentage && c.DiscountValue > 100 {
		return nil, ErrInvalidRequest
	}
	if err := s.repo.Insert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Get retrieves a coupon by id.
// Returns ErrCouponNotFound if the coupon doesn't exist.
func (s *CouponService) Get(ctx context.Context, id uuid.UUID) (*model.Coupon, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get coupon: %w", err)
	}
	if c == nil {
		return nil, ErrCouponNotFound
	}
	return c, nil
}

// List retrieves all coupons.
func (s *CouponService) List(ctx context.Context) ([]model.Coupon, error) {
	return s.repo.List(ctx)
}

// Update applies the non-nil fields of the request to an existing coupon.
// Returns ErrCouponNotFound if the coupon doesn't exist.
func (s *CouponService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateCouponRequest) (*model.Coupon, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}

	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.DiscountType != nil {
		c.DiscountType = model.DiscountType(*req.DiscountType)
	}
	if req.DiscountValue != nil {
		c.DiscountValue = *req.DiscountValue
	}
	if req.MinimumPurchase != nil {
		c.MinimumPurchase = *req.MinimumPurchase
	}
	if req.StartsAt != nil {
		c.StartsAt = req.StartsAt
	}
	if req.EndsAt != nil {
		c.EndsAt = req.EndsAt
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	if req.UsageLimit != nil {
		c.UsageLimit = req.UsageLimit
	}
	if c.DiscountType == model.DiscountPercentage && c.DiscountValue > 100 {
		return nil, ErrInvalidRequest
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes a coupon.
// Returns ErrCouponNotFound if the coupon doesn't exist.
func (s *CouponService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Validate quotes whether a coupon applies to an order amount and the
// discount it would grant. This is a pure check: it never increments the
// usage count, so a quoted coupon can still be rejected at placement.
func (s *CouponService) Validate(ctx context.Context, code string, orderAmount float64) (*model.ValidateCouponResponse, error) {
	c, err := s.repo.GetByCode(ctx, model.NormalizeCouponCode(code))
	if err != nil {
		return nil, fmt.Errorf("get coupon by code: %w", err)
	}
	if c == nil {
		return &model.ValidateCouponResponse{Valid: false, Message: "coupon not found"}, nil
	}
	if !c.Valid(s.now()) {
		return &model.ValidateCouponResponse{Valid: false, Message: "coupon is not valid"}, nil
	}
	if orderAmount < c.MinimumPurchase {
		return &model.ValidateCouponResponse{
			Valid:   false,
			Message: fmt.Sprintf("minimum purchase amount of %.2f not met", c.MinimumPurchase),
		}, nil
	}
	return &model.ValidateCouponResponse{
		Valid:    true,
		Discount: c.Discount(orderAmount),
		Coupon:   c,
	}, nil
}
