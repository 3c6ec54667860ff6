package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/shopkit-io/shopkit/internal/model"
	"github.com/shopkit-io/shopkit/pkg/database"
)

// OrderRepositoryInterface defines the interface for order data access.
type OrderRepositoryInterface interface {
	Insert(ctx context.Context, tx database.TxQuerier, o *model.Order) error
	CountPlacedBetween(ctx context.Context, tx database.TxQuerier, from, to time.Time) (int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	GetForUpdate(ctx context.Context, tx database.TxQuerier, id uuid.UUID) (*model.Order, error)
	List(ctx context.Context, f model.OrderFilter) ([]model.Order, error)
	UpdateStatus(ctx context.Context, tx database.TxQuerier, id uuid.UUID, status model.OrderStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// StockRepositoryInterface is the slice of product data access the order
// workflow needs: row-locked reads and the stock mutations.
type StockRepositoryInterface interface {
	GetForUpdate(ctx context.Context, tx database.TxQuerier, id uuid.UUID) (*model.Product, error)
	DecrementStock(ctx context.Context, tx database.TxQuerier, id uuid.UUID, qty int) error
	RestoreStock(ctx context.Context, tx database.TxQuerier, id uuid.UUID, qty int) error
}

// CouponUsageRepositoryInterface is the slice of coupon data access the
// order workflow needs.
type CouponUsageRepositoryInterface interface {
	GetByCodeForUpdate(ctx context.Context, tx database.TxQuerier, code string) (*model.Coupon, error)
	IncrementUsage(ctx context.Context, tx database.TxQuerier, id uuid.UUID) error
}

// PricingProvider supplies the shop-level pricing knobs (tax rate,
// shipping fee, order number prefix) the placement workflow reads.
type PricingProvider interface {
	Pricing(ctx context.Context) (model.Settings, error)
}

// TxBeginner defines the interface for beginning transactions.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// OrderService implements the order placement and fulfilment workflow.
// Placement runs as one transaction: stock decrements, the coupon usage
// increment, and the order insert are applied together or not at all.
type OrderService struct {
	pool     TxBeginner
	orders   OrderRepositoryInterface
	products StockRepositoryInterface
	coupons  CouponUsageRepositoryInterface
	pricing  PricingProvider
	now      func() time.Time
}

// NewOrderService creates a new OrderService with the given pool and repositories.
func NewOrderService(pool *pgxpool.Pool, orders OrderRepositoryInterface, products StockRepositoryInterface, coupons CouponUsageRepositoryInterface, pricing PricingProvider) *OrderService {
	return NewOrderServiceWithTxBeginner(pool, orders, products, coupons, pricing)
}

// NewOrderServiceWithTxBeginner creates an OrderService with a custom TxBeginner.
// Primarily used for testing.
func NewOrderServiceWithTxBeginner(pool TxBeginner, orders OrderRepositoryInterface, products StockRepositoryInterface, coupons CouponUsageRepositoryInterface, pricing PricingProvider) *OrderService {
	return &OrderService{
		pool:     pool,
		orders:   orders,
		products: products,
		coupons:  coupons,
		pricing:  pricing,
		now:      time.Now,
	}
}

// round2 rounds a monetary amount to cents.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Place atomically places an order from a cart submission.
// Returns:
//   - ErrProductNotFound if a product id does not resolve or is inactive
//   - ErrInsufficientStock if any line item exceeds the product's stock
//   - ErrCouponNotFound if the supplied coupon code does not resolve
//   - ErrInvalidCoupon if the coupon is inactive, expired, or used up
//   - ErrMinimumPurchaseNotMet if the subtotal is below the coupon's minimum
//
// The order number is a best-effort daily sequence; the database's unique
// index is the real collision guard, so placement retries once when the
// insert hits it before giving up with ErrOrderNumberConflict.
func (s *OrderService) Place(ctx context.Context, req *model.CreateOrderRequest) (*model.Order, error) {
	// Defense-in-depth: check for nil pointer even though handler validates
	if req == nil || len(req.Items) == 0 {
		return nil, ErrInvalidRequest
	}

	pricing, err := s.pricing.Pricing(ctx)
	if err != nil {
		return nil, fmt.Errorf("load pricing: %w", err)
	}

	for attempt := 0; attempt < 2; attempt++ {
		order, err := s.placeOnce(ctx, req, pricing)
		if errors.Is(err, ErrOrderNumberConflict) {
			log.Warn().Int("attempt", attempt+1).Msg("order number collision, regenerating")
			continue
		}
		return order, err
	}
	return nil, ErrOrderNumberConflict
}

func (s *OrderService) placeOnce(ctx context.Context, req *model.CreateOrderRequest, pricing model.Settings) (*model.Order, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }() // Safe: no-op if committed

	// 1. Lock each product, snapshot its effective price, and take the
	// stock conditionally. A failed conditional decrement means a
	// concurrent order won the remaining units.
	var subtotal float64
	items := make([]model.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		productID, err := uuid.Parse(line.ProductID)
		if err != nil {
			return nil, ErrInvalidRequest
		}

		p, err := s.products.GetForUpdate(ctx, tx, productID)
		if err != nil {
			return nil, err
		}
		if !p.IsActive {
			return nil, ErrProductNotFound
		}
		if err := s.products.DecrementStock(ctx, tx, productID, line.Quantity); err != nil {
			return nil, err
		}

		unitPrice := p.EffectivePrice()
		items = append(items, model.OrderItem{
			ProductID: productID,
			Name:      p.Name,
			UnitPrice: unitPrice,
			Quantity:  line.Quantity,
		})
		subtotal += unitPrice * float64(line.Quantity)
	}
	subtotal = round2(subtotal)

	// 2. Apply the coupon inside the same transaction. The row lock keeps
	// the validity check and the usage increment consistent.
	var discount float64
	var applied *model.AppliedCoupon
	freeShipping := false
	if req.CouponCode != "" {
		c, err := s.coupons.GetByCodeForUpdate(ctx, tx, model.NormalizeCouponCode(req.CouponCode))
		if err != nil {
			return nil, err
		}
		if !c.Valid(s.now()) {
			return nil, ErrInvalidCoupon
		}
		if subtotal < c.MinimumPurchase {
			return nil, ErrMinimumPurchaseNotMet
		}
		discount = round2(c.Discount(subtotal))
		freeShipping = c.DiscountType == model.DiscountFreeShipping
		if err := s.coupons.IncrementUsage(ctx, tx, c.ID); err != nil {
			return nil, err
		}
		applied = &model.AppliedCoupon{
			Code:          c.Code,
			DiscountType:  c.DiscountType,
			DiscountValue: c.DiscountValue,
		}
	}

	// 3. Tax and shipping from the shop settings.
	shippingFee := pricing.ShippingFee
	if freeShipping || (pricing.FreeShippingThreshold > 0 && subtotal >= pricing.FreeShippingThreshold) {
		shippingFee = 0
	}
	tax := round2((subtotal - discount) * pricing.TaxRate)
	total := round2(subtotal - discount + tax + shippingFee)

	// 4. Daily-sequence order number. Counting inside the transaction keeps
	// sequential creations strictly increasing; the unique index catches
	// concurrent collisions.
	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	placedToday, err := s.orders.CountPlacedBetween(ctx, tx, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		ID:              uuid.New(),
		OrderNumber:     fmt.Sprintf("%s-%s-%04d", pricing.OrderNumberPrefix, now.Format("060102"), placedToday+1),
		Customer:        req.Customer,
		ShippingAddress: req.ShippingAddress,
		Items:           items,
		Subtotal:        subtotal,
		Discount:        discount,
		Tax:             tax,
		ShippingFee:     shippingFee,
		Total:           total,
		PaymentMethod:   model.PaymentMethod(req.PaymentMethod),
		PaymentStatus:   model.PaymentPending,
		Status:          model.OrderPending,
		Coupon:          applied,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.orders.Insert(ctx, tx, order); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	log.Info().
		Str("order_number", order.OrderNumber).
		Float64("total", order.Total).
		Int("items", len(order.Items)).
		Msg("order placed")
	return order, nil
}

// Get retrieves an order by id.
// Returns ErrOrderNotFound if the order doesn't exist.
func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

// List retrieves orders matching the filter.
func (s *OrderService) List(ctx context.Context, f model.OrderFilter) ([]model.Order, error) {
	return s.orders.List(ctx, f)
}

// UpdateStatus advances an order through the fulfilment state machine.
// Cancellation restores each line item's quantity to its product's stock
// in the same transaction.
// Returns ErrOrderNotFound or ErrInvalidStatusTransition.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, next model.OrderStatus) (*model.Order, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	o, err := s.orders.GetForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if !model.CanTransition(o.Status, next) {
		return nil, ErrInvalidStatusTransition
	}

	if next == model.OrderCancelled {
		for _, it := range o.Items {
			if err := s.products.RestoreStock(ctx, tx, it.ProductID, it.Quantity); err != nil {
				return nil, err
			}
		}
	}

	if err := s.orders.UpdateStatus(ctx, tx, id, next); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	log.Info().
		Str("order_number", o.OrderNumber).
		Str("from", string(o.Status)).
		Str("to", string(next)).
		Msg("order status updated")
	o.Status = next
	return o, nil
}

// Delete removes an order. Administrative override, not part of the
// customer workflow; deleted orders do not restore stock.
// Returns ErrOrderNotFound if the order doesn't exist.
func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.orders.Delete(ctx, id)
}
