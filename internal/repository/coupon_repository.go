package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shopkit-io/shopkit/internal/model"
	"github.com/shopkit-io/shopkit/internal/service"
	"github.com/shopkit-io/shopkit/pkg/database"
)

// CouponRepository provides data access for coupons using pgx.
type CouponRepository struct {
	pool PoolInterface
}

// NewCouponRepository creates a new CouponRepository with the given pool.
func NewCouponRepository(pool *pgxpool.Pool) *CouponRepository {
	return &CouponRepository{pool: pool}
}

// NewCouponRepositoryWithPool creates a CouponRepository with a custom pool interface.
// This is primarily used for testing.
func NewCouponRepositoryWithPool(pool PoolInterface) *CouponRepository {
	return &CouponRepository{pool: pool}
}

const couponColumns = `id, code, discount_type, discount_value, minimum_purchase, starts_at, ends_at, is_active, usage_count, usage_limit, created_at, updated_at`

func scanCoupon(row pgx.Row) (*model.Coupon, error) {
	var c model.Coupon
	err := row.Scan(
		&c.ID,
		&c.Code,
		&c.DiscountType,
		&c.DiscountValue,
		&c.MinimumPurchase,
		&c.StartsAt,
		&c.EndsAt,
		&c.IsActive,
		&c.UsageCount,
		&c.UsageLimit,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Insert inserts a new coupon. The code is stored as given; callers
// normalize it to uppercase first.
// Returns service.ErrCouponExists if the code is already taken.
func (r *CouponRepository) Insert(ctx context.Context, c *model.Coupon) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO coupons (id, code, discount_type, discount_value, minimum_purchase, starts_at, ends_at, is_active, usage_limit)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.Code, c.DiscountType, c.DiscountValue, c.MinimumPurchase, c.StartsAt, c.EndsAt, c.IsActive, c.UsageLimit)
	if err != nil {
		if database.IsUniqueViolation(err, "") {
			return service.ErrCouponExists
		}
		return fmt.Errorf("insert coupon: %w", err)
	}
	return nil
}

// GetByID retrieves a coupon by id.
// Returns nil, nil if the coupon is not found (service layer handles this).
func (r *CouponRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error) {
	c, err := scanCoupon(r.pool.QueryRow(ctx,
		`SELECT `+couponColumns+` FROM coupons WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get coupon %s: %w", id, err)
	}
	return c, nil
}

// GetByCode retrieves a coupon by case-insensitive code match.
// Returns nil, nil if the coupon is not found (service layer handles this).
func (r *CouponRepository) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	c, err := scanCoupon(r.pool.QueryRow(ctx,
		`SELECT `+couponColumns+` FROM coupons WHERE upper(code) = upper($1)`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get coupon by code %s: %w", code, err)
	}
	return c, nil
}

// GetByCodeForUpdate retrieves a coupon by case-insensitive code with a row
// lock (SELECT FOR UPDATE), so the usage count read stays valid until the
// transaction completes.
// Returns service.ErrCouponNotFound if the coupon doesn't exist.
func (r *CouponRepository) GetByCodeForUpdate(ctx context.Context, tx database.TxQuerier, code string) (*model.Coupon, error) {
	c, err := scanCoupon(tx.QueryRow(ctx,
		`SELECT `+couponColumns+` FROM coupons WHERE upper(code) = upper($1) FOR UPDATE`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, service.ErrCouponNotFound
		}
		return nil, fmt.Errorf("get coupon for update %s: %w", code, err)
	}
	return c, nil
}

// List retrieves all coupons, newest first.
func (r *CouponRepository) List(ctx context.Context) ([]model.Coupon, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+couponColumns+` FROM coupons ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list coupons: %w", err)
	}
	defer rows.Close()

	coupons := []model.Coupon{}
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			return nil, fmt.Errorf("scan coupon: %w", err)
		}
		coupons = append(coupons, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate coupon rows: %w", err)
	}
	return coupons, nil
}

// Update replaces the mutable columns of a coupon. The code and usage
// count are not updatable through this path.
// Returns service.ErrCouponNotFound if the coupon doesn't exist.
func (r *CouponRepository) Update(ctx context.Context, c *model.Coupon) error {
	ct, err := r.pool.Exec(ctx,
		`UPDATE coupons
		 SET discount_type = $2, discount_value = $3, minimum_purchase = $4,
		     starts_at = $5, ends_at = $6, is_active = $7, usage_limit = $8, updated_at = now()
		 WHERE id = $1`,
		c.ID, c.DiscountType, c.DiscountValue, c.MinimumPurchase, c.StartsAt, c.EndsAt, c.IsActive, c.UsageLimit)
	if err != nil {
		return fmt.Errorf("update coupon %s: %w", c.ID, err)
	}
	if ct.RowsAffected() == 0 {
		return service.ErrCouponNotFound
	}
	return nil
}

// Delete removes a coupon.
// Returns service.ErrCouponNotFound if the coupon doesn't exist.
func (r *CouponRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete coupon %s: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return service.ErrCouponNotFound
	}
	return nil
}

// IncrementUsage bumps a coupon's usage count by exactly one, conditional
// on the usage limit not being reached. Zero rows affected means the limit
// was hit between validation and increment.
// Returns service.ErrInvalidCoupon in that case.
func (r *CouponRepository) IncrementUsage(ctx context.Context, tx database.TxQuerier, id uuid.UUID) error {
	ct, err := tx.Exec(ctx,
		`UPDATE coupons SET usage_count = usage_count + 1, updated_at = now()
		 WHERE id = $1 AND (usage_limit IS NULL OR usage_count < usage_limit)`,
		id)
	if err != nil {
		return fmt.Errorf("increment usage for coupon %s: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return service.ErrInvalidCoupon
	}
	return nil
}
