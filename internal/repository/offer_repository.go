package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shopkit-io/shopkit/internal/model"
	"github.com/shopkit-io/shopkit/internal/service"
)

// OfferRepository provides data access for promotional offers using pgx.
type OfferRepository struct {
	pool PoolInterface
}

// NewOfferRepository creates a new OfferRepository with the given pool.
func NewOfferRepository(pool *pgxpool.Pool) *OfferRepository {
	return &OfferRepository{pool: pool}
}

// NewOfferRepositoryWithPool creates an OfferRepository with a custom pool interface.
// This is primarily used for testing.
func NewOfferRepositoryWithPool(pool PoolInterface) *OfferRepository {
	return &OfferRepository{pool: pool}
}

const offerColumns = `id, title, description, discount_percent, starts_at, ends_at, is_active, created_at, updated_at`

func scanOffer(row pgx.Row) (*model.Offer, error) {
	var o model.Offer
	err := row.Scan(&o.ID, &o.Title, &o.Description, &o.DiscountPercent, &o.StartsAt, &o.EndsAt, &o.IsActive, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Insert inserts a new offer.
func (r *OfferRepository) Insert(ctx context.Context, o *model.Offer) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO offers (id, title, description, discount_percent, starts_at, ends_at, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		o.ID, o.Title, o.Description, o.DiscountPercent, o.StartsAt, o.EndsAt, o.IsActive)
	if err != nil {
		return fmt.Errorf("insert offer: %w", err)
	}
	return nil
}

// GetByID retrieves an offer by id.
// Returns nil, nil if the offer is not found (service layer handles this).
func (r *OfferRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Offer, error) {
	o, err := scanOffer(r.pool.QueryRow(ctx,
		`SELECT `+offerColumns+` FROM offers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get offer %s: %w", id, err)
	}
	return o, nil
}

func (r *OfferRepository) list(ctx context.Context, query string, args ...any) ([]model.Offer, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	defer rows.Close()

	offers := []model.Offer{}
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan offer: %w", err)
		}
		offers = append(offers, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate offer rows: %w", err)
	}
	return offers, nil
}

// List retrieves all offers, newest window first.
func (r *OfferRepository) List(ctx context.Context) ([]model.Offer, error) {
	return r.list(ctx, `SELECT `+offerColumns+` FROM offers ORDER BY starts_at DESC`)
}

// ListActive retrieves offers whose active window contains the given instant.
func (r *OfferRepository) ListActive(ctx context.Context, now time.Time) ([]model.Offer, error) {
	return r.list(ctx,
		`SELECT `+offerColumns+` FROM offers
		 WHERE is_active AND starts_at <= $1 AND ends_at >= $1
		 ORDER BY starts_at DESC`, now)
}

// Update replaces the mutable columns of an offer.
// Returns service.ErrOfferNotFound if the offer doesn't exist.
func (r *OfferRepository) Update(ctx context.Context, o *model.Offer) error {
	ct, err := r.pool.Exec(ctx,
		`UPDATE offers
		 SET title = $2, description = $3, discount_percent = $4, starts_at = $5, ends_at = $6,
		     is_active = $7, updated_at = now()
		 WHERE id = $1`,
		o.ID, o.Title, o.Description, o.DiscountPercent, o.StartsAt, o.EndsAt, o.IsActive)
	if err != nil {
		return fmt.Errorf("update offer %s: %w", o.ID, err)
	}
	if ct.RowsAffected() == 0 {
		return service.ErrOfferNotFound
	}
	return nil
}

// Delete removes an offer.
// Returns service.ErrOfferNotFound if the offer doesn't exist.
func (r *OfferRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM offers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete offer %s: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return service.ErrOfferNotFound
	}
	return nil
}
