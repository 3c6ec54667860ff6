package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shopkit-io/shopkit/internal/model"
	"github.com/shopkit-io/shopkit/internal/service"
)

// ReviewRepository provides data access for product reviews using pgx.
type ReviewRepository struct {
	pool PoolInterface
}

// NewReviewRepository creates a new ReviewRepository with the given pool.
func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// NewReviewRepositoryWithPool creates a ReviewRepository with a custom pool interface.
// This is primarily used for testing.
func NewReviewRepositoryWithPool(pool PoolInterface) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

const reviewColumns = `id, product_id, author, rating, comment, approved, created_at, updated_at`

func scanReview(row pgx.Row) (*model.Review, error) {
	var rv model.Review
	err := row.Scan(&rv.ID, &rv.ProductID, &rv.Author, &rv.Rating, &rv.Comment, &rv.Approved, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

// Insert inserts a new review.
func (r *ReviewRepository) Insert(ctx context.Context, rv *model.Review) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO reviews (id, product_id, author, rating, comment, approved)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		rv.ID, rv.ProductID, rv.Author, rv.Rating, rv.Comment, rv.Approved)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

// ListByProduct retrieves reviews for a product, newest first. When
// approvedOnly is set, unapproved reviews are hidden (storefront view).
func (r *ReviewRepository) ListByProduct(ctx context.Context, productID uuid.UUID, approvedOnly bool) ([]model.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE product_id = $1`
	if approvedOnly {
		query += ` AND approved`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []model.Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, *rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}
	return reviews, nil
}

// SetApproved flips the approved flag of a review.
// Returns service.ErrReviewNotFound if the review doesn't exist.
func (r *ReviewRepository) SetApproved(ctx context.Context, id uuid.UUID, approved bool) error {
	ct, err := r.pool.Exec(ctx,
		`UPDATE reviews SET approved = $2, updated_at = now() WHERE id = $1`, id, approved)
	if err != nil {
		return fmt.Errorf("approve review %s: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return service.ErrReviewNotFound
	}
	return nil
}

// Delete removes a review.
// Returns service.ErrReviewNotFound if the review doesn't exist.
func (r *ReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete review %s: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return service.ErrReviewNotFound
	}
	return nil
}
