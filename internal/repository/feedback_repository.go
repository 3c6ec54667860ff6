package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shopkit-io/shopkit/internal/model"
	"github.com/shopkit-io/shopkit/internal/service"
)

// FeedbackRepository provides data access for contact-form feedback using pgx.
type FeedbackRepository struct {
	pool PoolInterface
}

// NewFeedbackRepository creates a new FeedbackRepository with the given pool.
func NewFeedbackRepository(pool *pgxpool.Pool) *FeedbackRepository {
	return &FeedbackRepository{pool: pool}
}

// NewFeedbackRepositoryWithPool creates a FeedbackRepository with a custom pool interface.
// This is primarily used for testing.
func NewFeedbackRepositoryWithPool(pool PoolInterface) *FeedbackRepository {
	return &FeedbackRepository{pool: pool}
}

// Insert inserts a new feedback message.
func (r *FeedbackRepository) Insert(ctx context.Context, f *model.Feedback) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO feedback (id, name, email, subject, message) VALUES ($1, $2, $3, $4, $5)`,
		f.ID, f.Name, f.Email, f.Subject, f.Message)
	if err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

// List retrieves all feedback messages, newest first.
func (r *FeedbackRepository) List(ctx context.Context) ([]model.Feedback, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, email, subject, message, resolved, created_at
		 FROM feedback ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer rows.Close()

	out := []model.Feedback{}
	for rows.Next() {
		var f model.Feedback
		if err := rows.Scan(&f.ID, &f.Name, &f.Email, &f.Subject, &f.Message, &f.Resolved, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feedback rows: %w", err)
	}
	return out, nil
}

// SetResolved flips the resolved flag of a feedback message.
// Returns service.ErrFeedbackNotFound if the message doesn't exist.
func (r *FeedbackRepository) SetResolved(ctx context.Context, id uuid.UUID, resolved bool) error {
	ct, err := r.pool.Exec(ctx, `UPDATE feedback SET resolved = $2 WHERE id = $1`, id, resolved)
	if err != nil {
		return fmt.Errorf("resolve feedback %s: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return service.ErrFeedbackNotFound
	}
	return nil
}

// Delete removes a feedback message.
// Returns service.ErrFeedbackNotFound if the message doesn't exist.
func (r *FeedbackRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM feedback WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete feedback %s: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return service.ErrFeedbackNotFound
	}
	return nil
}
