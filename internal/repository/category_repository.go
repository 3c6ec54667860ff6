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

// CategoryRepository provides data access for categories using pgx.
type CategoryRepository struct {
	pool PoolInterface
}

// NewCategoryRepository creates a new CategoryRepository with the given pool.
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// NewCategoryRepositoryWithPool creates a CategoryRepository with a custom pool interface.
// This is primarily used for testing.
func NewCategoryRepositoryWithPool(pool PoolInterface) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

const categoryColumns = `id, name, slug, description, is_active, created_at, updated_at`

func scanCategory(row pgx.Row) (*model.Category, error) {
	var c model.Category
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Insert inserts a new category.
// Returns service.ErrCategoryExists if the slug is already taken.
func (r *CategoryRepository) Insert(ctx context.Context, c *model.Category) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO categories (id, name, slug, description, is_active) VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.Name, c.Slug, c.Description, c.IsActive)
	if err != nil {
		if database.IsUniqueViolation(err, "") {
			return service.ErrCategoryExists
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID retrieves a category by id.
// Returns nil, nil if the category is not found (service layer handles this).
func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	c, err := scanCategory(r.pool.QueryRow(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category %s: %w", id, err)
	}
	return c, nil
}

// List retrieves all categories, name order.
func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+categoryColumns+` FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category rows: %w", err)
	}
	return categories, nil
}

// Update replaces the mutable columns of a category.
// Returns service.ErrCategoryNotFound if the category doesn't exist and
// service.ErrCategoryExists on a slug collision.
func (r *CategoryRepository) Update(ctx context.Context, c *model.Category) error {
	ct, err := r.pool.Exec(ctx,
		`UPDATE categories SET name = $2, slug = $3, description = $4, is_active = $5, updated_at = now()
		 WHERE id = $1`,
		c.ID, c.Name, c.Slug, c.Description, c.IsActive)
	if err != nil {
		if database.IsUniqueViolation(err, "") {
			return service.ErrCategoryExists
		}
		return fmt.Errorf("update category %s: %w", c.ID, err)
	}
	if ct.RowsAffected() == 0 {
		return service.ErrCategoryNotFound
	}
	return nil
}

// Delete removes a category.
// Returns service.ErrCategoryNotFound if the category doesn't exist.
func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category %s: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return service.ErrCategoryNotFound
	}
	return nil
}
