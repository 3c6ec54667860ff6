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

// ProductRepository provides data access for products using pgx.
type ProductRepository struct {
	pool PoolInterface
}

// NewProductRepository creates a new ProductRepository with the given pool.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// NewProductRepositoryWithPool creates a ProductRepository with a custom pool interface.
// This is primarily used for testing.
func NewProductRepositoryWithPool(pool PoolInterface) *ProductRepository {
	return &ProductRepository{pool: pool}
}

const productColumns = `id, name, description, price, sale_price, stock, category_id, image_url, is_active, created_at, updated_at`

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.SalePrice,
		&p.Stock,
		&p.CategoryID,
		&p.ImageURL,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Insert inserts a new product into the database.
func (r *ProductRepository) Insert(ctx context.Context, p *model.Product) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO products (id, name, description, price, sale_price, stock, category_id, image_url, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.Name, p.Description, p.Price, p.SalePrice, p.Stock, p.CategoryID, p.ImageURL, p.IsActive)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID retrieves a product by id.
// Returns nil, nil if the product is not found (service layer handles this).
func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found - let service handle
		}
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	return p, nil
}

// GetForUpdate retrieves a product with a row lock (SELECT FOR UPDATE).
// The lock holds until the transaction completes.
// Returns service.ErrProductNotFound if the product doesn't exist.
func (r *ProductRepository) GetForUpdate(ctx context.Context, tx database.TxQuerier, id uuid.UUID) (*model.Product, error) {
	p, err := scanProduct(tx.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, service.ErrProductNotFound
		}
		return nil, fmt.Errorf("get product for update %s: %w", id, err)
	}
	return p, nil
}

// List retrieves products matching the filter, newest first.
func (r *ProductRepository) List(ctx context.Context, f model.ProductFilter) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []any{}
	if f.CategoryID != nil {
		args = append(args, *f.CategoryID)
		query += fmt.Sprintf(" AND category_id = $%d", len(args))
	}
	if f.ActiveOnly {
		query += " AND is_active"
	}
	query += " ORDER BY created_at DESC"
	if f.PerPage > 0 {
		args = append(args, f.PerPage)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		if f.Page > 1 {
			args = append(args, (f.Page-1)*f.PerPage)
			query += fmt.Sprintf(" OFFSET $%d", len(args))
		}
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}
	return products, nil
}

// Update replaces the mutable columns of a product.
// Returns service.ErrProductNotFound if the product doesn't exist.
func (r *ProductRepository) Update(ctx context.Context, p *model.Product) error {
	ct, err := r.pool.Exec(ctx,
		`UPDATE products
		 SET name = $2, description = $3, price = $4, sale_price = $5, stock = $6,
		     category_id = $7, image_url = $8, is_active = $9, updated_at = now()
		 WHERE id = $1`,
		p.ID, p.Name, p.Description, p.Price, p.SalePrice, p.Stock, p.CategoryID, p.ImageURL, p.IsActive)
	if err != nil {
		return fmt.Errorf("update product %s: %w", p.ID, err)
	}
	if ct.RowsAffected() == 0 {
		return service.ErrProductNotFound
	}
	return nil
}

// Delete removes a product.
// Returns service.ErrProductNotFound if the product doesn't exist.
func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return service.ErrProductNotFound
	}
	return nil
}

// DecrementStock atomically takes qty units out of a product's stock.
// The update is conditional on stock >= qty so concurrent placements can
// never jointly oversell; zero rows affected means insufficient stock.
// Returns service.ErrInsufficientStock in that case.
func (r *ProductRepository) DecrementStock(ctx context.Context, tx database.TxQuerier, id uuid.UUID, qty int) error {
	ct, err := tx.Exec(ctx,
		`UPDATE products SET stock = stock - $2, updated_at = now() WHERE id = $1 AND stock >= $2`,
		id, qty)
	if err != nil {
		return fmt.Errorf("decrement stock for %s: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return service.ErrInsufficientStock
	}
	return nil
}

// RestoreStock returns qty units to a product's stock. Used by order
// cancellation as the compensating action for DecrementStock.
func (r *ProductRepository) RestoreStock(ctx context.Context, tx database.TxQuerier, id uuid.UUID, qty int) error {
	_, err := tx.Exec(ctx,
		`UPDATE products SET stock = stock + $2, updated_at = now() WHERE id = $1`,
		id, qty)
	if err != nil {
		return fmt.Errorf("restore stock for %s: %w", id, err)
	}
	return nil
}
