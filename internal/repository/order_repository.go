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
	"github.com/shopkit-io/shopkit/pkg/database"
)

// OrderRepository provides data access for orders and their line items using pgx.
type OrderRepository struct {
	pool PoolInterface
}

// NewOrderRepository creates a new OrderRepository with the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// NewOrderRepositoryWithPool creates an OrderRepository with a custom pool interface.
// This is primarily used for testing.
func NewOrderRepositoryWithPool(pool PoolInterface) *OrderRepository {
	return &OrderRepository{pool: pool}
}

const orderColumns = `id, order_number, customer_name, customer_email, customer_phone,
	ship_street, ship_city, ship_state, ship_zip, ship_country,
	subtotal, discount, tax, shipping_fee, total,
	payment_method, payment_status, status,
	coupon_code, coupon_discount_type, coupon_discount_value,
	notes, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	var couponCode *string
	var couponType *model.DiscountType
	var couponValue *float64
	err := row.Scan(
		&o.ID,
		&o.OrderNumber,
		&o.Customer.Name,
		&o.Customer.Email,
		&o.Customer.Phone,
		&o.ShippingAddress.Street,
		&o.ShippingAddress.City,
		&o.ShippingAddress.State,
		&o.ShippingAddress.Zip,
		&o.ShippingAddress.Country,
		&o.Subtotal,
		&o.Discount,
		&o.Tax,
		&o.ShippingFee,
		&o.Total,
		&o.PaymentMethod,
		&o.PaymentStatus,
		&o.Status,
		&couponCode,
		&couponType,
		&couponValue,
		&o.Notes,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if couponCode != nil && couponType != nil && couponValue != nil {
		o.Coupon = &model.AppliedCoupon{
			Code:          *couponCode,
			DiscountType:  *couponType,
			DiscountValue: *couponValue,
		}
	}
	return &o, nil
}

// Insert persists an order and its line-item snapshots within the given
// transaction. Order number uniqueness is enforced by the database index;
// a collision surfaces as service.ErrOrderNumberConflict so the caller can
// regenerate and retry.
func (r *OrderRepository) Insert(ctx context.Context, tx database.TxQuerier, o *model.Order) error {
	var couponCode *string
	var couponType *model.DiscountType
	var couponValue *float64
	if o.Coupon != nil {
		couponCode = &o.Coupon.Code
		couponType = &o.Coupon.DiscountType
		couponValue = &o.Coupon.DiscountValue
	}

	_, err := tx.Exec(ctx,
		`INSERT INTO orders (id, order_number, customer_name, customer_email, customer_phone,
			ship_street, ship_city, ship_state, ship_zip, ship_country,
			subtotal, discount, tax, shipping_fee, total,
			payment_method, payment_status, status,
			coupon_code, coupon_discount_type, coupon_discount_value, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`,
		o.ID, o.OrderNumber, o.Customer.Name, o.Customer.Email, o.Customer.Phone,
		o.ShippingAddress.Street, o.ShippingAddress.City, o.ShippingAddress.State,
		o.ShippingAddress.Zip, o.ShippingAddress.Country,
		o.Subtotal, o.Discount, o.Tax, o.ShippingFee, o.Total,
		o.PaymentMethod, o.PaymentStatus, o.Status,
		couponCode, couponType, couponValue, o.Notes)
	if err != nil {
		if database.IsUniqueViolation(err, "orders_order_number_key") {
			return service.ErrOrderNumberConflict
		}
		return fmt.Errorf("insert order: %w", err)
	}

	for _, it := range o.Items {
		_, err := tx.Exec(ctx,
			`INSERT INTO order_items (order_id, product_id, name, unit_price, quantity)
			 VALUES ($1, $2, $3, $4, $5)`,
			o.ID, it.ProductID, it.Name, it.UnitPrice, it.Quantity)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// CountPlacedBetween counts orders created inside [from, to). The order
// workflow uses it for the daily sequence in order numbers.
func (r *OrderRepository) CountPlacedBetween(ctx context.Context, tx database.TxQuerier, from, to time.Time) (int, error) {
	var n int
	err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE created_at >= $1 AND created_at < $2`,
		from, to).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}

func (r *OrderRepository) loadItems(ctx context.Context, q database.TxQuerier, orderID uuid.UUID) ([]model.OrderItem, error) {
	rows, err := q.Query(ctx,
		`SELECT product_id, name, unit_price, quantity FROM order_items WHERE order_id = $1`,
		orderID)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}
	defer rows.Close()

	items := []model.OrderItem{}
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ProductID, &it.Name, &it.UnitPrice, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order item rows: %w", err)
	}
	return items, nil
}

// GetByID retrieves an order with its line items.
// Returns nil, nil if the order is not found (service layer handles this).
func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}
	if o.Items, err = r.loadItems(ctx, r.pool, id); err != nil {
		return nil, err
	}
	return o, nil
}

// GetForUpdate retrieves an order with a row lock and its line items.
// Status transitions read-modify-write the order, so the row stays locked
// until the transaction completes.
// Returns service.ErrOrderNotFound if the order doesn't exist.
func (r *OrderRepository) GetForUpdate(ctx context.Context, tx database.TxQuerier, id uuid.UUID) (*model.Order, error) {
	o, err := scanOrder(tx.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, service.ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order for update %s: %w", id, err)
	}
	if o.Items, err = r.loadItems(ctx, tx, id); err != nil {
		return nil, err
	}
	return o, nil
}

// List retrieves orders matching the filter, newest first. Line items are
// loaded per order; admin listings are small and paginated.
func (r *OrderRepository) List(ctx context.Context, f model.OrderFilter) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	args := []any{}
	if f.Status != nil {
		args = append(args, *f.Status)
		query += " WHERE status = $1"
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
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	for i := range orders {
		if orders[i].Items, err = r.loadItems(ctx, r.pool, orders[i].ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// UpdateStatus sets the fulfilment status of an order.
// Returns service.ErrOrderNotFound if the order doesn't exist.
func (r *OrderRepository) UpdateStatus(ctx context.Context, tx database.TxQuerier, id uuid.UUID, status model.OrderStatus) error {
	ct, err := tx.Exec(ctx,
		`UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`,
		id, status)
	if err != nil {
		return fmt.Errorf("update order status %s: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return service.ErrOrderNotFound
	}
	return nil
}

// Delete removes an order and its line items. Administrative override only;
// the normal flow never deletes orders.
// Returns service.ErrOrderNotFound if the order doesn't exist.
func (r *OrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, id); err != nil {
		return fmt.Errorf("delete order items %s: %w", id, err)
	}
	ct, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order %s: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return service.ErrOrderNotFound
	}
	return nil
}
