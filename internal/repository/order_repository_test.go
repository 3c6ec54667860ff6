package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopkit-io/shopkit/internal/model"
	"github.com/shopkit-io/shopkit/internal/service"
)

func sampleOrder() *model.Order {
	return &model.Order{
		ID:          uuid.New(),
		OrderNumber: "ORD-250615-0001",
		Customer:    model.CustomerInfo{Name: "Ada Lovelace", Email: "ada@example.com"},
		ShippingAddress: model.ShippingAddress{
			Street: "12 Analytical Way", City: "London", State: "LDN", Zip: "E1 6AN", Country: "UK",
		},
		Items: []model.OrderItem{
			{ProductID: uuid.New(), Name: "Widget", UnitPrice: 10, Quantity: 2},
			{ProductID: uuid.New(), Name: "Gadget", UnitPrice: 5, Quantity: 1},
		},
		Subtotal: 25, ShippingFee: 5, Total: 30,
		PaymentMethod: model.PaymentCOD,
		PaymentStatus: model.PaymentPending,
		Status:        model.OrderPending,
	}
}

func TestOrderRepository_Insert_Success(t *testing.T) {
	var capturedSQL []string
	mock := &mockPool{
		execFn: func(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
			capturedSQL = append(capturedSQL, sql)
			return pgconn.NewCommandTag("INSERT 0 1"), nil
		},
	}
	repo := NewOrderRepositoryWithPool(mock)

	err := repo.Insert(context.Background(), mock, sampleOrder())

	require.NoError(t, err)
	require.Len(t, capturedSQL, 3, "one order insert plus one per line item")
	assert.Contains(t, capturedSQL[0], "INSERT INTO orders")
	assert.Contains(t, capturedSQL[1], "INSERT INTO order_items")
	assert.Contains(t, capturedSQL[2], "INSERT INTO order_items")
}

func TestOrderRepository_Insert_OrderNumberConflict(t *testing.T) {
	mock := &mockPool{
		execFn: func(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
			return pgconn.CommandTag{}, &pgconn.PgError{
				Code:           "23505",
				ConstraintName: "orders_order_number_key",
			}
		},
	}
	repo := NewOrderRepositoryWithPool(mock)

	err := repo.Insert(context.Background(), mock, sampleOrder())

	assert.ErrorIs(t, err, service.ErrOrderNumberConflict)
}

func TestOrderRepository_Insert_OtherUniqueViolation(t *testing.T) {
	mock := &mockPool{
		execFn: func(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
			return pgconn.CommandTag{}, &pgconn.PgError{
				Code:           "23505",
				ConstraintName: "orders_pkey",
			}
		},
	}
	repo := NewOrderRepositoryWithPool(mock)

	err := repo.Insert(context.Background(), mock, sampleOrder())

	require.Error(t, err)
	assert.False(t, errors.Is(err, service.ErrOrderNumberConflict),
		"only the order number index maps to the conflict sentinel")
}

func TestOrderRepository_CountPlacedBetween(t *testing.T) {
	var capturedArgs []any
	mock := &mockPool{
		queryRowFn: func(ctx context.Context, sql string, args ...any) pgx.Row {
			capturedArgs = args
			return &mockRow{scanFn: func(dest ...any) error {
				*(dest[0].(*int)) = 17
				return nil
			}}
		},
	}
	repo := NewOrderRepositoryWithPool(mock)

	from := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)
	n, err := repo.CountPlacedBetween(context.Background(), mock, from, to)

	require.NoError(t, err)
	assert.Equal(t, 17, n)
	assert.Equal(t, from, capturedArgs[0])
	assert.Equal(t, to, capturedArgs[1])
}

func TestOrderRepository_GetForUpdate_NotFound(t *testing.T) {
	var capturedSQL string
	mock := &mockPool{
		queryRowFn: func(ctx context.Context, sql string, args ...any) pgx.Row {
			capturedSQL = sql
			return noRows()
		},
	}
	repo := NewOrderRepositoryWithPool(mock)

	_, err := repo.GetForUpdate(context.Background(), mock, uuid.New())

	assert.ErrorIs(t, err, service.ErrOrderNotFound)
	assert.Contains(t, capturedSQL, "FOR UPDATE")
}

func TestOrderRepository_UpdateStatus_NotFound(t *testing.T) {
	mock := &mockPool{
		execFn: func(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
			return pgconn.NewCommandTag("UPDATE 0"), nil
		},
	}
	repo := NewOrderRepositoryWithPool(mock)

	err := repo.UpdateStatus(context.Background(), mock, uuid.New(), model.OrderShipped)

	assert.ErrorIs(t, err, service.ErrOrderNotFound)
}

func TestOrderRepository_Delete_RemovesItemsFirst(t *testing.T) {
	var capturedSQL []string
	mock := &mockPool{
		execFn: func(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
			capturedSQL = append(capturedSQL, sql)
			return pgconn.NewCommandTag("DELETE 1"), nil
		},
	}
	repo := NewOrderRepositoryWithPool(mock)

	err := repo.Delete(context.Background(), uuid.New())

	require.NoError(t, err)
	require.Len(t, capturedSQL, 2)
	assert.Contains(t, capturedSQL[0], "DELETE FROM order_items")
	assert.Contains(t, capturedSQL[1], "DELETE FROM orders")
}

func TestOrderRepository_Delete_NotFound(t *testing.T) {
	calls := 0
	mock := &mockPool{
		execFn: func(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
			calls++
			return pgconn.NewCommandTag("DELETE 0"), nil
		},
	}
	repo := NewOrderRepositoryWithPool(mock)

	err := repo.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, service.ErrOrderNotFound)
	assert.Equal(t, 2, calls)
}
