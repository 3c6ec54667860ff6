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

// mockRow implements pgx.Row for testing single-row queries.
type mockRow struct {
	scanFn func(dest ...any) error
}

func (m *mockRow) Scan(dest ...any) error {
	if m.scanFn != nil {
		return m.scanFn(dest...)
	}
	return nil
}

// mockRows implements pgx.Rows for testing multi-row queries. Each entry in
// scans fills the dest slice for one row.
type mockRows struct {
	scans []func(dest ...any) error
	pos   int
}

func (m *mockRows) Close() {}

func (m *mockRows) Err() error { return nil }

func (m *mockRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }

func (m *mockRows) FieldDescriptions() []pgconn.FieldDescription { return nil }

func (m *mockRows) Values() ([]any, error) { return nil, nil }

func (m *mockRows) RawValues() [][]byte { return nil }

func (m *mockRows) Conn() *pgx.Conn { return nil }

func (m *mockRows) Next() bool {
	return m.pos < len(m.scans)
}

func (m *mockRows) Scan(dest ...any) error {
	fn := m.scans[m.pos]
	m.pos++
	return fn(dest...)
}

// mockPool implements PoolInterface for testing.
type mockPool struct {
	execFn     func(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	queryRowFn func(ctx context.Context, sql string, args ...any) pgx.Row
	queryFn    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (m *mockPool) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	if m.execFn != nil {
		return m.execFn(ctx, sql, arguments...)
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (m *mockPool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if m.queryRowFn != nil {
		return m.queryRowFn(ctx, sql, args...)
	}
	return &mockRow{}
}

func (m *mockPool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if m.queryFn != nil {
		return m.queryFn(ctx, sql, args...)
	}
	return &mockRows{}, nil
}

func noRows() *mockRow {
	return &mockRow{scanFn: func(dest ...any) error { return pgx.ErrNoRows }}
}

func TestProductRepository_DecrementStock_Success(t *testing.T) {
	var capturedSQL string
	var capturedArgs []any
	mock := &mockPool{
		execFn: func(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
			capturedSQL = sql
			capturedArgs = arguments
			return pgconn.NewCommandTag("UPDATE 1"), nil
		},
	}
	repo := NewProductRepositoryWithPool(mock)

	id := uuid.New()
	err := repo.DecrementStock(context.Background(), mock, id, 3)

	require.NoError(t, err)
	assert.Contains(t, capturedSQL, "stock = stock - $2")
	assert.Contains(t, capturedSQL, "stock >= $2", "decrement must be conditional on available stock")
	assert.Equal(t, id, capturedArgs[0])
	assert.Equal(t, 3, capturedArgs[1])
}

func TestProductRepository_DecrementStock_Insufficient(t *testing.T) {
	mock := &mockPool{
		execFn: func(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
			return pgconn.NewCommandTag("UPDATE 0"), nil
		},
	}
	repo := NewProductRepositoryWithPool(mock)

	err := repo.DecrementStock(context.Background(), mock, uuid.New(), 5)

	assert.ErrorIs(t, err, service.ErrInsufficientStock)
}

func TestProductRepository_RestoreStock(t *testing.T) {
	var capturedSQL string
	mock := &mockPool{
		execFn: func(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
			capturedSQL = sql
			return pgconn.NewCommandTag("UPDATE 1"), nil
		},
	}
	repo := NewProductRepositoryWithPool(mock)

	err := repo.RestoreStock(context.Background(), mock, uuid.New(), 2)

	require.NoError(t, err)
	assert.Contains(t, capturedSQL, "stock = stock + $2")
}

func TestProductRepository_GetByID_Success(t *testing.T) {
	id := uuid.New()
	categoryID := uuid.New()
	now := time.Now()
	mock := &mockPool{
		queryRowFn: func(ctx context.Context, sql string, args ...any) pgx.Row {
			return &mockRow{scanFn: func(dest ...any) error {
				*(dest[0].(*uuid.UUID)) = id
				*(dest[1].(*string)) = "Widget"
				*(dest[2].(*string)) = "A widget"
				*(dest[3].(*float64)) = 9.99
				*(dest[4].(**float64)) = nil
				*(dest[5].(*int)) = 20
				*(dest[6].(*uuid.UUID)) = categoryID
				*(dest[7].(*string)) = ""
				*(dest[8].(*bool)) = true
				*(dest[9].(*time.Time)) = now
				*(dest[10].(*time.Time)) = now
				return nil
			}}
		},
	}
	repo := NewProductRepositoryWithPool(mock)

	p, err := repo.GetByID(context.Background(), id)

	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Widget", p.Name)
	assert.InDelta(t, 9.99, p.Price, 1e-9)
	assert.Nil(t, p.SalePrice)
	assert.Equal(t, 20, p.Stock)
}

func TestProductRepository_GetByID_NotFound(t *testing.T) {
	mock := &mockPool{
		queryRowFn: func(ctx context.Context, sql string, args ...any) pgx.Row {
			return noRows()
		},
	}
	repo := NewProductRepositoryWithPool(mock)

	p, err := repo.GetByID(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Nil(t, p, "not found is nil, nil on plain gets")
}

func TestProductRepository_GetForUpdate_NotFound(t *testing.T) {
	var capturedSQL string
	mock := &mockPool{
		queryRowFn: func(ctx context.Context, sql string, args ...any) pgx.Row {
			capturedSQL = sql
			return noRows()
		},
	}
	repo := NewProductRepositoryWithPool(mock)

	_, err := repo.GetForUpdate(context.Background(), mock, uuid.New())

	assert.ErrorIs(t, err, service.ErrProductNotFound)
	assert.Contains(t, capturedSQL, "FOR UPDATE")
}

func TestProductRepository_Update_NotFound(t *testing.T) {
	mock := &mockPool{
		execFn: func(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
			return pgconn.NewCommandTag("UPDATE 0"), nil
		},
	}
	repo := NewProductRepositoryWithPool(mock)

	err := repo.Update(context.Background(), &model.Product{ID: uuid.New()})

	assert.ErrorIs(t, err, service.ErrProductNotFound)
}

func TestProductRepository_Insert_DatabaseError(t *testing.T) {
	dbErr := errors.New("connection refused")
	mock := &mockPool{
		execFn: func(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
			return pgconn.CommandTag{}, dbErr
		},
	}
	repo := NewProductRepositoryWithPool(mock)

	err := repo.Insert(context.Background(), &model.Product{ID: uuid.New(), Name: "Widget"})

	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	assert.Contains(t, err.Error(), "insert product")
}
