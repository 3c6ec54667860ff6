package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopkit-io/shopkit/internal/model"
	"github.com/shopkit-io/shopkit/internal/service"
)

func TestCouponRepository_Insert_Success(t *testing.T) {
	var capturedSQL string
	var capturedArgs []any
	mock := &mockPool{
		execFn: func(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
			capturedSQL = sql
			capturedArgs = arguments
			return pgconn.NewCommandTag("INSERT 0 1"), nil
		},
	}
	repo := NewCouponRepositoryWithPool(mock)

	c := &model.Coupon{
		ID:            uuid.New(),
		Code:          "SAVE10",
		DiscountType:  model.DiscountPercentage,
		DiscountValue: 10,
	}
	err := repo.Insert(context.Background(), c)

	require.NoError(t, err)
	assert.Contains(t, capturedSQL, "INSERT INTO coupons")
	assert.Equal(t, "SAVE10", capturedArgs[1])
	assert.Equal(t, model.DiscountPercentage, capturedArgs[2])
}

func TestCouponRepository_Insert_DuplicateCode(t *testing.T) {
	mock := &mockPool{
		execFn: func(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
			return pgconn.CommandTag{}, &pgconn.PgError{
				Code:    "23505",
				Message: "duplicate key value violates unique constraint",
			}
		},
	}
	repo := NewCouponRepositoryWithPool(mock)

	err := repo.Insert(context.Background(), &model.Coupon{ID: uuid.New(), Code: "SAVE10"})

	assert.ErrorIs(t, err, service.ErrCouponExists)
}

func TestCouponRepository_Insert_OtherPgError(t *testing.T) {
	mock := &mockPool{
		execFn: func(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
			return pgconn.CommandTag{}, &pgconn.PgError{
				Code:    "23502",
				Message: "null value in column violates not-null constraint",
			}
		},
	}
	repo := NewCouponRepositoryWithPool(mock)

	err := repo.Insert(context.Background(), &model.Coupon{ID: uuid.New(), Code: "SAVE10"})

	require.Error(t, err)
	assert.False(t, errors.Is(err, service.ErrCouponExists))
	assert.Contains(t, err.Error(), "insert coupon")
}

func TestCouponRepository_GetByCode_CaseInsensitive(t *testing.T) {
	var capturedSQL string
	mock := &mockPool{
		queryRowFn: func(ctx context.Context, sql string, args ...any) pgx.Row {
			capturedSQL = sql
			return noRows()
		},
	}
	repo := NewCouponRepositoryWithPool(mock)

	c, err := repo.GetByCode(context.Background(), "save10")

	require.NoError(t, err)
	assert.Nil(t, c)
	assert.Contains(t, capturedSQL, "upper(code) = upper($1)")
}

func TestCouponRepository_GetByCodeForUpdate_NotFound(t *testing.T) {
	var capturedSQL string
	mock := &mockPool{
		queryRowFn: func(ctx context.Context, sql string, args ...any) pgx.Row {
			capturedSQL = sql
			return noRows()
		},
	}
	repo := NewCouponRepositoryWithPool(mock)

	_, err := repo.GetByCodeForUpdate(context.Background(), mock, "GONE")

	assert.ErrorIs(t, err, service.ErrCouponNotFound)
	assert.Contains(t, capturedSQL, "FOR UPDATE")
}

func TestCouponRepository_IncrementUsage_Success(t *testing.T) {
	var capturedSQL string
	mock := &mockPool{
		execFn: func(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
			capturedSQL = sql
			return pgconn.NewCommandTag("UPDATE 1"), nil
		},
	}
	repo := NewCouponRepositoryWithPool(mock)

	err := repo.IncrementUsage(context.Background(), mock, uuid.New())

	require.NoError(t, err)
	assert.Contains(t, capturedSQL, "usage_count = usage_count + 1")
	assert.Contains(t, capturedSQL, "usage_count < usage_limit", "increment must be conditional on the limit")
}

func TestCouponRepository_IncrementUsage_LimitReached(t *testing.T) {
	mock := &mockPool{
		execFn: func(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
			return pgconn.NewCommandTag("UPDATE 0"), nil
		},
	}
	repo := NewCouponRepositoryWithPool(mock)

	err := repo.IncrementUsage(context.Background(), mock, uuid.New())

	assert.ErrorIs(t, err, service.ErrInvalidCoupon)
}

func TestCouponRepository_Delete_NotFound(t *testing.T) {
	mock := &mockPool{
		execFn: func(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
			return pgconn.NewCommandTag("DELETE 0"), nil
		},
	}
	repo := NewCouponRepositoryWithPool(mock)

	err := repo.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, service.ErrCouponNotFound)
}
