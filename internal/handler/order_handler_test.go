package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopkit-io/shopkit/internal/model"
	"github.com/shopkit-io/shopkit/internal/service"
	"github.com/shopkit-io/shopkit/internal/validator"
)

// mockOrderService is a mock implementation of OrderServiceInterface.
type mockOrderService struct {
	placeFn        func(ctx context.Context, req *model.CreateOrderRequest) (*model.Order, error)
	getFn          func(ctx context.Context, id uuid.UUID) (*model.Order, error)
	listFn         func(ctx context.Context, f model.OrderFilter) ([]model.Order, error)
	updateStatusFn func(ctx context.Context, id uuid.UUID, next model.OrderStatus) (*model.Order, error)
	deleteFn       func(ctx context.Context, id uuid.UUID) error
}

func (m *mockOrderService) Place(ctx context.Context, req *model.CreateOrderRequest) (*model.Order, error) {
	if m.placeFn != nil {
		return m.placeFn(ctx, req)
	}
	return &model.Order{}, nil
}

func (m *mockOrderService) Get(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, service.ErrOrderNotFound
}

func (m *mockOrderService) List(ctx context.Context, f model.OrderFilter) ([]model.Order, error) {
	if m.listFn != nil {
		return m.listFn(ctx, f)
	}
	return []model.Order{}, nil
}

func (m *mockOrderService) UpdateStatus(ctx context.Context, id uuid.UUID, next model.OrderStatus) (*model.Order, error) {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, next)
	}
	return nil, service.ErrOrderNotFound
}

func (m *mockOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func setupOrderApp(mockSvc *mockOrderService) *fiber.App {
	app := fiber.New()
	h := NewOrderHandler(mockSvc, validator.New())
	app.Post("/api/orders", h.Create)
	app.Get("/api/orders", h.List)
	app.Get("/api/orders/:id", h.Get)
	app.Put("/api/orders/:id/status", h.UpdateStatus)
	app.Delete("/api/orders/:id", h.Delete)
	return app
}

func orderBody(productID string) string {
	return fmt.Sprintf(`{
		"customerInfo": {"name": "Ada Lovelace", "email": "ada@example.com"},
		"items": [{"productId": %q, "quantity": 2}],
		"shippingAddress": {"street": "12 Analytical Way", "city": "London", "state": "LDN", "zip": "E1 6AN", "country": "UK"},
		"paymentMethod": "cod"
	}`, productID)
}

func TestCreateOrder_Success(t *testing.T) {
	mockSvc := &mockOrderService{
		placeFn: func(ctx context.Context, req *model.CreateOrderRequest) (*model.Order, error) {
			return &model.Order{
				ID:          uuid.New(),
				OrderNumber: "ORD-250615-0001",
				Subtotal:    20, ShippingFee: 5, Total: 25,
				Status: model.OrderPending,
			}, nil
		},
	}
	app := setupOrderApp(mockSvc)

	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBufferString(orderBody(uuid.NewString())))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var result model.Order
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "ORD-250615-0001", result.OrderNumber)
	assert.InDelta(t, 25.0, result.Total, 1e-9)
}

func TestCreateOrder_EmptyItems(t *testing.T) {
	app := setupOrderApp(&mockOrderService{
		placeFn: func(ctx context.Context, req *model.CreateOrderRequest) (*model.Order, error) {
			t.Fatal("service must not be called on validation failure")
			return nil, nil
		},
	})

	body := `{
		"customerInfo": {"name": "Ada Lovelace", "email": "ada@example.com"},
		"items": [],
		"shippingAddress": {"street": "12 Analytical Way", "city": "London", "state": "LDN", "zip": "E1 6AN", "country": "UK"},
		"paymentMethod": "cod"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateOrder_InsufficientStock(t *testing.T) {
	mockSvc := &mockOrderService{
		placeFn: func(ctx context.Context, req *model.CreateOrderRequest) (*model.Order, error) {
			return nil, service.ErrInsufficientStock
		},
	}
	app := setupOrderApp(mockSvc)

	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBufferString(orderBody(uuid.NewString())))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var result map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "insufficient stock", result["message"])
}

func TestCreateOrder_ProductNotFound(t *testing.T) {
	mockSvc := &mockOrderService{
		placeFn: func(ctx context.Context, req *model.CreateOrderRequest) (*model.Order, error) {
			return nil, service.ErrProductNotFound
		},
	}
	app := setupOrderApp(mockSvc)

	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBufferString(orderBody(uuid.NewString())))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var result map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "product not found", result["message"])
}

func TestCreateOrder_MinimumPurchaseNotMet(t *testing.T) {
	mockSvc := &mockOrderService{
		placeFn: func(ctx context.Context, req *model.CreateOrderRequest) (*model.Order, error) {
			return nil, service.ErrMinimumPurchaseNotMet
		},
	}
	app := setupOrderApp(mockSvc)

	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBufferString(orderBody(uuid.NewString())))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var result map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "minimum purchase amount not met", result["message"])
}

func TestGetOrder_NotFound(t *testing.T) {
	app := setupOrderApp(&mockOrderService{})

	req := httptest.NewRequest(http.MethodGet, "/api/orders/"+uuid.NewString(), nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetOrder_BadID(t *testing.T) {
	app := setupOrderApp(&mockOrderService{})

	req := httptest.NewRequest(http.MethodGet, "/api/orders/not-a-uuid", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestListOrders_StatusFilter(t *testing.T) {
	var gotFilter model.OrderFilter
	mockSvc := &mockOrderService{
		listFn: func(ctx context.Context, f model.OrderFilter) ([]model.Order, error) {
			gotFilter = f
			return []model.Order{{OrderNumber: "ORD-250615-0001", Status: model.OrderShipped}}, nil
		},
	}
	app := setupOrderApp(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/api/orders?status=shipped&page=2&perPage=10", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotNil(t, gotFilter.Status)
	assert.Equal(t, model.OrderShipped, *gotFilter.Status)
	assert.Equal(t, 2, gotFilter.Page)
	assert.Equal(t, 10, gotFilter.PerPage)
}

func TestListOrders_InvalidStatusFilter(t *testing.T) {
	app := setupOrderApp(&mockOrderService{})

	req := httptest.NewRequest(http.MethodGet, "/api/orders?status=bogus", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUpdateOrderStatus_Success(t *testing.T) {
	orderID := uuid.New()
	mockSvc := &mockOrderService{
		updateStatusFn: func(ctx context.Context, id uuid.UUID, next model.OrderStatus) (*model.Order, error) {
			assert.Equal(t, orderID, id)
			assert.Equal(t, model.OrderProcessing, next)
			return &model.Order{ID: orderID, Status: next}, nil
		},
	}
	app := setupOrderApp(mockSvc)

	body := `{"orderStatus": "processing"}`
	req := httptest.NewRequest(http.MethodPut, "/api/orders/"+orderID.String()+"/status", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result model.Order
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, model.OrderProcessing, result.Status)
}

func TestUpdateOrderStatus_InvalidTransition(t *testing.T) {
	mockSvc := &mockOrderService{
		updateStatusFn: func(ctx context.Context, id uuid.UUID, next model.OrderStatus) (*model.Order, error) {
			return nil, service.ErrInvalidStatusTransition
		},
	}
	app := setupOrderApp(mockSvc)

	body := `{"orderStatus": "cancelled"}`
	req := httptest.NewRequest(http.MethodPut, "/api/orders/"+uuid.NewString()+"/status", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var result map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "invalid order status transition", result["message"])
}

func TestUpdateOrderStatus_UnknownStatus(t *testing.T) {
	app := setupOrderApp(&mockOrderService{
		updateStatusFn: func(ctx context.Context, id uuid.UUID, next model.OrderStatus) (*model.Order, error) {
			t.Fatal("service must not be called for an unknown status")
			return nil, nil
		},
	})

	body := `{"orderStatus": "teleported"}`
	req := httptest.NewRequest(http.MethodPut, "/api/orders/"+uuid.NewString()+"/status", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestDeleteOrder_Success(t *testing.T) {
	deleted := false
	mockSvc := &mockOrderService{
		deleteFn: func(ctx context.Context, id uuid.UUID) error {
			deleted = true
			return nil
		},
	}
	app := setupOrderApp(mockSvc)

	req := httptest.NewRequest(http.MethodDelete, "/api/orders/"+uuid.NewString(), nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.True(t, deleted)
}
