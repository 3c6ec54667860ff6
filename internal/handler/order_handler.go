package handler

import (
	"context"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/shopkit-io/shopkit/internal/model"
	"github.com/shopkit-io/shopkit/internal/service"
)

// OrderServiceInterface defines the interface for the order workflow.
type OrderServiceInterface interface {
	Place(ctx context.Context, req *model.CreateOrderRequest) (*model.Order, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Order, error)
	List(ctx context.Context, f model.OrderFilter) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, next model.OrderStatus) (*model.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderHandler handles HTTP requests for orders. Per the storefront API
// contract, order endpoints report failures as {"message": ...}.
type OrderHandler struct {
	service   OrderServiceInterface
	validator *validator.Validate
}

// NewOrderHandler creates a new OrderHandler with the given service and validator.
func NewOrderHandler(svc OrderServiceInterface, v *validator.Validate) *OrderHandler {
	return &OrderHandler{service: svc, validator: v}
}

func orderMessage(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"message": msg})
}

// Create handles POST /api/orders requests to place an order.
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var req model.CreateOrderRequest

	if err := c.BodyParser(&req); err != nil {
		return orderMessage(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return orderMessage(c, fiber.StatusBadRequest, formatValidationError(err))
	}

	order, err := h.service.Place(c.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			return orderMessage(c, fiber.StatusNotFound, "product not found")
		case errors.Is(err, service.ErrCouponNotFound):
			return orderMessage(c, fiber.StatusNotFound, "coupon not found")
		case errors.Is(err, service.ErrInsufficientStock):
			return orderMessage(c, fiber.StatusBadRequest, "insufficient stock")
		case errors.Is(err, service.ErrInvalidCoupon):
			return orderMessage(c, fiber.StatusBadRequest, "coupon is not valid")
		case errors.Is(err, service.ErrMinimumPurchaseNotMet):
			return orderMessage(c, fiber.StatusBadRequest, "minimum purchase amount not met")
		case errors.Is(err, service.ErrInvalidRequest):
			return orderMessage(c, fiber.StatusBadRequest, "invalid request")
		}
		log.Error().
			Err(err).
			Str("request_id", c.GetRespHeader("X-Request-ID")).
			Str("coupon_code", req.CouponCode).
			Int("items", len(req.Items)).
			Msg("failed to place order")
		return orderMessage(c, fiber.StatusInternalServerError, "internal server error")
	}

	log.Info().
		Str("request_id", c.GetRespHeader("X-Request-ID")).
		Str("order_number", order.OrderNumber).
		Msg("order placed")
	return c.Status(fiber.StatusCreated).JSON(order)
}

// List handles GET /api/orders requests. Supports ?status=, ?page=, ?perPage=.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var f model.OrderFilter
	if s := c.Query("status"); s != "" {
		status := model.OrderStatus(s)
		if !validOrderStatus(status) {
			return orderMessage(c, fiber.StatusBadRequest, "invalid status filter")
		}
		f.Status = &status
	}
	f.Page, _ = strconv.Atoi(c.Query("page", "1"))
	f.PerPage, _ = strconv.Atoi(c.Query("perPage", "20"))

	orders, err := h.service.List(c.Context(), f)
	if err != nil {
		log.Error().Err(err).Msg("failed to list orders")
		return orderMessage(c, fiber.StatusInternalServerError, "internal server error")
	}
	return c.JSON(orders)
}

// Get handles GET /api/orders/:id requests.
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return orderMessage(c, fiber.StatusBadRequest, "invalid order id")
	}

	order, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			return orderMessage(c, fiber.StatusNotFound, "order not found")
		}
		log.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return orderMessage(c, fiber.StatusInternalServerError, "internal server error")
	}
	return c.JSON(order)
}

// UpdateStatus handles PUT /api/orders/:id/status requests.
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return orderMessage(c, fiber.StatusBadRequest, "invalid order id")
	}

	var req model.UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return orderMessage(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return orderMessage(c, fiber.StatusBadRequest, formatValidationError(err))
	}

	order, err := h.service.UpdateStatus(c.Context(), id, model.OrderStatus(req.OrderStatus))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			return orderMessage(c, fiber.StatusNotFound, "order not found")
		case errors.Is(err, service.ErrInvalidStatusTransition):
			return orderMessage(c, fiber.StatusBadRequest, "invalid order status transition")
		}
		log.Error().Err(err).Str("order_id", id.String()).Msg("failed to update order status")
		return orderMessage(c, fiber.StatusInternalServerError, "internal server error")
	}
	return c.JSON(order)
}

// Delete handles DELETE /api/orders/:id requests (administrative override).
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return orderMessage(c, fiber.StatusBadRequest, "invalid order id")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			return orderMessage(c, fiber.StatusNotFound, "order not found")
		}
		log.Error().Err(err).Str("order_id", id.String()).Msg("failed to delete order")
		return orderMessage(c, fiber.StatusInternalServerError, "internal server error")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func validOrderStatus(s model.OrderStatus) bool {
	switch s {
	case model.OrderPending, model.OrderProcessing, model.OrderShipped, model.OrderDelivered, model.OrderCancelled:
		return true
	}
	return false
}
