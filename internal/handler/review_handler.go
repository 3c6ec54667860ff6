package handler

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/shopkit-io/shopkit/internal/model"
	"github.com/shopkit-io/shopkit/internal/service"
)

// ReviewServiceInterface defines the interface for review business logic.
type ReviewServiceInterface interface {
	Create(ctx context.Context, req *model.CreateReviewRequest) (*model.Review, error)
	ListByProduct(ctx context.Context, productID uuid.UUID, includeUnapproved bool) ([]model.Review, error)
	Approve(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ReviewHandler handles HTTP requests for product reviews.
type ReviewHandler struct {
	service   ReviewServiceInterface
	validator *validator.Validate
}

// NewReviewHandler creates a new ReviewHandler with the given service and validator.
func NewReviewHandler(svc ReviewServiceInterface, v *validator.Validate) *ReviewHandler {
	return &ReviewHandler{service: svc, validator: v}
}

// Create handles POST /api/reviews requests.
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	var req model.CreateReviewRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	review, err := h.service.Create(c.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
		}
		if errors.Is(err, service.ErrInvalidRequest) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
		}
		log.Error().Err(err).Str("product_id", req.ProductID).Msg("failed to create review")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// ListByProduct handles GET /api/products/:id/reviews requests. The ?all=true
// query includes unapproved reviews (admin view).
func (h *ReviewHandler) ListByProduct(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}

	reviews, err := h.service.ListByProduct(c.Context(), id, c.QueryBool("all"))
	if err != nil {
		log.Error().Err(err).Str("product_id", id.String()).Msg("failed to list reviews")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(reviews)
}

// Approve handles PUT /api/reviews/:id/approve requests.
func (h *ReviewHandler) Approve(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid review id"})
	}

	if err := h.service.Approve(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "review not found"})
		}
		log.Error().Err(err).Str("review_id", id.String()).Msg("failed to approve review")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete handles DELETE /api/reviews/:id requests.
func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid review id"})
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "review not found"})
		}
		log.Error().Err(err).Str("review_id", id.String()).Msg("failed to delete review")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
