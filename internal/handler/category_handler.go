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

// CategoryServiceInterface defines the interface for category business logic.
type CategoryServiceInterface interface {
	Create(ctx context.Context, req *model.CreateCategoryRequest) (*model.Category, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateCategoryRequest) (*model.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryHandler handles HTTP requests for category operations.
type CategoryHandler struct {
	service   CategoryServiceInterface
	validator *validator.Validate
}

// NewCategoryHandler creates a new CategoryHandler with the given service and validator.
func NewCategoryHandler(svc CategoryServiceInterface, v *validator.Validate) *CategoryHandler {
	return &CategoryHandler{service: svc, validator: v}
}

// Create handles POST /api/categories requests.
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var req model.CreateCategoryRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	category, err := h.service.Create(c.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrCategoryExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "category already exists"})
		}
		log.Error().Err(err).Str("slug", req.Slug).Msg("failed to create category")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// List handles GET /api/categories requests.
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	categories, err := h.service.List(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list categories")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(categories)
}

// Get handles GET /api/categories/:id requests.
func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid category id"})
	}

	category, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "category not found"})
		}
		log.Error().Err(err).Str("category_id", id.String()).Msg("failed to get category")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(category)
}

// Update handles PUT /api/categories/:id requests.
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid category id"})
	}

	var req model.UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	category, err := h.service.Update(c.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "category not found"})
		case errors.Is(err, service.ErrCategoryExists):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "category already exists"})
		}
		log.Error().Err(err).Str("category_id", id.String()).Msg("failed to update category")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(category)
}

// Delete handles DELETE /api/categories/:id requests.
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid category id"})
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "category not found"})
		}
		log.Error().Err(err).Str("category_id", id.String()).Msg("failed to delete category")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
