package handler

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/shopkit-io/shopkit/internal/model"
)

// SettingsServiceInterface defines the interface for shop settings.
type SettingsServiceInterface interface {
	Pricing(ctx context.Context) (model.Settings, error)
	Update(ctx context.Context, req *model.UpdateSettingsRequest) (model.Settings, error)
}

// SettingsHandler handles HTTP requests for shop settings.
type SettingsHandler struct {
	service   SettingsServiceInterface
	validator *validator.Validate
}

// NewSettingsHandler creates a new SettingsHandler with the given service and validator.
func NewSettingsHandler(svc SettingsServiceInterface, v *validator.Validate) *SettingsHandler {
	return &SettingsHandler{service: svc, validator: v}
}

// Get handles GET /api/settings requests.
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	settings, err := h.service.Pricing(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to load settings")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(settings)
}

// Update handles PUT /api/settings requests.
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var req model.UpdateSettingsRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	settings, err := h.service.Update(c.Context(), &req)
	if err != nil {
		log.Error().Err(err).Msg("failed to update settings")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(settings)
}
