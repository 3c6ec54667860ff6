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

// OfferServiceInterface defines the interface for offer business logic.
type OfferServiceInterface interface {
	Create(ctx context.Context, req *model.CreateOfferRequest) (*model.Offer, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Offer, error)
	List(ctx context.Context) ([]model.Offer, error)
	ListActive(ctx context.Context) ([]model.Offer, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateOfferRequest) (*model.Offer, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// OfferHandler handles HTTP requests for promotional offers.
type OfferHandler struct {
	service   OfferServiceInterface
	validator *validator.Validate
}

// NewOfferHandler creates a new OfferHandler with the given service and validator.
func NewOfferHandler(svc OfferServiceInterface, v *validator.Validate) *OfferHandler {
	return &OfferHandler{service: svc, validator: v}
}

// Create handles POST /api/offers requests.
func (h *OfferHandler) Create(c *fiber.Ctx) error {
	var req model.CreateOfferRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	offer, err := h.service.Create(c.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid offer window"})
		}
		log.Error().Err(err).Str("title", req.Title).Msg("failed to create offer")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.Status(fiber.StatusCreated).JSON(offer)
}

// List handles GET /api/offers requests.
func (h *OfferHandler) List(c *fiber.Ctx) error {
	offers, err := h.service.List(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list offers")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(offers)
}

// ListActive handles GET /api/offers/active requests from the storefront.
func (h *OfferHandler) ListActive(c *fiber.Ctx) error {
	offers, err := h.service.ListActive(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list active offers")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(offers)
}

// Get handles GET /api/offers/:id requests.
func (h *OfferHandler) Get(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid offer id"})
	}

	offer, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrOfferNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "offer not found"})
		}
		log.Error().Err(err).Str("offer_id", id.String()).Msg("failed to get offer")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(offer)
}

// Update handles PUT /api/offers/:id requests.
func (h *OfferHandler) Update(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid offer id"})
	}

	var req model.UpdateOfferRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	offer, err := h.service.Update(c.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOfferNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "offer not found"})
		case errors.Is(err, service.ErrInvalidRequest):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid offer window"})
		}
		log.Error().Err(err).Str("offer_id", id.String()).Msg("failed to update offer")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(offer)
}

// Delete handles DELETE /api/offers/:id requests.
func (h *OfferHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid offer id"})
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrOfferNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "offer not found"})
		}
		log.Error().Err(err).Str("offer_id", id.String()).Msg("failed to delete offer")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
