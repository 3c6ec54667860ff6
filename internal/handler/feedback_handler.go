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

// FeedbackServiceInterface defines the interface for feedback business logic.
type FeedbackServiceInterface interface {
	Create(ctx context.Context, req *model.CreateFeedbackRequest) (*model.Feedback, error)
	List(ctx context.Context) ([]model.Feedback, error)
	Resolve(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// FeedbackHandler handles HTTP requests for contact-form feedback.
type FeedbackHandler struct {
	service   FeedbackServiceInterface
	validator *validator.Validate
}

// NewFeedbackHandler creates a new FeedbackHandler with the given service and validator.
func NewFeedbackHandler(svc FeedbackServiceInterface, v *validator.Validate) *FeedbackHandler {
	return &FeedbackHandler{service: svc, validator: v}
}

// Create handles POST /api/feedback requests.
func (h *FeedbackHandler) Create(c *fiber.Ctx) error {
	var req model.CreateFeedbackRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	feedback, err := h.service.Create(c.Context(), &req)
	if err != nil {
		log.Error().Err(err).Msg("failed to create feedback")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.Status(fiber.StatusCreated).JSON(feedback)
}

// List handles GET /api/feedback requests (admin).
func (h *FeedbackHandler) List(c *fiber.Ctx) error {
	feedback, err := h.service.List(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list feedback")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(feedback)
}

// Resolve handles PUT /api/feedback/:id/resolve requests.
func (h *FeedbackHandler) Resolve(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid feedback id"})
	}

	if err := h.service.Resolve(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrFeedbackNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "feedback not found"})
		}
		log.Error().Err(err).Str("feedback_id", id.String()).Msg("failed to resolve feedback")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete handles DELETE /api/feedback/:id requests.
func (h *FeedbackHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid feedback id"})
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrFeedbackNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "feedback not found"})
		}
		log.Error().Err(err).Str("feedback_id", id.String()).Msg("failed to delete feedback")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
