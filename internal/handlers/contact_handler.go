package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/models"
	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/services"
)

type ContactServiceAPI interface {
	SubmitMessage(ctx context.Context, input services.ContactInput) (*models.ContactMessage, error)
}

type ContactHandler struct {
	service ContactServiceAPI
}

func NewContactHandler(service ContactServiceAPI) *ContactHandler {
	return &ContactHandler{service: service}
}

// SubmitMessage receives the public contact form. No auth required.
func (h *ContactHandler) SubmitMessage(c *fiber.Ctx) error {
	var input services.ContactInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	message, err := h.service.SubmitMessage(c.Context(), input)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"error": "Name, a valid email, and a message are required"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to submit message"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Thanks for reaching out. We'll get back to you soon.",
		"id":      message.ID,
	})
}
