package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/models"
	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/services"
)

type BroadcastServiceAPI interface {
	SendBroadcast(ctx context.Context, coachID int64, input services.BroadcastInput) (*models.Broadcast, error)
	ListBroadcasts(ctx context.Context) ([]models.BroadcastDetail, error)
}

type BroadcastHandler struct {
	service BroadcastServiceAPI
}

func NewBroadcastHandler(service BroadcastServiceAPI) *BroadcastHandler {
	return &BroadcastHandler{service: service}
}

func (h *BroadcastHandler) SendBroadcast(c *fiber.Ctx) error {
	if !isCoach(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Coach access required"})
	}

	coachID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var input services.BroadcastInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	broadcast, err := h.service.SendBroadcast(c.Context(), coachID, input)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"error": "Title and message are required"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to send broadcast"})
	}

	return c.Status(fiber.StatusCreated).JSON(broadcast)
}

// ListBroadcasts is the client inbox. Every authenticated user sees the same
// feed; recipient selection only affected the original email delivery.
func (h *BroadcastHandler) ListBroadcasts(c *fiber.Ctx) error {
	broadcasts, err := h.service.ListBroadcasts(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to list broadcasts"})
	}

	return c.JSON(fiber.Map{"broadcasts": broadcasts})
}
