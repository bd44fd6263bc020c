package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/models"
)

type StatsServiceAPI interface {
	ClientStats(ctx context.Context, userID int64) (*models.ClientStats, error)
	CoachStats(ctx context.Context) (*models.CoachStats, error)
}

type StatsHandler struct {
	service StatsServiceAPI
}

func NewStatsHandler(service StatsServiceAPI) *StatsHandler {
	return &StatsHandler{service: service}
}

// ClientStats serves the client dashboard cards. Fetching it also counts as
// a login for streak purposes.
func (h *StatsHandler) ClientStats(c *fiber.Ctx) error {
	userID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	stats, err := h.service.ClientStats(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to load dashboard stats"})
	}

	return c.JSON(stats)
}

func (h *StatsHandler) CoachStats(c *fiber.Ctx) error {
	if !isCoach(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Coach access required"})
	}

	stats, err := h.service.CoachStats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to load coach stats"})
	}

	return c.JSON(stats)
}
