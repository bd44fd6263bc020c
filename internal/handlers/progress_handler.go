package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/models"
	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/services"
)

type ProgressServiceAPI interface {
	CreateRecord(ctx context.Context, userID int64, input services.ProgressInput) (*models.ProgressRecord, error)
	ListRecords(ctx context.Context, userID int64) ([]models.ProgressRecord, error)
	DeleteRecord(ctx context.Context, userID, recordID int64) error
}

type ProgressHandler struct {
	service ProgressServiceAPI
}

func NewProgressHandler(service ProgressServiceAPI) *ProgressHandler {
	return &ProgressHandler{service: service}
}

func (h *ProgressHandler) CreateRecord(c *fiber.Ctx) error {
	userID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var input services.ProgressInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	record, err := h.service.CreateRecord(c.Context(), userID, input)
	if err != nil {
		return mapProgressError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

func (h *ProgressHandler) ListRecords(c *fiber.Ctx) error {
	userID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	records, err := h.service.ListRecords(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to list progress records"})
	}

	return c.JSON(fiber.Map{"records": records})
}

func (h *ProgressHandler) DeleteRecord(c *fiber.Ctx) error {
	userID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	recordID, err := c.ParamsInt("id")
	if err != nil || recordID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid record id"})
	}

	if err := h.service.DeleteRecord(c.Context(), userID, int64(recordID)); err != nil {
		return mapProgressError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func mapProgressError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid progress details"})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not allowed"})
	case errors.Is(err, services.ErrProgressNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Progress record not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process progress record"})
	}
}
