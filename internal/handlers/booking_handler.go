package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/models"
	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/services"
)

type BookingServiceAPI interface {
	CreateBooking(ctx context.Context, userID int64, input services.CreateBookingInput) (*models.Booking, error)
	CancelOwnBooking(ctx context.Context, userID, bookingID int64) (*models.Booking, error)
	ListBookings(ctx context.Context, userID int64) ([]models.Booking, error)
	ListOpenSlots(ctx context.Context, fromDate time.Time) ([]models.SlotDay, error)
}

type BookingHandler struct {
	service BookingServiceAPI
}

func NewBookingHandler(service BookingServiceAPI) *BookingHandler {
	return &BookingHandler{service: service}
}

type createBookingRequest struct {
	SlotID      int64   `json:"slot_id"`
	SessionType string  `json:"session_type"`
	Notes       *string `json:"notes"`
}

func (h *BookingHandler) CreateBooking(c *fiber.Ctx) error {
	userID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	booking, err := h.service.CreateBooking(c.Context(), userID, services.CreateBookingInput{
		SlotID:      req.SlotID,
		SessionType: req.SessionType,
		Notes:       req.Notes,
	})
	if err != nil {
		return mapBookingError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(booking)
}

func (h *BookingHandler) CancelBooking(c *fiber.Ctx) error {
	userID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	bookingID, err := c.ParamsInt("id")
	if err != nil || bookingID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	booking, err := h.service.CancelOwnBooking(c.Context(), userID, int64(bookingID))
	if err != nil {
		return mapBookingError(c, err)
	}

	return c.JSON(booking)
}

func (h *BookingHandler) ListBookings(c *fiber.Ctx) error {
	userID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	bookings, err := h.service.ListBookings(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to list bookings"})
	}

	return c.JSON(fiber.Map{"bookings": bookings})
}

// ListOpenSlots powers the booking form's date-then-time picker. Past days
// never show up.
func (h *BookingHandler) ListOpenSlots(c *fiber.Ctx) error {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	days, err := h.service.ListOpenSlots(c.Context(), today)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to list available slots"})
	}

	return c.JSON(fiber.Map{"days": days})
}

func (h *BookingHandler) SessionTypes(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"session_types": services.SessionTypes})
}

func mapBookingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking details"})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not allowed"})
	case errors.Is(err, services.ErrSlotNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Slot not found"})
	case errors.Is(err, services.ErrSlotTaken):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Slot is already booked"})
	case errors.Is(err, services.ErrInvalidStatus):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Unknown booking status"})
	case errors.Is(err, services.ErrInvalidStateTransition):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Booking cannot change to that status"})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process booking"})
	}
}
