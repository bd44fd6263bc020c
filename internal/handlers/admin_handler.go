package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/models"
	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/services"
)

type AdminBookingAPI interface {
	ListAllBookings(ctx context.Context, page, limit int) ([]models.BookingDetail, int, error)
	UpdateStatus(ctx context.Context, bookingID int64, requestedStatus string) (*models.Booking, error)
	ListAllSlots(ctx context.Context) ([]models.AvailableSlot, error)
	AddSlot(ctx context.Context, slotDate time.Time, slotTime string) (*models.AvailableSlot, error)
	DeleteSlot(ctx context.Context, slotID int64) error
}

type ClientDirectoryAPI interface {
	ListClients(ctx context.Context) ([]models.ClientOverview, error)
}

type ContactInboxAPI interface {
	ListMessages(ctx context.Context) ([]models.ContactMessage, error)
}

// AdminHandler backs the coach panel. Every route is gated on the JWT role;
// there is no secondary allow-list.
type AdminHandler struct {
	bookings AdminBookingAPI
	clients  ClientDirectoryAPI
	contact  ContactInboxAPI
}

func NewAdminHandler(bookings AdminBookingAPI, clients ClientDirectoryAPI, contact ContactInboxAPI) *AdminHandler {
	return &AdminHandler{bookings: bookings, clients: clients, contact: contact}
}

func coachAccessRequired(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Coach access required"})
}

func (h *AdminHandler) ListBookings(c *fiber.Ctx) error {
	if !isCoach(c) {
		return coachAccessRequired(c)
	}

	page, limit := parsePageQuery(c)

	bookings, total, err := h.bookings.ListAllBookings(c.Context(), page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to list bookings"})
	}

	return c.JSON(fiber.Map{
		"bookings":   bookings,
		"pagination": buildPaginationMeta(page, limit, total),
	})
}

type updateBookingStatusRequest struct {
	Status string `json:"status"`
}

func (h *AdminHandler) UpdateBookingStatus(c *fiber.Ctx) error {
	if !isCoach(c) {
		return coachAccessRequired(c)
	}

	bookingID, err := c.ParamsInt("id")
	if err != nil || bookingID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	var req updateBookingStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	booking, err := h.bookings.UpdateStatus(c.Context(), int64(bookingID), req.Status)
	if err != nil {
		return mapBookingError(c, err)
	}

	return c.JSON(booking)
}

func (h *AdminHandler) ListSlots(c *fiber.Ctx) error {
	if !isCoach(c) {
		return coachAccessRequired(c)
	}

	slots, err := h.bookings.ListAllSlots(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to list slots"})
	}

	return c.JSON(fiber.Map{"slots": slots})
}

type addSlotRequest struct {
	SlotDate string `json:"slot_date"`
	SlotTime string `json:"slot_time"`
}

func (h *AdminHandler) AddSlot(c *fiber.Ctx) error {
	if !isCoach(c) {
		return coachAccessRequired(c)
	}

	var req addSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	slotDate, err := time.Parse("2006-01-02", req.SlotDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid slot date"})
	}

	slot, err := h.bookings.AddSlot(c.Context(), slotDate, req.SlotTime)
	if err != nil {
		return mapSlotError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(slot)
}

func (h *AdminHandler) DeleteSlot(c *fiber.Ctx) error {
	if !isCoach(c) {
		return coachAccessRequired(c)
	}

	slotID, err := c.ParamsInt("id")
	if err != nil || slotID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid slot id"})
	}

	if err := h.bookings.DeleteSlot(c.Context(), int64(slotID)); err != nil {
		return mapSlotError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AdminHandler) ListClients(c *fiber.Ctx) error {
	if !isCoach(c) {
		return coachAccessRequired(c)
	}

	clients, err := h.clients.ListClients(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to list clients"})
	}

	return c.JSON(fiber.Map{"clients": clients})
}

func mapSlotError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid slot details"})
	case errors.Is(err, services.ErrDuplicateSlot):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Slot already exists"})
	case errors.Is(err, services.ErrSlotNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Slot not found"})
	case errors.Is(err, services.ErrSlotTaken):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Slot has a booking"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process slot"})
	}
}

func (h *AdminHandler) ListContactMessages(c *fiber.Ctx) error {
	if !isCoach(c) {
		return coachAccessRequired(c)
	}

	messages, err := h.contact.ListMessages(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to list contact messages"})
	}

	return c.JSON(fiber.Map{"messages": messages})
}
