package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/models"
	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/repository"
)

var (
	ErrForbidden              = errors.New("forbidden")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInvalidStatus          = errors.New("invalid status")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrSlotNotFound           = errors.New("slot not found")
	ErrSlotTaken              = errors.New("slot already booked")
	ErrDuplicateSlot          = errors.New("slot already exists")
)

// SessionTypes are the coaching products offered on the booking form.
var SessionTypes = []string{
	"1-on-1 Training",
	"Nutrition Consultation",
	"Progress Review",
	"Goal Setting",
}

type BookingService struct {
	db          *pgxpool.Pool
	bookingRepo *repository.BookingRepository
	slotRepo    *repository.SlotRepository
}

func NewBookingService(
	db *pgxpool.Pool,
	bookingRepo *repository.BookingRepository,
	slotRepo *repository.SlotRepository,
) *BookingService {
	return &BookingService{
		db:          db,
		bookingRepo: bookingRepo,
		slotRepo:    slotRepo,
	}
}

type CreateBookingInput struct {
	SlotID      int64
	SessionType string
	Notes       *string
}

// CreateBooking claims the slot and inserts the pending booking in one
// transaction. When two clients race for a slot, the compare-and-swap on
// is_booked lets exactly one of them through.
func (s *BookingService) CreateBooking(ctx context.Context, userID int64, input CreateBookingInput) (*models.Booking, error) {
	if input.SlotID <= 0 || !isSessionType(input.SessionType) {
		return nil, ErrInvalidInput
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txSlotRepo := repository.NewSlotRepository(tx)
	txBookingRepo := repository.NewBookingRepository(tx)

	slot, err := txSlotRepo.GetByID(ctx, input.SlotID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}

	claimed, err := txSlotRepo.MarkBooked(ctx, slot.ID)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, ErrSlotTaken
	}

	booking, err := txBookingRepo.Create(ctx, repository.CreateBookingInput{
		UserID:      userID,
		SlotID:      slot.ID,
		SessionType: input.SessionType,
		SessionDate: slot.SlotDate,
		SessionTime: slot.SlotTime,
		Notes:       input.Notes,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return booking, nil
}

// CancelOwnBooking lets a client withdraw a booking that the coach has not
// acted on yet. The slot is released in the same transaction.
func (s *BookingService) CancelOwnBooking(ctx context.Context, userID, bookingID int64) (*models.Booking, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txBookingRepo := repository.NewBookingRepository(tx)
	txSlotRepo := repository.NewSlotRepository(tx)

	booking, err := txBookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrForbidden
	}
	if booking.Status != "pending" {
		return nil, ErrInvalidStateTransition
	}

	cancelled, err := txBookingRepo.UpdateStatusIfCurrent(ctx, bookingID, "pending", "cancelled")
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidStateTransition
		}
		return nil, err
	}

	if err := txSlotRepo.MarkUnbooked(ctx, booking.SlotID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return cancelled, nil
}

// UpdateStatus applies a coach-side transition. Cancelling frees the slot in
// the same transaction so it reappears in the open-slot pickers.
func (s *BookingService) UpdateStatus(ctx context.Context, bookingID int64, requestedStatus string) (*models.Booking, error) {
	nextStatus, err := normalizeRequestedStatus(requestedStatus)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txBookingRepo := repository.NewBookingRepository(tx)
	txSlotRepo := repository.NewSlotRepository(tx)

	booking, err := txBookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := validateStatusTransition(booking.Status, nextStatus); err != nil {
		return nil, err
	}

	updated, err := txBookingRepo.UpdateStatusIfCurrent(ctx, bookingID, booking.Status, nextStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidStateTransition
		}
		return nil, err
	}

	if nextStatus == "cancelled" {
		if err := txSlotRepo.MarkUnbooked(ctx, booking.SlotID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *BookingService) ListBookings(ctx context.Context, userID int64) ([]models.Booking, error) {
	return s.bookingRepo.ListByUserID(ctx, userID)
}

func (s *BookingService) ListAllBookings(ctx context.Context, page, limit int) ([]models.BookingDetail, int, error) {
	return s.bookingRepo.ListAllWithClients(ctx, page, limit)
}

// ListOpenSlots returns unbooked future slots grouped per day for the
// date-then-time picker.
func (s *BookingService) ListOpenSlots(ctx context.Context, fromDate time.Time) ([]models.SlotDay, error) {
	slots, err := s.slotRepo.ListOpen(ctx, fromDate)
	if err != nil {
		return nil, err
	}
	return groupSlotsByDay(slots), nil
}

func (s *BookingService) ListAllSlots(ctx context.Context) ([]models.AvailableSlot, error) {
	return s.slotRepo.ListAll(ctx)
}

func (s *BookingService) AddSlot(ctx context.Context, slotDate time.Time, slotTime string) (*models.AvailableSlot, error) {
	if _, err := time.Parse("15:04", slotTime); err != nil {
		return nil, ErrInvalidInput
	}

	slot, err := s.slotRepo.Create(ctx, slotDate, slotTime)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateSlot
		}
		return nil, err
	}
	return slot, nil
}

func (s *BookingService) DeleteSlot(ctx context.Context, slotID int64) error {
	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrSlotNotFound
		}
		return err
	}
	if slot.IsBooked {
		return ErrSlotTaken
	}

	deleted, err := s.slotRepo.Delete(ctx, slotID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrSlotTaken
	}
	return nil
}

func isSessionType(sessionType string) bool {
	for _, known := range SessionTypes {
		if sessionType == known {
			return true
		}
	}
	return false
}

func normalizeRequestedStatus(status string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "confirm", "confirmed":
		return "confirmed", nil
	case "cancel", "cancelled", "canceled":
		return "cancelled", nil
	default:
		return "", ErrInvalidStatus
	}
}

func validateStatusTransition(currentStatus, nextStatus string) error {
	switch nextStatus {
	case "confirmed":
		if currentStatus != "pending" {
			return ErrInvalidStateTransition
		}
	case "cancelled":
		if currentStatus == "cancelled" {
			return ErrInvalidStateTransition
		}
	default:
		return ErrInvalidStatus
	}
	return nil
}

func groupSlotsByDay(slots []models.AvailableSlot) []models.SlotDay {
	days := make([]models.SlotDay, 0)
	for _, slot := range slots {
		if n := len(days); n > 0 && days[n-1].Date.Equal(slot.SlotDate) {
			days[n-1].Slots = append(days[n-1].Slots, slot)
			continue
		}
		days = append(days, models.SlotDay{Date: slot.SlotDate, Slots: []models.AvailableSlot{slot}})
	}
	return days
}
