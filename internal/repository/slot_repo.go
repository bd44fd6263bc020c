package repository

import (
	"context"
	"time"

	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/models"
)

type SlotRepository struct {
	db DBTX
}

func NewSlotRepository(db DBTX) *SlotRepository {
	return &SlotRepository{db: db}
}

func (r *SlotRepository) Create(ctx context.Context, slotDate time.Time, slotTime string) (*models.AvailableSlot, error) {
	query := `
		INSERT INTO available_slots (slot_date, slot_time, is_booked)
		VALUES ($1, $2, FALSE)
		RETURNING id, slot_date, slot_time, is_booked, created_at
	`
	var slot models.AvailableSlot
	err := r.db.QueryRow(ctx, query, slotDate, slotTime).Scan(
		&slot.ID,
		&slot.SlotDate,
		&slot.SlotTime,
		&slot.IsBooked,
		&slot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *SlotRepository) GetByID(ctx context.Context, slotID int64) (*models.AvailableSlot, error) {
	query := `
		SELECT id, slot_date, slot_time, is_booked, created_at
		FROM available_slots
		WHERE id = $1
	`
	var slot models.AvailableSlot
	err := r.db.QueryRow(ctx, query, slotID).Scan(
		&slot.ID,
		&slot.SlotDate,
		&slot.SlotTime,
		&slot.IsBooked,
		&slot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *SlotRepository) ListOpen(ctx context.Context, fromDate time.Time) ([]models.AvailableSlot, error) {
	query := `
		SELECT id, slot_date, slot_time, is_booked, created_at
		FROM available_slots
		WHERE is_booked = FALSE AND slot_date >= $1
		ORDER BY slot_date ASC, slot_time ASC
	`
	return r.scanSlots(ctx, query, fromDate)
}

func (r *SlotRepository) ListAll(ctx context.Context) ([]models.AvailableSlot, error) {
	query := `
		SELECT id, slot_date, slot_time, is_booked, created_at
		FROM available_slots
		ORDER BY slot_date ASC, slot_time ASC
	`
	return r.scanSlots(ctx, query)
}

// MarkBooked claims an open slot. Reports false when the slot was already
// booked or does not exist, so two clients racing for the same slot cannot
// both win.
func (r *SlotRepository) MarkBooked(ctx context.Context, slotID int64) (bool, error) {
	query := `
		UPDATE available_slots
		SET is_booked = TRUE
		WHERE id = $1 AND is_booked = FALSE
	`
	tag, err := r.db.Exec(ctx, query, slotID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *SlotRepository) MarkUnbooked(ctx context.Context, slotID int64) error {
	query := `
		UPDATE available_slots
		SET is_booked = FALSE
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query, slotID)
	return err
}

// Delete removes an open slot. A booked slot is left alone so existing
// bookings keep a valid reference; reports whether a row was removed.
func (r *SlotRepository) Delete(ctx context.Context, slotID int64) (bool, error) {
	query := `DELETE FROM available_slots WHERE id = $1 AND is_booked = FALSE`
	tag, err := r.db.Exec(ctx, query, slotID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *SlotRepository) scanSlots(ctx context.Context, query string, args ...any) ([]models.AvailableSlot, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := make([]models.AvailableSlot, 0)
	for rows.Next() {
		var slot models.AvailableSlot
		if err := rows.Scan(
			&slot.ID,
			&slot.SlotDate,
			&slot.SlotTime,
			&slot.IsBooked,
			&slot.CreatedAt,
		); err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return slots, nil
}
