package repository

import (
	"context"
	"time"

	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/models"
)

type CreateBookingInput struct {
	UserID      int64
	SlotID      int64
	SessionType string
	SessionDate time.Time
	SessionTime string
	Notes       *string
}

type BookingRepository struct {
	db DBTX
}

func NewBookingRepository(db DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `id, user_id, slot_id, session_type, session_date, session_time, notes, status, created_at, updated_at`

func (r *BookingRepository) Create(ctx context.Context, input CreateBookingInput) (*models.Booking, error) {
	query := `
		INSERT INTO bookings (user_id, slot_id, session_type, session_date, session_time, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'pending')
		RETURNING ` + bookingColumns
	row := r.db.QueryRow(
		ctx,
		query,
		input.UserID,
		input.SlotID,
		input.SessionType,
		input.SessionDate,
		input.SessionTime,
		input.Notes,
	)
	return scanBooking(row)
}

func (r *BookingRepository) GetByID(ctx context.Context, bookingID int64) (*models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE id = $1
	`
	return scanBooking(r.db.QueryRow(ctx, query, bookingID))
}

func (r *BookingRepository) ListByUserID(ctx context.Context, userID int64) ([]models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY session_date ASC, session_time ASC, id ASC
	`
	return r.scanBookings(ctx, query, userID)
}

// NextConfirmed returns the earliest confirmed booking on or after fromDate,
// or pgx.ErrNoRows when none is scheduled.
func (r *BookingRepository) NextConfirmed(ctx context.Context, userID int64, fromDate time.Time) (*models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1 AND status = 'confirmed' AND session_date >= $2
		ORDER BY session_date ASC, session_time ASC
		LIMIT 1
	`
	return scanBooking(r.db.QueryRow(ctx, query, userID, fromDate))
}

// ListSince returns all bookings with session_date on or after the given day,
// regardless of owner; feeds the coach's weekly chart.
func (r *BookingRepository) ListSince(ctx context.Context, fromDate time.Time) ([]models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE session_date >= $1
		ORDER BY session_date ASC, session_time ASC, id ASC
	`
	return r.scanBookings(ctx, query, fromDate)
}

func (r *BookingRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *BookingRepository) UpdateStatusIfCurrent(ctx context.Context, bookingID int64, currentStatus, nextStatus string) (*models.Booking, error) {
	query := `
		UPDATE bookings
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING ` + bookingColumns
	return scanBooking(r.db.QueryRow(ctx, query, bookingID, currentStatus, nextStatus))
}

// ListAllWithClients joins each booking with its owner's profile for the
// coach admin panel, newest session first.
func (r *BookingRepository) ListAllWithClients(ctx context.Context, page, limit int) ([]models.BookingDetail, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT b.id, b.user_id, b.slot_id, b.session_type, b.session_date, b.session_time,
			   b.notes, b.status, b.created_at, b.updated_at, p.full_name, p.email
		FROM bookings b
		LEFT JOIN profiles p ON p.user_id = b.user_id
		ORDER BY b.session_date DESC, b.session_time DESC, b.id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	details := make([]models.BookingDetail, 0)
	for rows.Next() {
		var detail models.BookingDetail
		if err := rows.Scan(
			&detail.ID,
			&detail.UserID,
			&detail.SlotID,
			&detail.SessionType,
			&detail.SessionDate,
			&detail.SessionTime,
			&detail.Notes,
			&detail.Status,
			&detail.CreatedAt,
			&detail.UpdatedAt,
			&detail.ClientName,
			&detail.ClientEmail,
		); err != nil {
			return nil, 0, err
		}
		details = append(details, detail)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return details, total, nil
}

func (r *BookingRepository) scanBookings(ctx context.Context, query string, args ...any) ([]models.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]models.Booking, 0)
	for rows.Next() {
		var booking models.Booking
		if err := rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.SlotID,
			&booking.SessionType,
			&booking.SessionDate,
			&booking.SessionTime,
			&booking.Notes,
			&booking.Status,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		); err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bookings, nil
}

func scanBooking(row interface{ Scan(dest ...any) error }) (*models.Booking, error) {
	var booking models.Booking
	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.SlotID,
		&booking.SessionType,
		&booking.SessionDate,
		&booking.SessionTime,
		&booking.Notes,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}
