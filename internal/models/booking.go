package models

import "time"

type AvailableSlot struct {
	ID        int64     `json:"id"`
	SlotDate  time.Time `json:"slot_date"`
	SlotTime  string    `json:"slot_time"`
	IsBooked  bool      `json:"is_booked"`
	CreatedAt time.Time `json:"created_at"`
}

// Booking references its slot by foreign key. The original product matched
// bookings to slots by (date, time) pair only, which allowed the two records
// to drift apart; the hard reference closes that gap.
type Booking struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	SlotID      int64     `json:"slot_id"`
	SessionType string    `json:"session_type"`
	SessionDate time.Time `json:"session_date"`
	SessionTime string    `json:"session_time"`
	Notes       *string   `json:"notes,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type BookingDetail struct {
	Booking
	ClientName  *string `json:"client_name,omitempty"`
	ClientEmail *string `json:"client_email,omitempty"`
}

// SlotDay groups the open times of a single calendar day for booking pickers.
type SlotDay struct {
	Date  time.Time       `json:"date"`
	Slots []AvailableSlot `json:"slots"`
}
