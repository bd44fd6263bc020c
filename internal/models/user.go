package models

import "time"

type User struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type EmailVerification struct {
	Token      string     `json:"token"`
	UserID     int64      `json:"user_id"`
	ExpiresAt  time.Time  `json:"expires_at"`
	ConsumedAt *time.Time `json:"consumed_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ClientOverview is a roster row on the coach's client list, a profile with
// its engagement attached when one exists.
type ClientOverview struct {
	Profile
	Engagement *Engagement `json:"engagement,omitempty"`
}

type Profile struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Phone     *string   `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
