package models

import "time"

type ProgressRecord struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"user_id"`
	RecordDate        time.Time `json:"record_date"`
	WeightKG          *float64  `json:"weight_kg,omitempty"`
	BodyFatPercentage *float64  `json:"body_fat_percentage,omitempty"`
	MuscleMassKG      *float64  `json:"muscle_mass_kg,omitempty"`
	Notes             *string   `json:"notes,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// Engagement tracks per-user logins. The streak columns are maintained by a
// database trigger on last_login updates, never written by the application.
type Engagement struct {
	UserID        int64     `json:"user_id"`
	LastLogin     time.Time `json:"last_login"`
	CurrentStreak int       `json:"current_streak"`
	LongestStreak int       `json:"longest_streak"`
	UpdatedAt     time.Time `json:"updated_at"`
}
