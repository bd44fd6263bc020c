package models

import "time"

type Broadcast struct {
	ID      int64     `json:"id"`
	CoachID int64     `json:"coach_id"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	SentAt  time.Time `json:"sent_at"`
}

type BroadcastDetail struct {
	Broadcast
	CoachName *string `json:"coach_name,omitempty"`
}

type ContactMessage struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
