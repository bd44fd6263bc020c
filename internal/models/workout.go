package models

import "time"

type Workout struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	WorkoutName     string    `json:"workout_name"`
	WorkoutDate     time.Time `json:"workout_date"`
	DurationMinutes int       `json:"duration_minutes"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Exercise struct {
	ID           int64    `json:"id"`
	WorkoutID    int64    `json:"workout_id"`
	ExerciseName string   `json:"exercise_name"`
	Sets         int      `json:"sets"`
	Reps         int      `json:"reps"`
	WeightKG     *float64 `json:"weight_kg,omitempty"`
}

type WorkoutDetail struct {
	Workout
	Exercises []Exercise `json:"exercises"`
}
