package repository

import (
	"context"
	"time"

	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/models"
)

type CreateWorkoutInput struct {
	UserID          int64
	WorkoutName     string
	WorkoutDate     time.Time
	DurationMinutes int
	Notes           *string
}

type UpdateWorkoutInput struct {
	WorkoutName     string
	WorkoutDate     time.Time
	DurationMinutes int
	Notes           *string
}

type ExerciseInput struct {
	ExerciseName string
	Sets         int
	Reps         int
	WeightKG     *float64
}

type WorkoutRepository struct {
	db DBTX
}

func NewWorkoutRepository(db DBTX) *WorkoutRepository {
	return &WorkoutRepository{db: db}
}

const workoutColumns = `id, user_id, workout_name, workout_date, duration_minutes, notes, created_at, updated_at`

func (r *WorkoutRepository) Create(ctx context.Context, input CreateWorkoutInput) (*models.Workout, error) {
	query := `
		INSERT INTO workouts (user_id, workout_name, workout_date, duration_minutes, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + workoutColumns
	row := r.db.QueryRow(ctx, query, input.UserID, input.WorkoutName, input.WorkoutDate, input.DurationMinutes, input.Notes)
	return scanWorkout(row)
}

func (r *WorkoutRepository) GetByID(ctx context.Context, workoutID int64) (*models.Workout, error) {
	query := `
		SELECT ` + workoutColumns + `
		FROM workouts
		WHERE id = $1
	`
	return scanWorkout(r.db.QueryRow(ctx, query, workoutID))
}

func (r *WorkoutRepository) ListByUserID(ctx context.Context, userID int64) ([]models.Workout, error) {
	query := `
		SELECT ` + workoutColumns + `
		FROM workouts
		WHERE user_id = $1
		ORDER BY workout_date DESC, id DESC
	`
	return r.scanWorkouts(ctx, query, userID)
}

// ListDatesSince returns the workout dates of one user from fromDate onward,
// the only column the weekly histogram needs.
func (r *WorkoutRepository) ListDatesSince(ctx context.Context, userID int64, fromDate time.Time) ([]time.Time, error) {
	query := `
		SELECT workout_date
		FROM workouts
		WHERE user_id = $1 AND workout_date >= $2
	`
	rows, err := r.db.Query(ctx, query, userID, fromDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dates := make([]time.Time, 0)
	for rows.Next() {
		var date time.Time
		if err := rows.Scan(&date); err != nil {
			return nil, err
		}
		dates = append(dates, date)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return dates, nil
}

func (r *WorkoutRepository) CountByUserID(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM workouts WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *WorkoutRepository) Update(ctx context.Context, workoutID int64, input UpdateWorkoutInput) (*models.Workout, error) {
	query := `
		UPDATE workouts
		SET workout_name = $2,
			workout_date = $3,
			duration_minutes = $4,
			notes = $5,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + workoutColumns
	row := r.db.QueryRow(ctx, query, workoutID, input.WorkoutName, input.WorkoutDate, input.DurationMinutes, input.Notes)
	return scanWorkout(row)
}

func (r *WorkoutRepository) Delete(ctx context.Context, workoutID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM workouts WHERE id = $1`, workoutID)
	return err
}

// ReplaceExercises swaps a workout's exercise rows wholesale. Edits are not
// diffed against the previous set; the caller runs this inside the workout's
// transaction.
func (r *WorkoutRepository) ReplaceExercises(ctx context.Context, workoutID int64, exercises []ExerciseInput) ([]models.Exercise, error) {
	if _, err := r.db.Exec(ctx, `DELETE FROM exercises WHERE workout_id = $1`, workoutID); err != nil {
		return nil, err
	}

	inserted := make([]models.Exercise, 0, len(exercises))
	query := `
		INSERT INTO exercises (workout_id, exercise_name, sets, reps, weight_kg)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, workout_id, exercise_name, sets, reps, weight_kg
	`
	for _, input := range exercises {
		var exercise models.Exercise
		err := r.db.QueryRow(ctx, query, workoutID, input.ExerciseName, input.Sets, input.Reps, input.WeightKG).Scan(
			&exercise.ID,
			&exercise.WorkoutID,
			&exercise.ExerciseName,
			&exercise.Sets,
			&exercise.Reps,
			&exercise.WeightKG,
		)
		if err != nil {
			return nil, err
		}
		inserted = append(inserted, exercise)
	}

	return inserted, nil
}

func (r *WorkoutRepository) ListExercisesByWorkoutIDs(ctx context.Context, workoutIDs []int64) (map[int64][]models.Exercise, error) {
	result := make(map[int64][]models.Exercise)
	if len(workoutIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT id, workout_id, exercise_name, sets, reps, weight_kg
		FROM exercises
		WHERE workout_id = ANY($1)
		ORDER BY workout_id ASC, id ASC
	`
	rows, err := r.db.Query(ctx, query, workoutIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var exercise models.Exercise
		if err := rows.Scan(
			&exercise.ID,
			&exercise.WorkoutID,
			&exercise.ExerciseName,
			&exercise.Sets,
			&exercise.Reps,
			&exercise.WeightKG,
		); err != nil {
			return nil, err
		}
		result[exercise.WorkoutID] = append(result[exercise.WorkoutID], exercise)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *WorkoutRepository) scanWorkouts(ctx context.Context, query string, args ...any) ([]models.Workout, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts := make([]models.Workout, 0)
	for rows.Next() {
		var workout models.Workout
		if err := rows.Scan(
			&workout.ID,
			&workout.UserID,
			&workout.WorkoutName,
			&workout.WorkoutDate,
			&workout.DurationMinutes,
			&workout.Notes,
			&workout.CreatedAt,
			&workout.UpdatedAt,
		); err != nil {
			return nil, err
		}
		workouts = append(workouts, workout)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return workouts, nil
}

func scanWorkout(row interface{ Scan(dest ...any) error }) (*models.Workout, error) {
	var workout models.Workout
	err := row.Scan(
		&workout.ID,
		&workout.UserID,
		&workout.WorkoutName,
		&workout.WorkoutDate,
		&workout.DurationMinutes,
		&workout.Notes,
		&workout.CreatedAt,
		&workout.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &workout, nil
}
