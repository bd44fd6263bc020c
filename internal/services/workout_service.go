package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/models"
	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/repository"
)

var ErrWorkoutNotFound = errors.New("workout not found")

type ExerciseInput struct {
	ExerciseName string   `json:"exercise_name"`
	Sets         int      `json:"sets"`
	Reps         int      `json:"reps"`
	WeightKG     *float64 `json:"weight_kg"`
}

type WorkoutInput struct {
	WorkoutName     string          `json:"workout_name"`
	WorkoutDate     string          `json:"workout_date"`
	DurationMinutes int             `json:"duration_minutes"`
	Notes           *string         `json:"notes"`
	Exercises       []ExerciseInput `json:"exercises"`
}

type WorkoutService struct {
	db          *pgxpool.Pool
	workoutRepo *repository.WorkoutRepository
}

func NewWorkoutService(db *pgxpool.Pool, workoutRepo *repository.WorkoutRepository) *WorkoutService {
	return &WorkoutService{db: db, workoutRepo: workoutRepo}
}

// CreateWorkout inserts a workout and its exercises in one transaction so a
// failed exercise insert never leaves a half-written workout behind.
func (s *WorkoutService) CreateWorkout(ctx context.Context, userID int64, input WorkoutInput) (*models.WorkoutDetail, error) {
	date, err := validateWorkoutInput(&input)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	txRepo := repository.NewWorkoutRepository(tx)
	workout, err := txRepo.Create(ctx, repository.CreateWorkoutInput{
		UserID:          userID,
		WorkoutName:     input.WorkoutName,
		WorkoutDate:     date,
		DurationMinutes: input.DurationMinutes,
		Notes:           input.Notes,
	})
	if err != nil {
		return nil, err
	}

	exercises, err := txRepo.ReplaceExercises(ctx, workout.ID, exerciseInputs(input.Exercises))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &models.WorkoutDetail{Workout: *workout, Exercises: exercises}, nil
}

// GetWorkout loads a workout regardless of owner. Callers decide whether the
// viewer may see it; coaches can read any client's log.
func (s *WorkoutService) GetWorkout(ctx context.Context, workoutID int64) (*models.WorkoutDetail, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}

	exercisesByWorkout, err := s.workoutRepo.ListExercisesByWorkoutIDs(ctx, []int64{workout.ID})
	if err != nil {
		return nil, err
	}

	detail := &models.WorkoutDetail{Workout: *workout, Exercises: exercisesByWorkout[workout.ID]}
	if detail.Exercises == nil {
		detail.Exercises = []models.Exercise{}
	}
	return detail, nil
}

// ListWorkouts returns the user's workouts newest first, each with its
// exercises attached. Exercises for the whole list come back in one query.
func (s *WorkoutService) ListWorkouts(ctx context.Context, userID int64) ([]models.WorkoutDetail, error) {
	workouts, err := s.workoutRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(workouts))
	for _, workout := range workouts {
		ids = append(ids, workout.ID)
	}

	exercisesByWorkout := map[int64][]models.Exercise{}
	if len(ids) > 0 {
		exercisesByWorkout, err = s.workoutRepo.ListExercisesByWorkoutIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	details := make([]models.WorkoutDetail, 0, len(workouts))
	for _, workout := range workouts {
		exercises := exercisesByWorkout[workout.ID]
		if exercises == nil {
			exercises = []models.Exercise{}
		}
		details = append(details, models.WorkoutDetail{Workout: workout, Exercises: exercises})
	}
	return details, nil
}

// UpdateWorkout rewrites the workout row and replaces its exercise list
// wholesale inside one transaction.
func (s *WorkoutService) UpdateWorkout(ctx context.Context, userID, workoutID int64, input WorkoutInput) (*models.WorkoutDetail, error) {
	date, err := validateWorkoutInput(&input)
	if err != nil {
		return nil, err
	}

	existing, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if existing.UserID != userID {
		return nil, ErrForbidden
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	txRepo := repository.NewWorkoutRepository(tx)
	workout, err := txRepo.Update(ctx, workoutID, repository.UpdateWorkoutInput{
		WorkoutName:     input.WorkoutName,
		WorkoutDate:     date,
		DurationMinutes: input.DurationMinutes,
		Notes:           input.Notes,
	})
	if err != nil {
		return nil, err
	}

	exercises, err := txRepo.ReplaceExercises(ctx, workoutID, exerciseInputs(input.Exercises))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &models.WorkoutDetail{Workout: *workout, Exercises: exercises}, nil
}

func (s *WorkoutService) DeleteWorkout(ctx context.Context, userID, workoutID int64) error {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrWorkoutNotFound
		}
		return err
	}
	if workout.UserID != userID {
		return ErrForbidden
	}
	return s.workoutRepo.Delete(ctx, workoutID)
}

func validateWorkoutInput(input *WorkoutInput) (time.Time, error) {
	input.WorkoutName = strings.TrimSpace(input.WorkoutName)
	if input.WorkoutName == "" {
		return time.Time{}, ErrInvalidInput
	}
	date, err := time.Parse("2006-01-02", input.WorkoutDate)
	if err != nil {
		return time.Time{}, ErrInvalidInput
	}
	if input.DurationMinutes < 0 {
		return time.Time{}, ErrInvalidInput
	}
	for i := range input.Exercises {
		input.Exercises[i].ExerciseName = strings.TrimSpace(input.Exercises[i].ExerciseName)
		if input.Exercises[i].ExerciseName == "" {
			return time.Time{}, ErrInvalidInput
		}
		if input.Exercises[i].Sets < 0 || input.Exercises[i].Reps < 0 {
			return time.Time{}, ErrInvalidInput
		}
	}
	return date, nil
}

func exerciseInputs(inputs []ExerciseInput) []repository.ExerciseInput {
	out := make([]repository.ExerciseInput, 0, len(inputs))
	for _, input := range inputs {
		out = append(out, repository.ExerciseInput{
			ExerciseName: input.ExerciseName,
			Sets:         input.Sets,
			Reps:         input.Reps,
			WeightKG:     input.WeightKG,
		})
	}
	return out
}
