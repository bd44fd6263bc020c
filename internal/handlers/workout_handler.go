package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/models"
	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/services"
)

type WorkoutServiceAPI interface {
	CreateWorkout(ctx context.Context, userID int64, input services.WorkoutInput) (*models.WorkoutDetail, error)
	GetWorkout(ctx context.Context, workoutID int64) (*models.WorkoutDetail, error)
	ListWorkouts(ctx context.Context, userID int64) ([]models.WorkoutDetail, error)
	UpdateWorkout(ctx context.Context, userID, workoutID int64, input services.WorkoutInput) (*models.WorkoutDetail, error)
	DeleteWorkout(ctx context.Context, userID, workoutID int64) error
}

type WorkoutHandler struct {
	service WorkoutServiceAPI
}

func NewWorkoutHandler(service WorkoutServiceAPI) *WorkoutHandler {
	return &WorkoutHandler{service: service}
}

func (h *WorkoutHandler) CreateWorkout(c *fiber.Ctx) error {
	userID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var input services.WorkoutInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	detail, err := h.service.CreateWorkout(c.Context(), userID, input)
	if err != nil {
		return mapWorkoutError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(detail)
}

func (h *WorkoutHandler) GetWorkout(c *fiber.Ctx) error {
	userID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	workoutID, err := c.ParamsInt("id")
	if err != nil || workoutID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid workout id"})
	}

	detail, err := h.service.GetWorkout(c.Context(), int64(workoutID))
	if err != nil {
		return mapWorkoutError(c, err)
	}

	// Clients see only their own log; the coach may open any client's.
	if detail.UserID != userID && !isCoach(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not allowed"})
	}

	return c.JSON(detail)
}

// ListWorkouts lists the caller's workouts. A coach may pass ?user_id= to
// read a client's log instead.
func (h *WorkoutHandler) ListWorkouts(c *fiber.Ctx) error {
	userID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	targetID := userID
	if raw := c.Query("user_id"); raw != "" {
		if !isCoach(c) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not allowed"})
		}
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
		}
		targetID = parsed
	}

	workouts, err := h.service.ListWorkouts(c.Context(), targetID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to list workouts"})
	}

	return c.JSON(fiber.Map{"workouts": workouts})
}

func (h *WorkoutHandler) UpdateWorkout(c *fiber.Ctx) error {
	userID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	workoutID, err := c.ParamsInt("id")
	if err != nil || workoutID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid workout id"})
	}

	var input services.WorkoutInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	detail, err := h.service.UpdateWorkout(c.Context(), userID, int64(workoutID), input)
	if err != nil {
		return mapWorkoutError(c, err)
	}

	return c.JSON(detail)
}

func (h *WorkoutHandler) DeleteWorkout(c *fiber.Ctx) error {
	userID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	workoutID, err := c.ParamsInt("id")
	if err != nil || workoutID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid workout id"})
	}

	if err := h.service.DeleteWorkout(c.Context(), userID, int64(workoutID)); err != nil {
		return mapWorkoutError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func mapWorkoutError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid workout details"})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not allowed"})
	case errors.Is(err, services.ErrWorkoutNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Workout not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process workout"})
	}
}
