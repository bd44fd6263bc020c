package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/models"
	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/repository"
)

var ErrProgressNotFound = errors.New("progress record not found")

type ProgressInput struct {
	RecordDate        string   `json:"record_date"`
	WeightKG          *float64 `json:"weight_kg"`
	BodyFatPercentage *float64 `json:"body_fat_percentage"`
	MuscleMassKG      *float64 `json:"muscle_mass_kg"`
	Notes             *string  `json:"notes"`
}

type ProgressService struct {
	progressRepo *repository.ProgressRepository
}

func NewProgressService(progressRepo *repository.ProgressRepository) *ProgressService {
	return &ProgressService{progressRepo: progressRepo}
}

// CreateRecord stores a body measurement snapshot. At least one metric must
// be present, an empty row tells the client nothing.
func (s *ProgressService) CreateRecord(ctx context.Context, userID int64, input ProgressInput) (*models.ProgressRecord, error) {
	date, err := time.Parse("2006-01-02", input.RecordDate)
	if err != nil {
		return nil, ErrInvalidInput
	}
	if input.WeightKG == nil && input.BodyFatPercentage == nil && input.MuscleMassKG == nil {
		return nil, ErrInvalidInput
	}
	if invalidMeasurement(input.WeightKG) || invalidMeasurement(input.MuscleMassKG) {
		return nil, ErrInvalidInput
	}
	if input.BodyFatPercentage != nil && (*input.BodyFatPercentage <= 0 || *input.BodyFatPercentage >= 100) {
		return nil, ErrInvalidInput
	}

	return s.progressRepo.Create(ctx, repository.CreateProgressInput{
		UserID:            userID,
		RecordDate:        date,
		WeightKG:          input.WeightKG,
		BodyFatPercentage: input.BodyFatPercentage,
		MuscleMassKG:      input.MuscleMassKG,
		Notes:             input.Notes,
	})
}

// ListRecords returns the user's records oldest first, ready for charting.
func (s *ProgressService) ListRecords(ctx context.Context, userID int64) ([]models.ProgressRecord, error) {
	return s.progressRepo.ListByUserID(ctx, userID)
}

func (s *ProgressService) DeleteRecord(ctx context.Context, userID, recordID int64) error {
	record, err := s.progressRepo.GetByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrProgressNotFound
		}
		return err
	}
	if record.UserID != userID {
		return ErrForbidden
	}
	return s.progressRepo.Delete(ctx, recordID)
}

func invalidMeasurement(value *float64) bool {
	return value != nil && *value <= 0
}
