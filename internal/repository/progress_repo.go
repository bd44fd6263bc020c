package repository

import (
	"context"
	"time"

	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/models"
)

type CreateProgressInput struct {
	UserID            int64
	RecordDate        time.Time
	WeightKG          *float64
	BodyFatPercentage *float64
	MuscleMassKG      *float64
	Notes             *string
}

type ProgressRepository struct {
	db DBTX
}

func NewProgressRepository(db DBTX) *ProgressRepository {
	return &ProgressRepository{db: db}
}

const progressColumns = `id, user_id, record_date, weight_kg, body_fat_percentage, muscle_mass_kg, notes, created_at`

func (r *ProgressRepository) Create(ctx context.Context, input CreateProgressInput) (*models.ProgressRecord, error) {
	query := `
		INSERT INTO progress (user_id, record_date, weight_kg, body_fat_percentage, muscle_mass_kg, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + progressColumns
	var record models.ProgressRecord
	err := r.db.QueryRow(
		ctx,
		query,
		input.UserID,
		input.RecordDate,
		input.WeightKG,
		input.BodyFatPercentage,
		input.MuscleMassKG,
		input.Notes,
	).Scan(
		&record.ID,
		&record.UserID,
		&record.RecordDate,
		&record.WeightKG,
		&record.BodyFatPercentage,
		&record.MuscleMassKG,
		&record.Notes,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *ProgressRepository) GetByID(ctx context.Context, recordID int64) (*models.ProgressRecord, error) {
	query := `
		SELECT ` + progressColumns + `
		FROM progress
		WHERE id = $1
	`
	var record models.ProgressRecord
	err := r.db.QueryRow(ctx, query, recordID).Scan(
		&record.ID,
		&record.UserID,
		&record.RecordDate,
		&record.WeightKG,
		&record.BodyFatPercentage,
		&record.MuscleMassKG,
		&record.Notes,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListByUserID returns the full history in record_date order, oldest first,
// the order trend charts consume.
func (r *ProgressRepository) ListByUserID(ctx context.Context, userID int64) ([]models.ProgressRecord, error) {
	query := `
		SELECT ` + progressColumns + `
		FROM progress
		WHERE user_id = $1
		ORDER BY record_date ASC, id ASC
	`
	return r.scanRecords(ctx, query, userID)
}

func (r *ProgressRepository) ListRecent(ctx context.Context, userID int64, limit int) ([]models.ProgressRecord, error) {
	query := `
		SELECT ` + progressColumns + `
		FROM progress
		WHERE user_id = $1
		ORDER BY record_date DESC, id DESC
		LIMIT $2
	`
	return r.scanRecords(ctx, query, userID, limit)
}

func (r *ProgressRepository) Delete(ctx context.Context, recordID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM progress WHERE id = $1`, recordID)
	return err
}

func (r *ProgressRepository) scanRecords(ctx context.Context, query string, args ...any) ([]models.ProgressRecord, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]models.ProgressRecord, 0)
	for rows.Next() {
		var record models.ProgressRecord
		if err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.RecordDate,
			&record.WeightKG,
			&record.BodyFatPercentage,
			&record.MuscleMassKG,
			&record.Notes,
			&record.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
