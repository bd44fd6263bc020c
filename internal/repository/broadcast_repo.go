package repository

import (
	"context"

	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/models"
)

type BroadcastRepository struct {
	db DBTX
}

func NewBroadcastRepository(db DBTX) *BroadcastRepository {
	return &BroadcastRepository{db: db}
}

func (r *BroadcastRepository) Create(ctx context.Context, coachID int64, title, message string) (*models.Broadcast, error) {
	query := `
		INSERT INTO broadcasts (coach_id, title, message)
		VALUES ($1, $2, $3)
		RETURNING id, coach_id, title, message, sent_at
	`
	var broadcast models.Broadcast
	err := r.db.QueryRow(ctx, query, coachID, title, message).Scan(
		&broadcast.ID,
		&broadcast.CoachID,
		&broadcast.Title,
		&broadcast.Message,
		&broadcast.SentAt,
	)
	if err != nil {
		return nil, err
	}
	return &broadcast, nil
}

// List returns the newest broadcasts with the sending coach's name attached.
// There is no per-recipient row: every client sees every broadcast.
func (r *BroadcastRepository) List(ctx context.Context, limit int) ([]models.BroadcastDetail, error) {
	query := `
		SELECT b.id, b.coach_id, b.title, b.message, b.sent_at, p.full_name
		FROM broadcasts b
		LEFT JOIN profiles p ON p.user_id = b.coach_id
		ORDER BY b.sent_at DESC, b.id DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	broadcasts := make([]models.BroadcastDetail, 0)
	for rows.Next() {
		var detail models.BroadcastDetail
		if err := rows.Scan(
			&detail.ID,
			&detail.CoachID,
			&detail.Title,
			&detail.Message,
			&detail.SentAt,
			&detail.CoachName,
		); err != nil {
			return nil, err
		}
		broadcasts = append(broadcasts, detail)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return broadcasts, nil
}
