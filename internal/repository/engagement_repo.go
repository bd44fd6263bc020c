package repository

import (
	"context"

	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/models"
)

type EngagementRepository struct {
	db DBTX
}

func NewEngagementRepository(db DBTX) *EngagementRepository {
	return &EngagementRepository{db: db}
}

// TouchLogin upserts the user's engagement row with a fresh last_login.
// The streak columns are recomputed by a trigger on that update.
func (r *EngagementRepository) TouchLogin(ctx context.Context, userID int64) error {
	query := `
		INSERT INTO user_engagement (user_id, last_login, updated_at)
		VALUES ($1, NOW(), NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET last_login = NOW(), updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query, userID)
	return err
}

func (r *EngagementRepository) GetByUserID(ctx context.Context, userID int64) (*models.Engagement, error) {
	query := `
		SELECT user_id, last_login, current_streak, longest_streak, updated_at
		FROM user_engagement
		WHERE user_id = $1
	`
	var engagement models.Engagement
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&engagement.UserID,
		&engagement.LastLogin,
		&engagement.CurrentStreak,
		&engagement.LongestStreak,
		&engagement.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &engagement, nil
}

func (r *EngagementRepository) ListAll(ctx context.Context) ([]models.Engagement, error) {
	query := `
		SELECT user_id, last_login, current_streak, longest_streak, updated_at
		FROM user_engagement
		ORDER BY last_login ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	engagements := make([]models.Engagement, 0)
	for rows.Next() {
		var engagement models.Engagement
		if err := rows.Scan(
			&engagement.UserID,
			&engagement.LastLogin,
			&engagement.CurrentStreak,
			&engagement.LongestStreak,
			&engagement.UpdatedAt,
		); err != nil {
			return nil, err
		}
		engagements = append(engagements, engagement)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return engagements, nil
}
