package repository

import (
	"context"
	"time"

	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/models"
)

type VerificationRepository struct {
	db DBTX
}

func NewVerificationRepository(db DBTX) *VerificationRepository {
	return &VerificationRepository{db: db}
}

func (r *VerificationRepository) Create(ctx context.Context, token string, userID int64, expiresAt time.Time) (*models.EmailVerification, error) {
	query := `
		INSERT INTO email_verifications (token, user_id, expires_at)
		VALUES ($1, $2, $3)
		RETURNING token, user_id, expires_at, consumed_at, created_at
	`
	var verification models.EmailVerification
	err := r.db.QueryRow(ctx, query, token, userID, expiresAt).Scan(
		&verification.Token,
		&verification.UserID,
		&verification.ExpiresAt,
		&verification.ConsumedAt,
		&verification.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &verification, nil
}

// Consume marks an unused, unexpired token as spent and returns it. Expired
// or already-consumed tokens fall through to pgx.ErrNoRows.
func (r *VerificationRepository) Consume(ctx context.Context, token string) (*models.EmailVerification, error) {
	query := `
		UPDATE email_verifications
		SET consumed_at = NOW()
		WHERE token = $1 AND consumed_at IS NULL AND expires_at > NOW()
		RETURNING token, user_id, expires_at, consumed_at, created_at
	`
	var verification models.EmailVerification
	err := r.db.QueryRow(ctx, query, token).Scan(
		&verification.Token,
		&verification.UserID,
		&verification.ExpiresAt,
		&verification.ConsumedAt,
		&verification.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &verification, nil
}
