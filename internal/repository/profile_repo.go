package repository

import (
	"context"

	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/models"
)

type CreateProfileInput struct {
	UserID   int64
	FullName string
	Email    string
	Role     string
	Phone    *string
}

type UpdateProfileInput struct {
	FullName *string
	Phone    *string
}

type ProfileRepository struct {
	db DBTX
}

func NewProfileRepository(db DBTX) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Create(ctx context.Context, input CreateProfileInput) (*models.Profile, error) {
	query := `
		INSERT INTO profiles (user_id, full_name, email, role, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, full_name, email, role, phone, created_at, updated_at
	`
	var profile models.Profile
	err := r.db.QueryRow(ctx, query, input.UserID, input.FullName, input.Email, input.Role, input.Phone).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.FullName,
		&profile.Email,
		&profile.Role,
		&profile.Phone,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	query := `
		SELECT id, user_id, full_name, email, role, phone, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`
	var profile models.Profile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.FullName,
		&profile.Email,
		&profile.Role,
		&profile.Phone,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) UpdatePartial(ctx context.Context, userID int64, input UpdateProfileInput) (*models.Profile, error) {
	query := `
		UPDATE profiles
		SET full_name = COALESCE($1, full_name),
			phone = COALESCE($2, phone),
			updated_at = NOW()
		WHERE user_id = $3
		RETURNING id, user_id, full_name, email, role, phone, created_at, updated_at
	`
	var profile models.Profile
	err := r.db.QueryRow(ctx, query, input.FullName, input.Phone, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.FullName,
		&profile.Email,
		&profile.Role,
		&profile.Phone,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListClients returns every non-coach profile ordered by name, used for
// broadcast recipient pickers and the coach's client roster.
func (r *ProfileRepository) ListClients(ctx context.Context) ([]models.Profile, error) {
	query := `
		SELECT id, user_id, full_name, email, role, phone, created_at, updated_at
		FROM profiles
		WHERE role <> 'coach'
		ORDER BY full_name ASC, id ASC
	`
	return r.scanProfiles(ctx, query)
}

func (r *ProfileRepository) CountClients(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM profiles WHERE role <> 'coach'`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ProfileRepository) scanProfiles(ctx context.Context, query string, args ...any) ([]models.Profile, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := make([]models.Profile, 0)
	for rows.Next() {
		var profile models.Profile
		if err := rows.Scan(
			&profile.ID,
			&profile.UserID,
			&profile.FullName,
			&profile.Email,
			&profile.Role,
			&profile.Phone,
			&profile.CreatedAt,
			&profile.UpdatedAt,
		); err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return profiles, nil
}
