package repository

import (
	"context"

	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/models"
)

type CreateContactMessageInput struct {
	Name    string
	Email   string
	Phone   *string
	Message string
}

type ContactRepository struct {
	db DBTX
}

func NewContactRepository(db DBTX) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, input CreateContactMessageInput) (*models.ContactMessage, error) {
	query := `
		INSERT INTO contact_messages (name, email, phone, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, phone, message, created_at
	`
	var message models.ContactMessage
	err := r.db.QueryRow(ctx, query, input.Name, input.Email, input.Phone, input.Message).Scan(
		&message.ID,
		&message.Name,
		&message.Email,
		&message.Phone,
		&message.Message,
		&message.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *ContactRepository) List(ctx context.Context, limit int) ([]models.ContactMessage, error) {
	query := `
		SELECT id, name, email, phone, message, created_at
		FROM contact_messages
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]models.ContactMessage, 0)
	for rows.Next() {
		var message models.ContactMessage
		if err := rows.Scan(
			&message.ID,
			&message.Name,
			&message.Email,
			&message.Phone,
			&message.Message,
			&message.CreatedAt,
		); err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}
