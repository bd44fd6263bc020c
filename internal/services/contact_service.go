package services

import (
	"context"
	"strings"

	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/models"
	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/repository"
)

const contactListLimit = 100

// ContactInput accepts both the JSON API shape and the plain form post from
// the landing page.
type ContactInput struct {
	Name    string  `json:"name" form:"name"`
	Email   string  `json:"email" form:"email"`
	Phone   *string `json:"phone" form:"phone"`
	Message string  `json:"message" form:"message"`
}

type ContactService struct {
	contactRepo *repository.ContactRepository
}

func NewContactService(contactRepo *repository.ContactRepository) *ContactService {
	return &ContactService{contactRepo: contactRepo}
}

// SubmitMessage stores a public contact form submission. This is the one
// write endpoint that requires no account.
func (s *ContactService) SubmitMessage(ctx context.Context, input ContactInput) (*models.ContactMessage, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Message = strings.TrimSpace(input.Message)
	if input.Name == "" || input.Message == "" {
		return nil, ErrInvalidInput
	}
	if !strings.Contains(input.Email, "@") {
		return nil, ErrInvalidInput
	}

	return s.contactRepo.Create(ctx, repository.CreateContactMessageInput{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Message: input.Message,
	})
}

func (s *ContactService) ListMessages(ctx context.Context) ([]models.ContactMessage, error) {
	return s.contactRepo.List(ctx, contactListLimit)
}
