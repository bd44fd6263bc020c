package services

import (
	"context"
	"fmt"
	"html"
	"log"
	"strings"

	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/models"
	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/repository"
)

const broadcastListLimit = 20

type BroadcastInput struct {
	Title        string  `json:"title"`
	Message      string  `json:"message"`
	RecipientIDs []int64 `json:"recipient_ids"`
}

type BroadcastService struct {
	broadcastRepo *repository.BroadcastRepository
	profileRepo   *repository.ProfileRepository
	emailService  EmailService
}

func NewBroadcastService(
	broadcastRepo *repository.BroadcastRepository,
	profileRepo *repository.ProfileRepository,
	emailService EmailService,
) *BroadcastService {
	return &BroadcastService{
		broadcastRepo: broadcastRepo,
		profileRepo:   profileRepo,
		emailService:  emailService,
	}
}

// SendBroadcast stores the announcement and emails it out. The recipient
// list only narrows email delivery; the stored row is visible to every
// client regardless. An empty list means email everyone.
func (s *BroadcastService) SendBroadcast(ctx context.Context, coachID int64, input BroadcastInput) (*models.Broadcast, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Message = strings.TrimSpace(input.Message)
	if input.Title == "" || input.Message == "" {
		return nil, ErrInvalidInput
	}

	broadcast, err := s.broadcastRepo.Create(ctx, coachID, input.Title, input.Message)
	if err != nil {
		return nil, err
	}

	clients, err := s.profileRepo.ListClients(ctx)
	if err != nil {
		return nil, err
	}

	recipients := selectRecipients(clients, input.RecipientIDs)
	if len(recipients) == 0 {
		return broadcast, nil
	}

	coachName := "Your Coach"
	if coach, err := s.profileRepo.GetByUserID(ctx, coachID); err == nil {
		coachName = coach.FullName
	}

	msgs := make([]EmailMessage, 0, len(recipients))
	for _, client := range recipients {
		msgs = append(msgs, EmailMessage{
			To:      []string{client.Email},
			Subject: input.Title,
			HTML:    broadcastEmailHTML(coachName, input.Title, input.Message),
		})
	}

	// The announcement is already stored, so a delivery failure is logged
	// rather than surfaced as a request error.
	if err := s.emailService.SendBatch(ctx, msgs); err != nil {
		log.Printf("broadcast %d: email delivery failed: %v", broadcast.ID, err)
	}

	return broadcast, nil
}

func (s *BroadcastService) ListBroadcasts(ctx context.Context) ([]models.BroadcastDetail, error) {
	return s.broadcastRepo.List(ctx, broadcastListLimit)
}

// selectRecipients filters the client roster down to the requested IDs. IDs
// that do not belong to a client are ignored.
func selectRecipients(clients []models.Profile, recipientIDs []int64) []models.Profile {
	if len(recipientIDs) == 0 {
		return clients
	}
	wanted := make(map[int64]bool, len(recipientIDs))
	for _, id := range recipientIDs {
		wanted[id] = true
	}
	selected := make([]models.Profile, 0, len(recipientIDs))
	for _, client := range clients {
		if wanted[client.UserID] {
			selected = append(selected, client)
		}
	}
	return selected
}

func broadcastEmailHTML(coachName, title, message string) string {
	paragraphs := strings.Split(html.EscapeString(message), "\n")
	return fmt.Sprintf(
		`<h2>%s</h2><p>%s</p><p style="color:#666">Sent by %s via Elite Fitness Coaching</p>`,
		html.EscapeString(title),
		strings.Join(paragraphs, "<br>"),
		html.EscapeString(coachName),
	)
}
