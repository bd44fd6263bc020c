package services

import (
	"context"
	"fmt"
	"log"

	"github.com/resend/resend-go/v2"
)

type EmailMessage struct {
	To      []string
	Subject string
	HTML    string
}

type EmailService interface {
	Send(ctx context.Context, msg EmailMessage) error
	SendBatch(ctx context.Context, msgs []EmailMessage) error
}

type ResendEmailService struct {
	client *resend.Client
	from   string
}

func NewResendEmailService(apiKey, from string) *ResendEmailService {
	return &ResendEmailService{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (s *ResendEmailService) Send(ctx context.Context, msg EmailMessage) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
	}
	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

// SendBatch delivers through Resend's batch endpoint, chunked to its
// 100-message ceiling.
func (s *ResendEmailService) SendBatch(ctx context.Context, msgs []EmailMessage) error {
	const batchSize = 100
	for start := 0; start < len(msgs); start += batchSize {
		end := start + batchSize
		if end > len(msgs) {
			end = len(msgs)
		}

		params := make([]*resend.SendEmailRequest, 0, end-start)
		for _, msg := range msgs[start:end] {
			params = append(params, &resend.SendEmailRequest{
				From:    s.from,
				To:      msg.To,
				Subject: msg.Subject,
				Html:    msg.HTML,
			})
		}

		if _, err := s.client.Batch.SendWithContext(ctx, params); err != nil {
			return fmt.Errorf("send email batch: %w", err)
		}
	}
	return nil
}

// LogEmailService logs instead of delivering; used when no RESEND_API_KEY is
// configured, which keeps local sign-up flows usable.
type LogEmailService struct{}

func NewLogEmailService() *LogEmailService {
	return &LogEmailService{}
}

func (s *LogEmailService) Send(_ context.Context, msg EmailMessage) error {
	log.Printf("email (not sent): to=%v subject=%q", msg.To, msg.Subject)
	return nil
}

func (s *LogEmailService) SendBatch(_ context.Context, msgs []EmailMessage) error {
	for _, msg := range msgs {
		log.Printf("email batch (not sent): to=%v subject=%q", msg.To, msg.Subject)
	}
	return nil
}
