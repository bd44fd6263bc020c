package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/models"
	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/services"
)

type stubBroadcastService struct {
	sendResult  *models.Broadcast
	sendErr     error
	listResult  []models.BroadcastDetail
	listErr     error
	lastCoachID int64
	lastInput   services.BroadcastInput
}

func (s *stubBroadcastService) SendBroadcast(_ context.Context, coachID int64, input services.BroadcastInput) (*models.Broadcast, error) {
	s.lastCoachID = coachID
	s.lastInput = input
	return s.sendResult, s.sendErr
}

func (s *stubBroadcastService) ListBroadcasts(_ context.Context) ([]models.BroadcastDetail, error) {
	return s.listResult, s.listErr
}

func newBroadcastTestApp(service BroadcastServiceAPI, role string) *fiber.App {
	handler := NewBroadcastHandler(service)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("role", role)
		c.Locals("user_id", "7")
		return c.Next()
	})
	app.Post("/api/broadcasts", handler.SendBroadcast)
	app.Get("/api/broadcasts", handler.ListBroadcasts)
	return app
}

func TestSendBroadcastRequiresCoach(t *testing.T) {
	app := newBroadcastTestApp(&stubBroadcastService{}, "client")

	req := httptest.NewRequest(http.MethodPost, "/api/broadcasts", strings.NewReader(`{
		"title": "New plan",
		"message": "Check your dashboard"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestSendBroadcastForwardsRecipients(t *testing.T) {
	service := &stubBroadcastService{
		sendResult: &models.Broadcast{ID: 12, CoachID: 7, Title: "New plan"},
	}
	app := newBroadcastTestApp(service, "coach")

	req := httptest.NewRequest(http.MethodPost, "/api/broadcasts", strings.NewReader(`{
		"title": "New plan",
		"message": "Check your dashboard",
		"recipient_ids": [2, 5]
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastCoachID != 7 {
		t.Fatalf("expected coach id 7, got %d", service.lastCoachID)
	}
	if len(service.lastInput.RecipientIDs) != 2 || service.lastInput.RecipientIDs[0] != 2 {
		t.Fatalf("unexpected recipients: %v", service.lastInput.RecipientIDs)
	}
}

func TestListBroadcastsVisibleToClients(t *testing.T) {
	coachName := "Head Coach"
	service := &stubBroadcastService{
		listResult: []models.BroadcastDetail{
			{Broadcast: models.Broadcast{ID: 12, Title: "New plan"}, CoachName: &coachName},
		},
	}
	app := newBroadcastTestApp(service, "client")

	req := httptest.NewRequest(http.MethodGet, "/api/broadcasts", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Broadcasts []models.BroadcastDetail `json:"broadcasts"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Broadcasts) != 1 || body.Broadcasts[0].CoachName == nil {
		t.Fatalf("unexpected payload: %+v", body)
	}
}
