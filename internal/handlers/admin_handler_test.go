package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/models"
	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/services"
)

type stubAdminBookingService struct {
	listResult   []models.BookingDetail
	listTotal    int
	listErr      error
	updateResult *models.Booking
	updateErr    error
	slotsResult  []models.AvailableSlot
	slotsErr     error
	addResult    *models.AvailableSlot
	addErr       error
	deleteErr    error

	lastPage      int
	lastLimit     int
	lastBookingID int64
	lastStatus    string
	lastSlotDate  time.Time
	lastSlotTime  string
	lastSlotID    int64
}

func (s *stubAdminBookingService) ListAllBookings(_ context.Context, page, limit int) ([]models.BookingDetail, int, error) {
	s.lastPage = page
	s.lastLimit = limit
	return s.listResult, s.listTotal, s.listErr
}

func (s *stubAdminBookingService) UpdateStatus(_ context.Context, bookingID int64, requestedStatus string) (*models.Booking, error) {
	s.lastBookingID = bookingID
	s.lastStatus = requestedStatus
	return s.updateResult, s.updateErr
}

func (s *stubAdminBookingService) ListAllSlots(_ context.Context) ([]models.AvailableSlot, error) {
	return s.slotsResult, s.slotsErr
}

func (s *stubAdminBookingService) AddSlot(_ context.Context, slotDate time.Time, slotTime string) (*models.AvailableSlot, error) {
	s.lastSlotDate = slotDate
	s.lastSlotTime = slotTime
	return s.addResult, s.addErr
}

func (s *stubAdminBookingService) DeleteSlot(_ context.Context, slotID int64) error {
	s.lastSlotID = slotID
	return s.deleteErr
}

type stubClientDirectory struct {
	clients []models.ClientOverview
	err     error
}

func (s *stubClientDirectory) ListClients(_ context.Context) ([]models.ClientOverview, error) {
	return s.clients, s.err
}

type stubContactInbox struct {
	messages []models.ContactMessage
	err      error
}

func (s *stubContactInbox) ListMessages(_ context.Context) ([]models.ContactMessage, error) {
	return s.messages, s.err
}

func newAdminTestApp(bookings AdminBookingAPI, clients ClientDirectoryAPI, contact ContactInboxAPI, role string) *fiber.App {
	handler := NewAdminHandler(bookings, clients, contact)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("role", role)
		c.Locals("user_id", "7")
		return c.Next()
	})
	app.Get("/api/admin/bookings", handler.ListBookings)
	app.Put("/api/admin/bookings/:id/status", handler.UpdateBookingStatus)
	app.Get("/api/admin/slots", handler.ListSlots)
	app.Post("/api/admin/slots", handler.AddSlot)
	app.Delete("/api/admin/slots/:id", handler.DeleteSlot)
	app.Get("/api/admin/clients", handler.ListClients)
	app.Get("/api/admin/messages", handler.ListContactMessages)
	return app
}

func TestAdminRoutesRejectClients(t *testing.T) {
	bookings := &stubAdminBookingService{}
	directory := &stubClientDirectory{
		clients: []models.ClientOverview{
			{Profile: models.Profile{UserID: 2, FullName: "Jamie Cole", Role: "client"}},
		},
	}
	app := newAdminTestApp(bookings, directory, &stubContactInbox{}, "client")

	paths := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/api/admin/bookings", ""},
		{http.MethodPut, "/api/admin/bookings/31/status", `{"status":"confirm"}`},
		{http.MethodGet, "/api/admin/slots", ""},
		{http.MethodPost, "/api/admin/slots", `{"slot_date":"2026-04-01","slot_time":"09:00"}`},
		{http.MethodDelete, "/api/admin/slots/9", ""},
		{http.MethodGet, "/api/admin/clients", ""},
		{http.MethodGet, "/api/admin/messages", ""},
	}

	for _, tc := range paths {
		var reqBody io.Reader
		if tc.body != "" {
			reqBody = strings.NewReader(tc.body)
		}
		req := httptest.NewRequest(tc.method, tc.path, reqBody)
		if tc.body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test %s %s: %v", tc.method, tc.path, err)
		}
		payload, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			t.Fatalf("read body %s %s: %v", tc.method, tc.path, err)
		}
		if resp.StatusCode != http.StatusForbidden {
			t.Fatalf("%s %s: expected 403, got %d", tc.method, tc.path, resp.StatusCode)
		}
		if !strings.Contains(string(payload), "Coach access required") {
			t.Fatalf("%s %s: unexpected body %s", tc.method, tc.path, payload)
		}
		if strings.Contains(string(payload), "Jamie Cole") {
			t.Fatalf("%s %s: admin payload leaked into refusal body", tc.method, tc.path)
		}
	}

	// The gate must halt before the service layer runs.
	if bookings.lastSlotID != 0 || bookings.lastBookingID != 0 || bookings.lastPage != 0 || !bookings.lastSlotDate.IsZero() {
		t.Fatalf("service calls executed for a client caller: %+v", bookings)
	}
}

func TestListBookingsClampsPagination(t *testing.T) {
	service := &stubAdminBookingService{listTotal: 120}
	app := newAdminTestApp(service, &stubClientDirectory{}, &stubContactInbox{}, "coach")

	req := httptest.NewRequest(http.MethodGet, "/api/admin/bookings?page=0&limit=500", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastPage != 1 {
		t.Fatalf("expected page clamped to 1, got %d", service.lastPage)
	}
	if service.lastLimit != maxPageLimit {
		t.Fatalf("expected limit clamped to %d, got %d", maxPageLimit, service.lastLimit)
	}

	var body struct {
		Pagination models.PaginationMeta `json:"pagination"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Pagination.Total != 120 {
		t.Fatalf("expected total 120, got %d", body.Pagination.Total)
	}
}

func TestUpdateBookingStatusForwardsRequest(t *testing.T) {
	service := &stubAdminBookingService{
		updateResult: &models.Booking{ID: 31, Status: "confirmed"},
	}
	app := newAdminTestApp(service, &stubClientDirectory{}, &stubContactInbox{}, "coach")

	req := httptest.NewRequest(http.MethodPut, "/api/admin/bookings/31/status", strings.NewReader(`{"status":"confirm"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastBookingID != 31 || service.lastStatus != "confirm" {
		t.Fatalf("unexpected forwarded values: id=%d status=%q", service.lastBookingID, service.lastStatus)
	}
}

func TestUpdateBookingStatusConflictOnBadTransition(t *testing.T) {
	service := &stubAdminBookingService{updateErr: services.ErrInvalidStateTransition}
	app := newAdminTestApp(service, &stubClientDirectory{}, &stubContactInbox{}, "coach")

	req := httptest.NewRequest(http.MethodPut, "/api/admin/bookings/31/status", strings.NewReader(`{"status":"confirm"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestAddSlotReturnsConflictOnDuplicate(t *testing.T) {
	service := &stubAdminBookingService{addErr: services.ErrDuplicateSlot}
	app := newAdminTestApp(service, &stubClientDirectory{}, &stubContactInbox{}, "coach")

	req := httptest.NewRequest(http.MethodPost, "/api/admin/slots", strings.NewReader(`{
		"slot_date": "2026-04-01",
		"slot_time": "09:00"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
	if service.lastSlotTime != "09:00" {
		t.Fatalf("expected forwarded slot time, got %q", service.lastSlotTime)
	}
}

func TestAddSlotRejectsBadDate(t *testing.T) {
	app := newAdminTestApp(&stubAdminBookingService{}, &stubClientDirectory{}, &stubContactInbox{}, "coach")

	req := httptest.NewRequest(http.MethodPost, "/api/admin/slots", strings.NewReader(`{
		"slot_date": "April 1st",
		"slot_time": "09:00"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestDeleteSlotRefusesBookedSlot(t *testing.T) {
	service := &stubAdminBookingService{deleteErr: services.ErrSlotTaken}
	app := newAdminTestApp(service, &stubClientDirectory{}, &stubContactInbox{}, "coach")

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/slots/4", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
	if service.lastSlotID != 4 {
		t.Fatalf("expected slot id 4, got %d", service.lastSlotID)
	}
}

func TestListClientsIncludesEngagement(t *testing.T) {
	lastLogin := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	directory := &stubClientDirectory{
		clients: []models.ClientOverview{
			{
				Profile:    models.Profile{UserID: 2, FullName: "Jamie Cole", Role: "client"},
				Engagement: &models.Engagement{UserID: 2, LastLogin: lastLogin, CurrentStreak: 3},
			},
		},
	}
	app := newAdminTestApp(&stubAdminBookingService{}, directory, &stubContactInbox{}, "coach")

	req := httptest.NewRequest(http.MethodGet, "/api/admin/clients", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Clients []models.ClientOverview `json:"clients"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Clients) != 1 || body.Clients[0].Engagement == nil {
		t.Fatalf("unexpected payload: %+v", body)
	}
	if body.Clients[0].Engagement.CurrentStreak != 3 {
		t.Fatalf("expected streak 3, got %d", body.Clients[0].Engagement.CurrentStreak)
	}
}
