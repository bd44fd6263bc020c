package services

import (
	"errors"
	"testing"
	"time"

	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/models"
)

func TestNormalizeRequestedStatus(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"confirm", "confirmed", false},
		{"Confirmed", "confirmed", false},
		{"cancel", "cancelled", false},
		{"canceled", "cancelled", false},
		{" CANCELLED ", "cancelled", false},
		{"pending", "", true},
		{"done", "", true},
		{"", "", true},
	}

	for _, tc := range cases {
		got, err := normalizeRequestedStatus(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidStatus) {
				t.Fatalf("normalize %q: expected ErrInvalidStatus, got %v", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("normalize %q: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("normalize %q: expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestValidateStatusTransition(t *testing.T) {
	cases := []struct {
		current string
		next    string
		wantErr error
	}{
		{"pending", "confirmed", nil},
		{"pending", "cancelled", nil},
		{"confirmed", "cancelled", nil},
		{"confirmed", "confirmed", ErrInvalidStateTransition},
		{"cancelled", "confirmed", ErrInvalidStateTransition},
		{"cancelled", "cancelled", ErrInvalidStateTransition},
		{"pending", "done", ErrInvalidStatus},
	}

	for _, tc := range cases {
		err := validateStatusTransition(tc.current, tc.next)
		if tc.wantErr == nil {
			if err != nil {
				t.Fatalf("%s -> %s: unexpected error %v", tc.current, tc.next, err)
			}
			continue
		}
		if !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s -> %s: expected %v, got %v", tc.current, tc.next, tc.wantErr, err)
		}
	}
}

func TestIsSessionType(t *testing.T) {
	for _, known := range SessionTypes {
		if !isSessionType(known) {
			t.Fatalf("expected %q to be a session type", known)
		}
	}
	if isSessionType("Massage") {
		t.Fatal("expected unknown type to be rejected")
	}
	if isSessionType("1-on-1 training") {
		t.Fatal("expected type match to be case sensitive")
	}
}

func TestGroupSlotsByDayKeepsOrder(t *testing.T) {
	monday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	tuesday := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	slots := []models.AvailableSlot{
		{ID: 1, SlotDate: monday, SlotTime: "09:00"},
		{ID: 2, SlotDate: monday, SlotTime: "10:00"},
		{ID: 3, SlotDate: tuesday, SlotTime: "09:00"},
	}

	days := groupSlotsByDay(slots)
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}
	if !days[0].Date.Equal(monday) || len(days[0].Slots) != 2 {
		t.Fatalf("unexpected first day: %+v", days[0])
	}
	if days[0].Slots[0].ID != 1 || days[0].Slots[1].ID != 2 {
		t.Fatalf("expected slot order preserved, got %+v", days[0].Slots)
	}
	if !days[1].Date.Equal(tuesday) || len(days[1].Slots) != 1 {
		t.Fatalf("unexpected second day: %+v", days[1])
	}
}

func TestGroupSlotsByDayEmpty(t *testing.T) {
	if days := groupSlotsByDay(nil); len(days) != 0 {
		t.Fatalf("expected no days, got %+v", days)
	}
}
