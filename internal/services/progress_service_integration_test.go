package services

import (
	"context"
	"errors"
	"testing"

	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/repository"
)

func TestProgressServiceRoundTripInDateOrder(t *testing.T) {
	ctx := context.Background()
	pool := integrationTestPool(t)
	service := NewProgressService(repository.NewProgressRepository(pool))

	client := createTestClient(t, ctx, pool)
	t.Cleanup(func() {
		cleanupBookingFixtures(t, ctx, pool, []int64{client}, nil)
	})

	weight := 70.5
	bodyFat := 18.2
	notes := "post-cut check-in"

	// Insert out of order; the list must come back by record date.
	later, err := service.CreateRecord(ctx, client, ProgressInput{
		RecordDate: "2026-03-17",
		WeightKG:   &weight,
	})
	if err != nil {
		t.Fatalf("CreateRecord later: %v", err)
	}
	earlier, err := service.CreateRecord(ctx, client, ProgressInput{
		RecordDate:        "2026-03-10",
		WeightKG:          &weight,
		BodyFatPercentage: &bodyFat,
		Notes:             &notes,
	})
	if err != nil {
		t.Fatalf("CreateRecord earlier: %v", err)
	}

	records, err := service.ListRecords(ctx, client)
	if err != nil {
		t.Fatalf("ListRecords: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ID != earlier.ID || records[1].ID != later.ID {
		t.Fatalf("expected records in date order, got %d then %d", records[0].ID, records[1].ID)
	}

	first := records[0]
	if first.WeightKG == nil || *first.WeightKG != 70.5 {
		t.Fatalf("expected weight 70.5 back, got %v", first.WeightKG)
	}
	if first.BodyFatPercentage == nil || *first.BodyFatPercentage != 18.2 {
		t.Fatalf("expected body fat 18.2 back, got %v", first.BodyFatPercentage)
	}
	if first.Notes == nil || *first.Notes != notes {
		t.Fatalf("expected notes back, got %v", first.Notes)
	}
	if first.MuscleMassKG != nil {
		t.Fatalf("expected muscle mass to stay null, got %v", first.MuscleMassKG)
	}
	if records[1].BodyFatPercentage != nil || records[1].Notes != nil {
		t.Fatalf("expected omitted fields to stay null, got %+v", records[1])
	}
}

func TestProgressServiceDeleteEnforcesOwnership(t *testing.T) {
	ctx := context.Background()
	pool := integrationTestPool(t)
	service := NewProgressService(repository.NewProgressRepository(pool))

	owner := createTestClient(t, ctx, pool)
	stranger := createTestClient(t, ctx, pool)
	t.Cleanup(func() {
		cleanupBookingFixtures(t, ctx, pool, []int64{owner, stranger}, nil)
	})

	weight := 91.0
	record, err := service.CreateRecord(ctx, owner, ProgressInput{
		RecordDate: "2026-03-12",
		WeightKG:   &weight,
	})
	if err != nil {
		t.Fatalf("CreateRecord: %v", err)
	}

	if err := service.DeleteRecord(ctx, stranger, record.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}
	if err := service.DeleteRecord(ctx, owner, record.ID); err != nil {
		t.Fatalf("DeleteRecord: %v", err)
	}
	if err := service.DeleteRecord(ctx, owner, record.ID); !errors.Is(err, ErrProgressNotFound) {
		t.Fatalf("expected ErrProgressNotFound after delete, got %v", err)
	}
}
