package repositories

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"lokalBack/internal/models"
)

func TestRescheduleConflictGuard(t *testing.T) {
	db := testDB(t)
	customerID, providerID := seedProvider(t, db)
	seedAllDayAvailability(t, db, providerID)

	repo := &BookingRepository{DB: db}
	ctx := context.Background()
	taken := time.Now().Add(48 * time.Hour).Truncate(time.Minute)

	if _, err := repo.CreateBooking(ctx, customerID, models.BookingCreateRequest{
		ProviderID: providerID, ScheduledFor: taken, ServiceAddress: "test street 1",
	}); err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	moved, err := repo.CreateBooking(ctx, customerID, models.BookingCreateRequest{
		ProviderID: providerID, ScheduledFor: taken.Add(time.Hour), ServiceAddress: "test street 1",
	})
	if err != nil {
		t.Fatalf("seed booking: %v", err)
	}

	if _, err := repo.Reschedule(ctx, moved.ID, providerID, taken); !errors.Is(err, models.ErrScheduleConflict) {
		t.Fatalf("reschedule onto an occupied slot: got %v, want ErrScheduleConflict", err)
	}
}

// A reschedule and a create racing for the same slot must serialize on the
// provider row, so exactly one of them wins each round.
func TestRescheduleCreateRace(t *testing.T) {
	db := testDB(t)
	customerID, providerID := seedProvider(t, db)
	seedAllDayAvailability(t, db, providerID)

	repo := &BookingRepository{DB: db}
	ctx := context.Background()
	base := time.Now().Add(72 * time.Hour).Truncate(time.Minute)

	moved, err := repo.CreateBooking(ctx, customerID, models.BookingCreateRequest{
		ProviderID: providerID, ScheduledFor: base.Add(-2 * time.Hour), ServiceAddress: "test street 1",
	})
	if err != nil {
		t.Fatalf("seed booking: %v", err)
	}

	for round := 0; round < 8; round++ {
		target := base.Add(time.Duration(round) * time.Hour)

		var createErr, reschedErr error
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, createErr = repo.CreateBooking(ctx, customerID, models.BookingCreateRequest{
				ProviderID: providerID, ScheduledFor: target, ServiceAddress: "test street 1",
			})
		}()
		go func() {
			defer wg.Done()
			_, reschedErr = repo.Reschedule(ctx, moved.ID, providerID, target)
		}()
		wg.Wait()

		if createErr == nil && reschedErr == nil {
			t.Fatalf("round %d: create and reschedule both claimed %s", round, target)
		}
		for _, err := range []error{createErr, reschedErr} {
			if err != nil && !errors.Is(err, models.ErrScheduleConflict) {
				t.Fatalf("round %d: unexpected error: %v", round, err)
			}
		}
	}
}
