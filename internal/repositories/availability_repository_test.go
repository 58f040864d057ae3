package repositories

import (
	"context"
	"errors"
	"sync"
	"testing"

	"lokalBack/internal/models"
)

// Two overlapping adds racing for the same provider/day must serialize on the
// provider row; only the first may commit.
func TestAddWindowOverlapRace(t *testing.T) {
	db := testDB(t)
	_, providerID := seedProvider(t, db)

	repo := &AvailabilityRepository{DB: db}
	ctx := context.Background()

	for day := 0; day < 7; day++ {
		first := models.AvailabilityWindow{
			ProviderID: providerID, DayOfWeek: day, StartTime: "09:00", EndTime: "12:00",
		}
		second := models.AvailabilityWindow{
			ProviderID: providerID, DayOfWeek: day, StartTime: "10:00", EndTime: "14:00",
		}

		var err1, err2 error
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err1 = repo.AddWindow(ctx, first)
		}()
		go func() {
			defer wg.Done()
			_, err2 = repo.AddWindow(ctx, second)
		}()
		wg.Wait()

		if err1 == nil && err2 == nil {
			t.Fatalf("day %d: both overlapping windows inserted", day)
		}
		for _, err := range []error{err1, err2} {
			if err != nil && !errors.Is(err, models.ErrOverlapConflict) {
				t.Fatalf("day %d: unexpected error: %v", day, err)
			}
		}
	}
}

func TestUpdateWindowOverlapGuard(t *testing.T) {
	db := testDB(t)
	_, providerID := seedProvider(t, db)

	repo := &AvailabilityRepository{DB: db}
	ctx := context.Background()

	if _, err := repo.AddWindow(ctx, models.AvailabilityWindow{
		ProviderID: providerID, DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00",
	}); err != nil {
		t.Fatalf("seed window: %v", err)
	}
	later, err := repo.AddWindow(ctx, models.AvailabilityWindow{
		ProviderID: providerID, DayOfWeek: 1, StartTime: "13:00", EndTime: "15:00",
	})
	if err != nil {
		t.Fatalf("seed window: %v", err)
	}

	start := "11:00"
	_, err = repo.UpdateWindow(ctx, later.ID, providerID, models.AvailabilityUpdateRequest{StartTime: &start})
	if !errors.Is(err, models.ErrOverlapConflict) {
		t.Fatalf("update into an occupied range: got %v, want ErrOverlapConflict", err)
	}
}
