package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"lokalBack/internal/models"
)

type AvailabilityRepository struct {
	DB *sql.DB
}

func windowsForDay(ctx context.Context, q queryer, providerID, dayOfWeek int) ([]models.AvailabilityWindow, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, provider_id, day_of_week, start_time, end_time, created_at
		FROM provider_availability
		WHERE provider_id = $1 AND day_of_week = $2
		ORDER BY start_time
	`, providerID, dayOfWeek)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	windows := []models.AvailabilityWindow{}
	for rows.Next() {
		var w models.AvailabilityWindow
		if err := rows.Scan(&w.ID, &w.ProviderID, &w.DayOfWeek, &w.StartTime, &w.EndTime, &w.CreatedAt); err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}
	return windows, rows.Err()
}

func overlapsAny(candidate models.AvailabilityWindow, windows []models.AvailabilityWindow, excludeID int) (bool, error) {
	cStart, err := models.MinuteOfDay(candidate.StartTime)
	if err != nil {
		return false, models.ErrInvalidRange
	}
	cEnd, err := models.MinuteOfDay(candidate.EndTime)
	if err != nil {
		return false, models.ErrInvalidRange
	}
	for _, w := range windows {
		if w.ID == excludeID {
			continue
		}
		s, err := models.MinuteOfDay(w.StartTime)
		if err != nil {
			continue
		}
		e, err := models.MinuteOfDay(w.EndTime)
		if err != nil {
			continue
		}
		if models.WindowsOverlap(cStart, cEnd, s, e) {
			return true, nil
		}
	}
	return false, nil
}

func (r *AvailabilityRepository) ListForProvider(ctx context.Context, providerID int) ([]models.AvailabilityWindow, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, provider_id, day_of_week, start_time, end_time, created_at
		FROM provider_availability
		WHERE provider_id = $1
		ORDER BY day_of_week, start_time
	`, providerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	windows := []models.AvailabilityWindow{}
	for rows.Next() {
		var w models.AvailabilityWindow
		if err := rows.Scan(&w.ID, &w.ProviderID, &w.DayOfWeek, &w.StartTime, &w.EndTime, &w.CreatedAt); err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}
	return windows, rows.Err()
}

// AddWindow inserts a weekly slot. The provider row lock serializes window
// writes per provider, so two concurrent adds cannot both pass the overlap
// guard against the same snapshot.
func (r *AvailabilityRepository) AddWindow(ctx context.Context, w models.AvailabilityWindow) (models.AvailabilityWindow, error) {
	if err := w.Validate(); err != nil {
		return models.AvailabilityWindow{}, err
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.AvailabilityWindow{}, err
	}
	defer tx.Rollback()

	if err := lockProviderRow(ctx, tx, w.ProviderID); err != nil {
		return models.AvailabilityWindow{}, err
	}

	existing, err := windowsForDay(ctx, tx, w.ProviderID, w.DayOfWeek)
	if err != nil {
		return models.AvailabilityWindow{}, err
	}
	overlaps, err := overlapsAny(w, existing, 0)
	if err != nil {
		return models.AvailabilityWindow{}, err
	}
	if overlaps {
		return models.AvailabilityWindow{}, models.ErrOverlapConflict
	}

	w.CreatedAt = time.Now()
	err = tx.QueryRowContext(ctx, `
		INSERT INTO provider_availability (provider_id, day_of_week, start_time, end_time, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, w.ProviderID, w.DayOfWeek, w.StartTime, w.EndTime, w.CreatedAt).Scan(&w.ID)
	if err != nil {
		return models.AvailabilityWindow{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.AvailabilityWindow{}, err
	}
	return w, nil
}

// UpdateWindow patches start/end and re-validates overlap against all other
// windows of the same provider/day.
func (r *AvailabilityRepository) UpdateWindow(ctx context.Context, id, providerID int, req models.AvailabilityUpdateRequest) (models.AvailabilityWindow, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.AvailabilityWindow{}, err
	}
	defer tx.Rollback()

	var w models.AvailabilityWindow
	err = tx.QueryRowContext(ctx, `
		SELECT id, provider_id, day_of_week, start_time, end_time, created_at
		FROM provider_availability
		WHERE id = $1
		FOR UPDATE
	`, id).Scan(&w.ID, &w.ProviderID, &w.DayOfWeek, &w.StartTime, &w.EndTime, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.AvailabilityWindow{}, models.ErrWindowNotFound
		}
		return models.AvailabilityWindow{}, err
	}
	if w.ProviderID != providerID {
		return models.AvailabilityWindow{}, models.ErrForbidden
	}
	if err := lockProviderRow(ctx, tx, w.ProviderID); err != nil {
		return models.AvailabilityWindow{}, err
	}

	if req.StartTime != nil {
		w.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		w.EndTime = *req.EndTime
	}
	if err := w.Validate(); err != nil {
		return models.AvailabilityWindow{}, err
	}

	existing, err := windowsForDay(ctx, tx, w.ProviderID, w.DayOfWeek)
	if err != nil {
		return models.AvailabilityWindow{}, err
	}
	overlaps, err := overlapsAny(w, existing, w.ID)
	if err != nil {
		return models.AvailabilityWindow{}, err
	}
	if overlaps {
		return models.AvailabilityWindow{}, models.ErrOverlapConflict
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE provider_availability
		SET start_time = $1, end_time = $2
		WHERE id = $3
	`, w.StartTime, w.EndTime, w.ID)
	if err != nil {
		return models.AvailabilityWindow{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.AvailabilityWindow{}, err
	}
	return w, nil
}

func (r *AvailabilityRepository) RemoveWindow(ctx context.Context, id, providerID int) error {
	var owner int
	err := r.DB.QueryRowContext(ctx,
		`SELECT provider_id FROM provider_availability WHERE id = $1`, id).Scan(&owner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrWindowNotFound
		}
		return err
	}
	if owner != providerID {
		return models.ErrForbidden
	}
	_, err = r.DB.ExecContext(ctx, `DELETE FROM provider_availability WHERE id = $1`, id)
	return err
}

// isWithinAvailability reports whether the timestamp's weekday and wall-clock
// time fall inside one of the provider's windows. Runs on the caller's
// transaction so booking guards see a consistent schedule.
func isWithinAvailability(ctx context.Context, q queryer, providerID int, t time.Time) (bool, error) {
	windows, err := windowsForDay(ctx, q, providerID, int(t.Weekday()))
	if err != nil {
		return false, err
	}
	for _, w := range windows {
		if w.Contains(t) {
			return true, nil
		}
	}
	return false, nil
}
