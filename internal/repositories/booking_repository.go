package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"lokalBack/internal/booking"
	"lokalBack/internal/models"
)

type BookingRepository struct {
	DB *sql.DB
}

const bookingColumns = `
	b.id, b.customer_id, b.provider_id, b.status, b.scheduled_for,
	b.service_address, b.total_price, b.notes, b.created_at, b.updated_at,
	cu.full_name, pu.full_name
`

const bookingJoins = `
	FROM bookings b
	JOIN users cu ON b.customer_id = cu.id
	JOIN provider_profiles pp ON b.provider_id = pp.id
	JOIN users pu ON pp.user_id = pu.id
`

func scanBooking(row interface{ Scan(dest ...any) error }) (models.Booking, error) {
	var b models.Booking
	err := row.Scan(&b.ID, &b.CustomerID, &b.ProviderID, &b.Status, &b.ScheduledFor,
		&b.ServiceAddress, &b.TotalPrice, &b.Notes, &b.CreatedAt, &b.UpdatedAt,
		&b.CustomerName, &b.ProviderName)
	return b, err
}

// lockProvider serializes schedule-changing operations per provider, so two
// concurrent creates for the same slot cannot both pass the conflict check.
func lockProvider(ctx context.Context, tx *sql.Tx, providerID int) (basePrice *float64, err error) {
	var verified, active bool
	err = tx.QueryRowContext(ctx, `
		SELECT base_price, is_verified, is_active
		FROM provider_profiles
		WHERE id = $1
		FOR UPDATE
	`, providerID).Scan(&basePrice, &verified, &active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrProviderNotFound
		}
		return nil, err
	}
	if !verified || !active {
		return nil, models.ErrProviderNotFound
	}
	return basePrice, nil
}

// lockProviderRow takes the same provider row lock as lockProvider but skips
// the verified/active guard: accept and reschedule mutate the schedule of an
// existing booking and must order against concurrent creates, which hold this
// lock while their conflict check runs.
func lockProviderRow(ctx context.Context, tx *sql.Tx, providerID int) error {
	var id int
	err := tx.QueryRowContext(ctx,
		`SELECT id FROM provider_profiles WHERE id = $1 FOR UPDATE`, providerID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrProviderNotFound
		}
		return err
	}
	return nil
}

func hasScheduleConflict(ctx context.Context, q queryer, providerID int, at time.Time, excludeID int) (bool, error) {
	// Exact-timestamp policy: two bookings conflict only when they share the
	// same scheduled_for. A duration-aware range overlap would be the
	// stricter variant, but bookings carry no duration to range over.
	var id int
	err := q.QueryRowContext(ctx, `
		SELECT id FROM bookings
		WHERE provider_id = $1
		AND id != $2
		AND status IN ('pending', 'confirmed', 'rescheduled')
		AND scheduled_for = $3
		LIMIT 1
	`, providerID, excludeID, at).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func getBookingForUpdate(ctx context.Context, tx *sql.Tx, id int) (models.Booking, error) {
	var b models.Booking
	err := tx.QueryRowContext(ctx, `
		SELECT id, customer_id, provider_id, status, scheduled_for,
		       service_address, total_price, notes, created_at, updated_at
		FROM bookings
		WHERE id = $1
		FOR UPDATE
	`, id).Scan(&b.ID, &b.CustomerID, &b.ProviderID, &b.Status, &b.ScheduledFor,
		&b.ServiceAddress, &b.TotalPrice, &b.Notes, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, models.ErrBookingNotFound
		}
		return models.Booking{}, err
	}
	return b, nil
}

// CreateBooking runs every guard inside the inserting transaction: the
// provider must be verified, the slot strictly in the future, inside an
// availability window and free of live bookings at the same timestamp.
func (r *BookingRepository) CreateBooking(ctx context.Context, customerID int, req models.BookingCreateRequest) (models.Booking, error) {
	if !req.ScheduledFor.After(time.Now()) {
		return models.Booking{}, models.ErrPastSchedule
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Booking{}, err
	}
	defer tx.Rollback()

	basePrice, err := lockProvider(ctx, tx, req.ProviderID)
	if err != nil {
		return models.Booking{}, err
	}

	within, err := isWithinAvailability(ctx, tx, req.ProviderID, req.ScheduledFor)
	if err != nil {
		return models.Booking{}, err
	}
	if !within {
		return models.Booking{}, models.ErrOutOfAvailability
	}

	conflict, err := hasScheduleConflict(ctx, tx, req.ProviderID, req.ScheduledFor, 0)
	if err != nil {
		return models.Booking{}, err
	}
	if conflict {
		return models.Booking{}, models.ErrScheduleConflict
	}

	b := models.Booking{
		CustomerID:     customerID,
		ProviderID:     req.ProviderID,
		Status:         booking.StatusPending,
		ScheduledFor:   req.ScheduledFor,
		ServiceAddress: req.ServiceAddress,
		TotalPrice:     basePrice,
		Notes:          req.Notes,
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO bookings (customer_id, provider_id, status, scheduled_for, service_address, total_price, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`, b.CustomerID, b.ProviderID, b.Status, b.ScheduledFor, b.ServiceAddress, b.TotalPrice, b.Notes).
		Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return models.Booking{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Booking{}, err
	}
	return b, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int) (models.Booking, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+bookingColumns+bookingJoins+` WHERE b.id = $1`, id)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, models.ErrBookingNotFound
		}
		return models.Booking{}, err
	}
	return b, nil
}

func (r *BookingRepository) listBookings(ctx context.Context, where string, order string, args ...any) ([]models.Booking, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+bookingColumns+bookingJoins+where+order, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *BookingRepository) ListForCustomer(ctx context.Context, customerID int, status string) ([]models.Booking, error) {
	if status != "" {
		return r.listBookings(ctx, ` WHERE b.customer_id = $1 AND b.status = $2`,
			` ORDER BY b.created_at DESC`, customerID, status)
	}
	return r.listBookings(ctx, ` WHERE b.customer_id = $1`,
		` ORDER BY b.created_at DESC`, customerID)
}

func (r *BookingRepository) ListForProvider(ctx context.Context, providerID int, status string) ([]models.Booking, error) {
	// Upcoming first.
	if status != "" {
		return r.listBookings(ctx, ` WHERE b.provider_id = $1 AND b.status = $2`,
			` ORDER BY b.scheduled_for ASC`, providerID, status)
	}
	return r.listBookings(ctx, ` WHERE b.provider_id = $1`,
		` ORDER BY b.scheduled_for ASC`, providerID)
}

func (r *BookingRepository) ListAll(ctx context.Context, status string, page, pageSize int) (models.BookingListResponse, error) {
	resp := models.BookingListResponse{Page: page, PageSize: pageSize, Bookings: []models.Booking{}}

	countQuery := `SELECT COUNT(*) FROM bookings`
	var args []any
	if status != "" {
		countQuery += ` WHERE status = $1`
		args = append(args, status)
	}
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&resp.Total); err != nil {
		return resp, err
	}

	offset := (page - 1) * pageSize
	var err error
	if status != "" {
		resp.Bookings, err = r.listBookings(ctx, ` WHERE b.status = $1`,
			` ORDER BY b.created_at DESC LIMIT $2 OFFSET $3`, status, pageSize, offset)
	} else {
		resp.Bookings, err = r.listBookings(ctx, ``,
			` ORDER BY b.created_at DESC LIMIT $1 OFFSET $2`, pageSize, offset)
	}
	return resp, err
}

// Accept moves a pending booking to confirmed, re-checking the schedule
// conflict against bookings that appeared since creation.
func (r *BookingRepository) Accept(ctx context.Context, id, providerID int) (models.Booking, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Booking{}, err
	}
	defer tx.Rollback()

	b, err := getBookingForUpdate(ctx, tx, id)
	if err != nil {
		return models.Booking{}, err
	}
	if b.ProviderID != providerID {
		return models.Booking{}, models.ErrForbidden
	}
	if b.Status != booking.StatusPending {
		return models.Booking{}, models.ErrInvalidTransition
	}

	if err := lockProviderRow(ctx, tx, b.ProviderID); err != nil {
		return models.Booking{}, err
	}
	conflict, err := hasScheduleConflict(ctx, tx, b.ProviderID, b.ScheduledFor, b.ID)
	if err != nil {
		return models.Booking{}, err
	}
	if conflict {
		return models.Booking{}, models.ErrScheduleConflict
	}

	if err := booking.Apply(ctx, tx, b.ID, b.Status, booking.StatusConfirmed); err != nil {
		return models.Booking{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Booking{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *BookingRepository) Reject(ctx context.Context, id, providerID int) (models.Booking, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Booking{}, err
	}
	defer tx.Rollback()

	b, err := getBookingForUpdate(ctx, tx, id)
	if err != nil {
		return models.Booking{}, err
	}
	if b.ProviderID != providerID {
		return models.Booking{}, models.ErrForbidden
	}
	if b.Status != booking.StatusPending {
		return models.Booking{}, models.ErrInvalidTransition
	}

	if err := booking.Apply(ctx, tx, b.ID, b.Status, booking.StatusRejected); err != nil {
		return models.Booking{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Booking{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *BookingRepository) Cancel(ctx context.Context, id, customerID int) (models.Booking, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Booking{}, err
	}
	defer tx.Rollback()

	b, err := getBookingForUpdate(ctx, tx, id)
	if err != nil {
		return models.Booking{}, err
	}
	if b.CustomerID != customerID {
		return models.Booking{}, models.ErrForbidden
	}
	if !booking.IsLive(b.Status) {
		return models.Booking{}, models.ErrInvalidTransition
	}

	if err := booking.Apply(ctx, tx, b.ID, b.Status, booking.StatusCancelled); err != nil {
		return models.Booking{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Booking{}, err
	}
	return r.GetByID(ctx, id)
}

// Reschedule moves a live booking to a new future slot, running the same
// availability and conflict guards as creation but excluding the booking
// being moved.
func (r *BookingRepository) Reschedule(ctx context.Context, id, providerID int, newTime time.Time) (models.Booking, error) {
	if !newTime.After(time.Now()) {
		return models.Booking{}, models.ErrPastSchedule
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Booking{}, err
	}
	defer tx.Rollback()

	b, err := getBookingForUpdate(ctx, tx, id)
	if err != nil {
		return models.Booking{}, err
	}
	if b.ProviderID != providerID {
		return models.Booking{}, models.ErrForbidden
	}
	if !booking.CanTransition(b.Status, booking.StatusRescheduled) {
		return models.Booking{}, models.ErrInvalidTransition
	}

	if err := lockProviderRow(ctx, tx, b.ProviderID); err != nil {
		return models.Booking{}, err
	}

	within, err := isWithinAvailability(ctx, tx, b.ProviderID, newTime)
	if err != nil {
		return models.Booking{}, err
	}
	if !within {
		return models.Booking{}, models.ErrOutOfAvailability
	}

	conflict, err := hasScheduleConflict(ctx, tx, b.ProviderID, newTime, b.ID)
	if err != nil {
		return models.Booking{}, err
	}
	if conflict {
		return models.Booking{}, models.ErrScheduleConflict
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE bookings
		SET status = $1, scheduled_for = $2, updated_at = NOW()
		WHERE id = $3 AND status = $4
	`, booking.StatusRescheduled, newTime, b.ID, b.Status)
	if err != nil {
		return models.Booking{}, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return models.Booking{}, err
	}
	if rows == 0 {
		return models.Booking{}, models.ErrInvalidTransition
	}

	if err := tx.Commit(); err != nil {
		return models.Booking{}, err
	}
	return r.GetByID(ctx, id)
}

// Complete is only legal once the scheduled time has passed.
func (r *BookingRepository) Complete(ctx context.Context, id, providerID int) (models.Booking, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Booking{}, err
	}
	defer tx.Rollback()

	b, err := getBookingForUpdate(ctx, tx, id)
	if err != nil {
		return models.Booking{}, err
	}
	if b.ProviderID != providerID {
		return models.Booking{}, models.ErrForbidden
	}
	if b.Status != booking.StatusConfirmed && b.Status != booking.StatusRescheduled {
		return models.Booking{}, models.ErrInvalidTransition
	}
	if b.ScheduledFor.After(time.Now()) {
		return models.Booking{}, models.ErrInvalidTransition
	}

	if err := booking.Apply(ctx, tx, b.ID, b.Status, booking.StatusCompleted); err != nil {
		return models.Booking{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Booking{}, err
	}
	return r.GetByID(ctx, id)
}
