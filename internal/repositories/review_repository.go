package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"lokalBack/internal/booking"
	"lokalBack/internal/models"
)

type ReviewRepository struct {
	DB *sql.DB
}

// CreateReview inserts the one allowed review for a completed booking. The
// booking row is locked so a concurrent duplicate cannot slip between the
// existence check and the insert; the unique index on booking_id backstops it.
func (r *ReviewRepository) CreateReview(ctx context.Context, customerID int, req models.ReviewCreateRequest) (models.Review, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Review{}, err
	}
	defer tx.Rollback()

	var b models.Booking
	err = tx.QueryRowContext(ctx, `
		SELECT id, customer_id, provider_id, status
		FROM bookings
		WHERE id = $1
		FOR UPDATE
	`, req.BookingID).Scan(&b.ID, &b.CustomerID, &b.ProviderID, &b.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Review{}, models.ErrBookingNotFound
		}
		return models.Review{}, err
	}
	if b.CustomerID != customerID {
		return models.Review{}, models.ErrForbidden
	}
	if b.Status != booking.StatusCompleted {
		return models.Review{}, models.ErrBookingNotCompleted
	}

	var existing int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reviews WHERE booking_id = $1`, req.BookingID).Scan(&existing)
	if err != nil {
		return models.Review{}, err
	}
	if existing > 0 {
		return models.Review{}, models.ErrDuplicateReview
	}

	rev := models.Review{
		BookingID:  req.BookingID,
		CustomerID: customerID,
		ProviderID: b.ProviderID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO reviews (booking_id, customer_id, provider_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`, rev.BookingID, rev.CustomerID, rev.ProviderID, rev.Rating, rev.Comment).
		Scan(&rev.ID, &rev.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.Review{}, models.ErrDuplicateReview
		}
		return models.Review{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Review{}, err
	}
	return rev, nil
}

func (r *ReviewRepository) listReviews(ctx context.Context, where, order string, args ...any) ([]models.Review, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT r.id, r.booking_id, r.customer_id, r.provider_id, r.rating, r.comment, r.created_at, u.full_name
		FROM reviews r
		JOIN users u ON r.customer_id = u.id
	`+where+order, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var rev models.Review
		if err := rows.Scan(&rev.ID, &rev.BookingID, &rev.CustomerID, &rev.ProviderID,
			&rev.Rating, &rev.Comment, &rev.CreatedAt, &rev.CustomerName); err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

func (r *ReviewRepository) ListByProvider(ctx context.Context, providerID, limit, offset int) ([]models.Review, error) {
	return r.listReviews(ctx, ` WHERE r.provider_id = $1`,
		` ORDER BY r.created_at DESC LIMIT $2 OFFSET $3`, providerID, limit, offset)
}

func (r *ReviewRepository) ListByCustomer(ctx context.Context, customerID int) ([]models.Review, error) {
	return r.listReviews(ctx, ` WHERE r.customer_id = $1`,
		` ORDER BY r.created_at DESC`, customerID)
}

func (r *ReviewRepository) ListAll(ctx context.Context, limit, offset int) ([]models.Review, error) {
	return r.listReviews(ctx, ``,
		` ORDER BY r.created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
}

// DeleteReview is the admin moderation path; provider averages re-derive on
// the next read since ratings are never cached.
func (r *ReviewRepository) DeleteReview(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrReviewNotFound
	}
	return nil
}
