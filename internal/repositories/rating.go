package repositories

import (
	"context"
	"database/sql"
)

// Provider ratings are derived on read from the review set rather than
// cached in a column, so they can never drift from the ledger.
func getAverageRating(ctx context.Context, q queryer, providerID int) float64 {
	var avg sql.NullFloat64
	err := q.QueryRowContext(ctx,
		`SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE provider_id = $1`,
		providerID).Scan(&avg)
	if err != nil {
		return 0
	}
	if avg.Valid {
		return avg.Float64
	}
	return 0
}

func getReviewsCount(ctx context.Context, q queryer, providerID int) int {
	var count int
	err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reviews WHERE provider_id = $1`,
		providerID).Scan(&count)
	if err != nil {
		return 0
	}
	return count
}
