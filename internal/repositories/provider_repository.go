package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"lokalBack/internal/models"
)

type ProviderRepository struct {
	DB *sql.DB
}

const providerColumns = `
	pp.id, pp.user_id, pp.category_id, c.name, pp.bio, pp.base_price,
	pp.is_verified, pp.is_active, pp.latitude, pp.longitude, pp.document_url,
	u.full_name, pp.created_at, pp.updated_at,
	COALESCE((SELECT AVG(r.rating) FROM reviews r WHERE r.provider_id = pp.id), 0),
	(SELECT COUNT(*) FROM reviews r WHERE r.provider_id = pp.id)
`

const providerJoins = `
	FROM provider_profiles pp
	LEFT JOIN categories c ON pp.category_id = c.id
	JOIN users u ON pp.user_id = u.id
`

func scanProvider(row interface{ Scan(dest ...any) error }) (models.Provider, error) {
	var p models.Provider
	err := row.Scan(&p.ID, &p.UserID, &p.CategoryID, &p.CategoryName, &p.Bio, &p.BasePrice,
		&p.IsVerified, &p.IsActive, &p.Latitude, &p.Longitude, &p.DocumentURL,
		&p.ProviderName, &p.CreatedAt, &p.UpdatedAt, &p.AvgRating, &p.ReviewsCount)
	return p, err
}

func (r *ProviderRepository) GetByID(ctx context.Context, id int) (models.Provider, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+providerColumns+providerJoins+` WHERE pp.id = $1`, id)
	p, err := scanProvider(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Provider{}, models.ErrProviderNotFound
		}
		return models.Provider{}, err
	}
	return p, nil
}

func (r *ProviderRepository) GetByUserID(ctx context.Context, userID int) (models.Provider, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+providerColumns+providerJoins+` WHERE pp.user_id = $1`, userID)
	p, err := scanProvider(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Provider{}, models.ErrProviderNotFound
		}
		return models.Provider{}, err
	}
	return p, nil
}

func (r *ProviderRepository) UpdateProfile(ctx context.Context, providerID int, req models.ProviderUpdateRequest) (models.Provider, error) {
	set := []string{}
	args := []any{}
	n := 1
	if req.CategoryID != nil {
		set = append(set, fmt.Sprintf("category_id = $%d", n))
		args = append(args, *req.CategoryID)
		n++
	}
	if req.Bio != nil {
		set = append(set, fmt.Sprintf("bio = $%d", n))
		args = append(args, *req.Bio)
		n++
	}
	if req.BasePrice != nil {
		set = append(set, fmt.Sprintf("base_price = $%d", n))
		args = append(args, *req.BasePrice)
		n++
	}
	if req.Latitude != nil && req.Longitude != nil {
		set = append(set, fmt.Sprintf("latitude = $%d", n), fmt.Sprintf("longitude = $%d", n+1))
		args = append(args, *req.Latitude, *req.Longitude)
		n += 2
	}
	if len(set) > 0 {
		set = append(set, "updated_at = NOW()")
		args = append(args, providerID)
		query := fmt.Sprintf(`UPDATE provider_profiles SET %s WHERE id = $%d`, strings.Join(set, ", "), n)
		res, err := r.DB.ExecContext(ctx, query, args...)
		if err != nil {
			return models.Provider{}, err
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return models.Provider{}, err
		}
		if rows == 0 {
			return models.Provider{}, models.ErrProviderNotFound
		}
	}
	return r.GetByID(ctx, providerID)
}

func (r *ProviderRepository) SetDocumentURL(ctx context.Context, providerID int, url string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE provider_profiles SET document_url = $1, updated_at = NOW() WHERE id = $2`,
		url, providerID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrProviderNotFound
	}
	return nil
}

func (r *ProviderRepository) SetVerified(ctx context.Context, providerID int, verified bool) (models.Provider, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE provider_profiles SET is_verified = $1, updated_at = NOW() WHERE id = $2`,
		verified, providerID)
	if err != nil {
		return models.Provider{}, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return models.Provider{}, err
	}
	if rows == 0 {
		return models.Provider{}, models.ErrProviderNotFound
	}
	return r.GetByID(ctx, providerID)
}

func (r *ProviderRepository) ListPending(ctx context.Context) ([]models.Provider, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+providerColumns+providerJoins+`
		WHERE pp.is_verified = FALSE AND pp.is_active = TRUE
		ORDER BY pp.created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	providers := []models.Provider{}
	for rows.Next() {
		p, err := scanProvider(rows)
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	return providers, rows.Err()
}

func searchFilters(req models.ProviderSearchRequest, args []any) (string, []any) {
	var sb strings.Builder
	if req.CategoryID != nil {
		args = append(args, *req.CategoryID)
		fmt.Fprintf(&sb, " AND pp.category_id = $%d", len(args))
	}
	if req.MinRating != nil {
		args = append(args, *req.MinRating)
		fmt.Fprintf(&sb, " AND COALESCE((SELECT AVG(r.rating) FROM reviews r WHERE r.provider_id = pp.id), 0) >= $%d", len(args))
	}
	if req.MinPrice != nil {
		args = append(args, *req.MinPrice)
		fmt.Fprintf(&sb, " AND pp.base_price >= $%d", len(args))
	}
	if req.MaxPrice != nil {
		args = append(args, *req.MaxPrice)
		fmt.Fprintf(&sb, " AND pp.base_price <= $%d", len(args))
	}
	return sb.String(), args
}

// SearchCandidates returns every verified, located provider matching the
// relational filters. Radius filtering, distance ranking and pagination
// happen in the service on top of these rows.
func (r *ProviderRepository) SearchCandidates(ctx context.Context, req models.ProviderSearchRequest) ([]models.Provider, error) {
	query := `SELECT ` + providerColumns + providerJoins + `
		WHERE pp.is_verified = TRUE AND pp.is_active = TRUE
		AND pp.latitude IS NOT NULL AND pp.longitude IS NOT NULL`
	filters, args := searchFilters(req, nil)
	query += filters

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	providers := []models.Provider{}
	for rows.Next() {
		p, err := scanProvider(rows)
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	return providers, rows.Err()
}

// GetCandidatesByIDs resolves geo-index hits to provider rows, applying the
// same relational filters as SearchCandidates.
func (r *ProviderRepository) GetCandidatesByIDs(ctx context.Context, ids []int, req models.ProviderSearchRequest) ([]models.Provider, error) {
	if len(ids) == 0 {
		return []models.Provider{}, nil
	}
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := `SELECT ` + providerColumns + providerJoins + `
		WHERE pp.is_verified = TRUE AND pp.is_active = TRUE
		AND pp.id IN (` + strings.Join(placeholders, ", ") + `)`
	filters, args := searchFilters(req, args)
	query += filters

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	providers := []models.Provider{}
	for rows.Next() {
		p, err := scanProvider(rows)
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	return providers, rows.Err()
}

func (r *ProviderRepository) Dashboard(ctx context.Context, providerID int) (models.ProviderDashboard, error) {
	var d models.ProviderDashboard
	err := r.DB.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'confirmed'),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*) FILTER (WHERE status = 'cancelled'),
			COALESCE(SUM(total_price) FILTER (WHERE status = 'completed'), 0)
		FROM bookings
		WHERE provider_id = $1
	`, providerID).Scan(&d.TotalBookings, &d.PendingBookings, &d.ConfirmedBookings,
		&d.CompletedBookings, &d.CancelledBookings, &d.TotalEarnings)
	if err != nil {
		return d, err
	}
	d.AvgRating = getAverageRating(ctx, r.DB, providerID)
	d.TotalReviews = getReviewsCount(ctx, r.DB, providerID)
	return d, nil
}

func (r *ProviderRepository) AdminDashboard(ctx context.Context) (models.AdminDashboard, error) {
	var d models.AdminDashboard
	err := r.DB.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM provider_profiles),
			(SELECT COUNT(*) FROM provider_profiles WHERE is_verified = FALSE AND is_active = TRUE),
			(SELECT COUNT(*) FROM bookings),
			(SELECT COUNT(*) FROM bookings WHERE status = 'completed'),
			(SELECT COUNT(*) FROM reviews),
			(SELECT COALESCE(SUM(total_price), 0) FROM bookings WHERE status = 'completed')
	`).Scan(&d.TotalUsers, &d.TotalProviders, &d.PendingProviders,
		&d.TotalBookings, &d.CompletedBookings, &d.TotalReviews, &d.TotalRevenue)
	return d, err
}
