package models

import "time"

type Provider struct {
	ID           int        `json:"id"`
	UserID       int        `json:"user_id"`
	CategoryID   *int       `json:"category_id,omitempty"`
	CategoryName *string    `json:"category_name,omitempty"`
	Bio          *string    `json:"bio,omitempty"`
	BasePrice    *float64   `json:"base_price,omitempty"`
	IsVerified   bool       `json:"is_verified"`
	IsActive     bool       `json:"is_active"`
	Latitude     *float64   `json:"latitude,omitempty"`
	Longitude    *float64   `json:"longitude,omitempty"`
	DocumentURL  *string    `json:"document_url,omitempty"`
	AvgRating    float64    `json:"avg_rating"`
	ReviewsCount int        `json:"reviews_count"`
	ProviderName string     `json:"provider_name,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

type ProviderUpdateRequest struct {
	CategoryID *int     `json:"category_id,omitempty"`
	Bio        *string  `json:"bio,omitempty"`
	BasePrice  *float64 `json:"base_price,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

type ProviderSearchRequest struct {
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	RadiusKm   float64  `json:"radius_km"`
	CategoryID *int     `json:"category_id,omitempty"`
	MinRating  *float64 `json:"min_rating,omitempty"`
	MinPrice   *float64 `json:"min_price,omitempty"`
	MaxPrice   *float64 `json:"max_price,omitempty"`
	Limit      int      `json:"limit"`
	Offset     int      `json:"offset"`
}

type ProviderSearchResult struct {
	Provider
	DistanceKm float64 `json:"distance_km"`
}

// ProviderProfile is the public profile page: the provider row plus the
// weekly schedule and the most recent reviews.
type ProviderProfile struct {
	Provider
	Availability []AvailabilityWindow `json:"availability"`
	Reviews      []Review             `json:"reviews"`
}

type ProviderDashboard struct {
	TotalBookings     int       `json:"total_bookings"`
	PendingBookings   int       `json:"pending_bookings"`
	ConfirmedBookings int       `json:"confirmed_bookings"`
	CompletedBookings int       `json:"completed_bookings"`
	CancelledBookings int       `json:"cancelled_bookings"`
	TotalEarnings     float64   `json:"total_earnings"`
	AvgRating         float64   `json:"avg_rating"`
	TotalReviews      int       `json:"total_reviews"`
	Upcoming          []Booking `json:"upcoming_bookings"`
	RecentReviews     []Review  `json:"recent_reviews"`
}

type AdminDashboard struct {
	TotalUsers        int     `json:"total_users"`
	TotalProviders    int     `json:"total_providers"`
	PendingProviders  int     `json:"pending_providers"`
	TotalBookings     int     `json:"total_bookings"`
	CompletedBookings int     `json:"completed_bookings"`
	TotalReviews      int     `json:"total_reviews"`
	TotalRevenue      float64 `json:"total_revenue"`
}
