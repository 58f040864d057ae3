package models

import "time"

type Booking struct {
	ID             int        `json:"id"`
	CustomerID     int        `json:"customer_id"`
	ProviderID     int        `json:"provider_id"`
	Status         string     `json:"status"`
	ScheduledFor   time.Time  `json:"scheduled_for"`
	ServiceAddress string     `json:"service_address"`
	TotalPrice     *float64   `json:"total_price,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`

	CustomerName *string `json:"customer_name,omitempty"`
	ProviderName *string `json:"provider_name,omitempty"`
}

type BookingCreateRequest struct {
	ProviderID     int       `json:"provider_id"`
	ScheduledFor   time.Time `json:"scheduled_for"`
	ServiceAddress string    `json:"service_address"`
	Notes          *string   `json:"notes,omitempty"`
}

type BookingRescheduleRequest struct {
	NewScheduledFor time.Time `json:"new_scheduled_for"`
}

type BookingListResponse struct {
	Bookings []Booking `json:"bookings"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
}
