package models

import "time"

type Review struct {
	ID           int       `json:"id"`
	BookingID    int       `json:"booking_id"`
	CustomerID   int       `json:"customer_id"`
	ProviderID   int       `json:"provider_id"`
	Rating       int       `json:"rating"`
	Comment      *string   `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	CustomerName *string   `json:"customer_name,omitempty"`
}

type ReviewCreateRequest struct {
	BookingID int     `json:"booking_id"`
	Rating    int     `json:"rating"`
	Comment   *string `json:"comment,omitempty"`
}
