package models

import (
	"errors"
)

// Guard failures are returned to handlers as typed errors and mapped to
// client-facing statuses there. Storage failures stay untyped.
var (
	ErrInvalidRange        = errors.New("models: window start must be before end")
	ErrOverlapConflict     = errors.New("models: availability window overlaps an existing one")
	ErrScheduleConflict    = errors.New("models: provider is already booked at this time")
	ErrInvalidTransition   = errors.New("models: booking status transition not allowed")
	ErrForbidden           = errors.New("models: actor is not allowed to perform this action")
	ErrOutOfAvailability   = errors.New("models: provider is not available at this time")
	ErrPastSchedule        = errors.New("models: scheduled time must be in the future")
	ErrBookingNotCompleted = errors.New("models: booking is not completed")
	ErrDuplicateReview     = errors.New("models: review already exists for this booking")
	ErrInvalidRating       = errors.New("models: rating must be between 1 and 5")
	ErrCategoryInUse       = errors.New("models: category is referenced by providers")

	ErrUserNotFound     = errors.New("models: user not found")
	ErrProviderNotFound = errors.New("models: provider not found")
	ErrBookingNotFound  = errors.New("models: booking not found")
	ErrWindowNotFound   = errors.New("models: availability window not found")
	ErrCategoryNotFound = errors.New("models: category not found")
	ErrReviewNotFound   = errors.New("models: review not found")

	ErrInvalidCredentials = errors.New("models: invalid credentials")
	ErrDuplicateEmail     = errors.New("models: duplicate email")
	ErrDuplicatePhone     = errors.New("models: duplicate phone number")
)
