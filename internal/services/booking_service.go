package services

import (
	"context"
	"strings"

	"lokalBack/internal/models"
	"lokalBack/internal/repositories"
)

type BookingService struct {
	BookingRepo  *repositories.BookingRepository
	ProviderRepo *repositories.ProviderRepository
}

func (s *BookingService) CreateBooking(ctx context.Context, customerID int, req models.BookingCreateRequest) (models.Booking, error) {
	if strings.TrimSpace(req.ServiceAddress) == "" {
		return models.Booking{}, models.ErrInvalidRange
	}
	return s.BookingRepo.CreateBooking(ctx, customerID, req)
}

// GetBooking returns the booking only to its customer, its provider or an
// admin.
func (s *BookingService) GetBooking(ctx context.Context, id, userID int, role string) (models.Booking, error) {
	b, err := s.BookingRepo.GetByID(ctx, id)
	if err != nil {
		return models.Booking{}, err
	}
	if role == models.RoleAdmin {
		return b, nil
	}
	if b.CustomerID == userID {
		return b, nil
	}
	provider, err := s.ProviderRepo.GetByUserID(ctx, userID)
	if err == nil && b.ProviderID == provider.ID {
		return b, nil
	}
	return models.Booking{}, models.ErrForbidden
}

func (s *BookingService) ListForCustomer(ctx context.Context, customerID int, status string) ([]models.Booking, error) {
	return s.BookingRepo.ListForCustomer(ctx, customerID, status)
}

func (s *BookingService) ListForProvider(ctx context.Context, userID int, status string) ([]models.Booking, error) {
	provider, err := s.ProviderRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.BookingRepo.ListForProvider(ctx, provider.ID, status)
}

func (s *BookingService) ListAll(ctx context.Context, status string, page, pageSize int) (models.BookingListResponse, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > maxSearchSize {
		pageSize = defaultSearchSize
	}
	return s.BookingRepo.ListAll(ctx, status, page, pageSize)
}

func (s *BookingService) providerID(ctx context.Context, userID int) (int, error) {
	provider, err := s.ProviderRepo.GetByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return provider.ID, nil
}

func (s *BookingService) Accept(ctx context.Context, bookingID, userID int) (models.Booking, error) {
	providerID, err := s.providerID(ctx, userID)
	if err != nil {
		return models.Booking{}, err
	}
	return s.BookingRepo.Accept(ctx, bookingID, providerID)
}

func (s *BookingService) Reject(ctx context.Context, bookingID, userID int) (models.Booking, error) {
	providerID, err := s.providerID(ctx, userID)
	if err != nil {
		return models.Booking{}, err
	}
	return s.BookingRepo.Reject(ctx, bookingID, providerID)
}

func (s *BookingService) Cancel(ctx context.Context, bookingID, customerID int) (models.Booking, error) {
	return s.BookingRepo.Cancel(ctx, bookingID, customerID)
}

func (s *BookingService) Reschedule(ctx context.Context, bookingID, userID int, req models.BookingRescheduleRequest) (models.Booking, error) {
	providerID, err := s.providerID(ctx, userID)
	if err != nil {
		return models.Booking{}, err
	}
	return s.BookingRepo.Reschedule(ctx, bookingID, providerID, req.NewScheduledFor)
}

func (s *BookingService) Complete(ctx context.Context, bookingID, userID int) (models.Booking, error) {
	providerID, err := s.providerID(ctx, userID)
	if err != nil {
		return models.Booking{}, err
	}
	return s.BookingRepo.Complete(ctx, bookingID, providerID)
}
