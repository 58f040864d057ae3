package services

import (
	"context"

	"lokalBack/internal/models"
	"lokalBack/internal/repositories"
)

type AvailabilityService struct {
	AvailabilityRepo *repositories.AvailabilityRepository
	ProviderRepo     *repositories.ProviderRepository
}

func (s *AvailabilityService) ListForProvider(ctx context.Context, providerID int) ([]models.AvailabilityWindow, error) {
	return s.AvailabilityRepo.ListForProvider(ctx, providerID)
}

func (s *AvailabilityService) AddWindow(ctx context.Context, userID int, w models.AvailabilityWindow) (models.AvailabilityWindow, error) {
	provider, err := s.ProviderRepo.GetByUserID(ctx, userID)
	if err != nil {
		return models.AvailabilityWindow{}, err
	}
	if w.DayOfWeek < 0 || w.DayOfWeek > 6 {
		return models.AvailabilityWindow{}, models.ErrInvalidRange
	}
	w.ProviderID = provider.ID
	return s.AvailabilityRepo.AddWindow(ctx, w)
}

func (s *AvailabilityService) UpdateWindow(ctx context.Context, userID, windowID int, req models.AvailabilityUpdateRequest) (models.AvailabilityWindow, error) {
	provider, err := s.ProviderRepo.GetByUserID(ctx, userID)
	if err != nil {
		return models.AvailabilityWindow{}, err
	}
	return s.AvailabilityRepo.UpdateWindow(ctx, windowID, provider.ID, req)
}

func (s *AvailabilityService) RemoveWindow(ctx context.Context, userID, windowID int) error {
	provider, err := s.ProviderRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	return s.AvailabilityRepo.RemoveWindow(ctx, windowID, provider.ID)
}
