package services

import (
	"context"

	"lokalBack/internal/models"
	"lokalBack/internal/repositories"
)

type ReviewService struct {
	ReviewRepo *repositories.ReviewRepository
}

func (s *ReviewService) CreateReview(ctx context.Context, customerID int, req models.ReviewCreateRequest) (models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return models.Review{}, models.ErrInvalidRating
	}
	return s.ReviewRepo.CreateReview(ctx, customerID, req)
}

func (s *ReviewService) ListByProvider(ctx context.Context, providerID, limit, offset int) ([]models.Review, error) {
	if limit <= 0 || limit > maxSearchSize {
		limit = defaultSearchSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.ReviewRepo.ListByProvider(ctx, providerID, limit, offset)
}

func (s *ReviewService) ListByCustomer(ctx context.Context, customerID int) ([]models.Review, error) {
	return s.ReviewRepo.ListByCustomer(ctx, customerID)
}

func (s *ReviewService) ListAll(ctx context.Context, limit, offset int) ([]models.Review, error) {
	if limit <= 0 || limit > maxSearchSize {
		limit = defaultSearchSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.ReviewRepo.ListAll(ctx, limit, offset)
}

func (s *ReviewService) DeleteReview(ctx context.Context, id int) error {
	return s.ReviewRepo.DeleteReview(ctx, id)
}
