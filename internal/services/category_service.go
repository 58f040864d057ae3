package services

import (
	"context"
	"strings"

	"lokalBack/internal/models"
	"lokalBack/internal/repositories"
	"lokalBack/utils"
)

type CategoryService struct {
	CategoryRepo *repositories.CategoryRepository
	Uploader     *utils.Uploader
}

func (s *CategoryService) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return models.Category{}, models.ErrInvalidRange
	}
	return s.CategoryRepo.CreateCategory(ctx, category)
}

func (s *CategoryService) GetCategoryByID(ctx context.Context, id int) (models.Category, error) {
	return s.CategoryRepo.GetCategoryByID(ctx, id)
}

func (s *CategoryService) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	return s.CategoryRepo.GetAllCategories(ctx)
}

func (s *CategoryService) UpdateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return models.Category{}, models.ErrInvalidRange
	}
	return s.CategoryRepo.UpdateCategory(ctx, category)
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id int) error {
	return s.CategoryRepo.DeleteCategory(ctx, id)
}

// UploadIcon stores the icon in object storage and attaches the URL to the
// category.
func (s *CategoryService) UploadIcon(ctx context.Context, id int, file []byte, fileName, contentType string) (models.Category, error) {
	category, err := s.CategoryRepo.GetCategoryByID(ctx, id)
	if err != nil {
		return models.Category{}, err
	}
	url, err := s.Uploader.UploadFile(file, fileName, "category-icons", contentType)
	if err != nil {
		return models.Category{}, err
	}
	category.IconURL = &url
	return s.CategoryRepo.UpdateCategory(ctx, category)
}
