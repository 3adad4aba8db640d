package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"WebStarter/internal/model"
	"WebStarter/internal/repo"
)

var ErrCategoryExists = errors.New("category name already exists")

type CategoryService struct {
	repo repo.CategoryRepository
}

func NewCategoryService(r repo.CategoryRepository) *CategoryService {
	return &CategoryService{repo: r}
}

// CreateCategory creates a category with a unique name.
func (s *CategoryService) CreateCategory(ctx context.Context, name string) (*model.Category, error) {
	existing, err := s.repo.GetCategoryByName(ctx, name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCategoryExists
	}
	return s.repo.CreateCategory(ctx, &model.Category{Name: name})
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]repo.CategoryCount, error) {
	return s.repo.ListCategories(ctx)
}
