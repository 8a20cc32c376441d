package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tendant/simple-cms/internal/domain"
	"github.com/tendant/simple-cms/internal/repository"
)

// CreateCategoryRequest carries the fields of a new category
type CreateCategoryRequest struct {
	Name         string
	AllowsImages bool
	AllowsVideos bool
	AllowsTexts  bool
}

// CategoryService handles category operations
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
	}
}

// CreateCategory creates a category with a unique name
func (s *CategoryService) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*domain.Ack, error) {
	if req.Name == "" {
		return nil, domain.ErrMissingCategoryName
	}

	_, err := s.categoryRepo.GetByName(ctx, req.Name)
	switch {
	case err == nil:
		return nil, domain.ErrDuplicateCategory
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("failed to look up category: %w", err)
	}

	now := time.Now().UTC()
	category := &domain.Category{
		Name:         req.Name,
		AllowsImages: req.AllowsImages,
		AllowsVideos: req.AllowsVideos,
		AllowsTexts:  req.AllowsTexts,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.ErrDuplicateCategory
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &domain.Ack{Message: "Category created successfully"}, nil
}

// ListCategories returns every category, unpaginated
func (s *CategoryService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []*domain.Category{}
	}
	return categories, nil
}
