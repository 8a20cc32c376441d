package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/tendant/simple-cms/internal/domain"
	"github.com/tendant/simple-cms/internal/repository"
)

// CategoryRepository is an in-memory implementation of the CategoryRepository interface
type CategoryRepository struct {
	mu         sync.RWMutex
	categories map[string]*domain.Category
	order      []string
}

// NewCategoryRepository creates a new in-memory category repository
func NewCategoryRepository() repository.CategoryRepository {
	return &CategoryRepository{
		categories: make(map[string]*domain.Category),
	}
}

// Create adds a new category, rejecting a taken name
func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.categories {
		if c.Name == category.Name {
			return repository.ErrDuplicate
		}
	}

	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	stored := *category
	r.categories[category.ID] = &stored
	r.order = append(r.order, category.ID)
	return nil
}

// Get retrieves a category by ID
func (r *CategoryRepository) Get(ctx context.Context, id string) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	category, exists := r.categories[id]
	if !exists {
		return nil, repository.ErrNotFound
	}
	c := *category
	return &c, nil
}

// GetByName retrieves a category by its unique name
func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, category := range r.categories {
		if category.Name == name {
			c := *category
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

// List returns every category in insertion order
func (r *CategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Category, 0, len(r.order))
	for _, id := range r.order {
		c := *r.categories[id]
		result = append(result, &c)
	}
	return result, nil
}
