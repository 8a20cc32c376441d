package repository

import (
	"context"
	"errors"

	"github.com/tendant/simple-cms/internal/domain"
)

var (
	// ErrNotFound is returned when a record does not exist or its id is malformed
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a unique constraint rejects a write
	ErrDuplicate = errors.New("duplicate record")
)

// UserRepository defines the interface for user operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Get(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}

// CategoryRepository defines the interface for category operations
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	Get(ctx context.Context, id string) (*domain.Category, error)
	GetByName(ctx context.Context, name string) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
}

// ContentQuery is a filtered, ordered window over the content collection
type ContentQuery struct {
	Filter domain.ContentFilter
	Sort   []domain.SortField
	Skip   int
	Limit  int
}

// ContentRepository defines the interface for content operations
type ContentRepository interface {
	Create(ctx context.Context, content *domain.Content) error
	Get(ctx context.Context, id string) (*domain.Content, error)
	Update(ctx context.Context, content *domain.Content) error
	Delete(ctx context.Context, id string) error

	// Count returns the number of contents matching filter
	Count(ctx context.Context, filter domain.ContentFilter) (int64, error)
	// Find returns one window of matching contents with category and creator resolved
	Find(ctx context.Context, query ContentQuery) ([]*domain.ContentView, error)
	// CountByType groups matching contents by type tag
	CountByType(ctx context.Context, filter domain.ContentFilter) (map[domain.ContentType]int64, error)
}
