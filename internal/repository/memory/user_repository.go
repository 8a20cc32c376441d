package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/tendant/simple-cms/internal/domain"
	"github.com/tendant/simple-cms/internal/repository"
)

// UserRepository is an in-memory implementation of the UserRepository interface
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

// NewUserRepository creates a new in-memory user repository
func NewUserRepository() repository.UserRepository {
	return &UserRepository{
		users: make(map[string]*domain.User),
	}
}

// Create adds a new user, rejecting a taken username or email
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

// Get retrieves a user by ID
func (r *UserRepository) Get(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[id]
	if !exists {
		return nil, repository.ErrNotFound
	}
	u := *user
	return &u, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			u := *user
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

// ExistsByUsernameOrEmail reports whether either value is taken
func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Username == username || user.Email == email {
			return true, nil
		}
	}
	return false, nil
}
