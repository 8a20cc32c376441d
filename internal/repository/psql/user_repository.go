package psql

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tendant/simple-cms/internal/domain"
	"github.com/tendant/simple-cms/internal/repository"
)

// PSQLUserRepository implements the UserRepository interface
type PSQLUserRepository struct {
	BaseRepository
}

// NewPSQLUserRepository creates a new PostgreSQL user repository
func NewPSQLUserRepository(db DBTX) *PSQLUserRepository {
	return &PSQLUserRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

const userColumns = `id, username, email, password_hash, role, created_at, updated_at`

// Create implements UserRepository.Create
func (r *PSQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO cms.users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	id := uuid.New()
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}

	_, err := r.db.Exec(ctx, query,
		id,
		user.Username,
		user.Email,
		user.PasswordHash,
		string(user.Role),
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}

	user.ID = id.String()
	return nil
}

// Get implements UserRepository.Get
func (r *PSQLUserRepository) Get(ctx context.Context, id string) (*domain.User, error) {
	key, ok := parseID(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.getOne(ctx, `SELECT `+userColumns+` FROM cms.users WHERE id = $1`, key)
}

// GetByEmail implements UserRepository.GetByEmail
func (r *PSQLUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM cms.users WHERE email = $1`, email)
}

// ExistsByUsernameOrEmail implements UserRepository.ExistsByUsernameOrEmail
func (r *PSQLUserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM cms.users WHERE username = $1 OR email = $2)`,
		username, email,
	).Scan(&exists)
	return exists, err
}

func (r *PSQLUserRepository) getOne(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	var (
		id   uuid.UUID
		role string
	)
	user := &domain.User{}
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&id,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	user.ID = id.String()
	user.Role = domain.Role(role)
	return user, nil
}
