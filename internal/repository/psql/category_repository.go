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

// PSQLCategoryRepository implements the CategoryRepository interface
type PSQLCategoryRepository struct {
	BaseRepository
}

// NewPSQLCategoryRepository creates a new PostgreSQL category repository
func NewPSQLCategoryRepository(db DBTX) *PSQLCategoryRepository {
	return &PSQLCategoryRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

const categoryColumns = `id, name, allows_images, allows_videos, allows_texts, created_at, updated_at`

// Create implements CategoryRepository.Create
func (r *PSQLCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	query := `
		INSERT INTO cms.categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	id := uuid.New()
	now := time.Now().UTC()
	if category.CreatedAt.IsZero() {
		category.CreatedAt = now
	}
	if category.UpdatedAt.IsZero() {
		category.UpdatedAt = now
	}

	_, err := r.db.Exec(ctx, query,
		id,
		category.Name,
		category.AllowsImages,
		category.AllowsVideos,
		category.AllowsTexts,
		category.CreatedAt,
		category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}

	category.ID = id.String()
	return nil
}

// Get implements CategoryRepository.Get
func (r *PSQLCategoryRepository) Get(ctx context.Context, id string) (*domain.Category, error) {
	key, ok := parseID(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return scanCategory(r.db.QueryRow(ctx, `SELECT `+categoryColumns+` FROM cms.categories WHERE id = $1`, key))
}

// GetByName implements CategoryRepository.GetByName
func (r *PSQLCategoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	return scanCategory(r.db.QueryRow(ctx, `SELECT `+categoryColumns+` FROM cms.categories WHERE name = $1`, name))
}

// List implements CategoryRepository.List
func (r *PSQLCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT `+categoryColumns+` FROM cms.categories ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []*domain.Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var id uuid.UUID
	category := &domain.Category{}
	err := row.Scan(
		&id,
		&category.Name,
		&category.AllowsImages,
		&category.AllowsVideos,
		&category.AllowsTexts,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	category.ID = id.String()
	return category, nil
}
