package psql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tendant/simple-cms/internal/domain"
	"github.com/tendant/simple-cms/internal/repository"
)

// PSQLContentRepository implements the ContentRepository interface
type PSQLContentRepository struct {
	BaseRepository
}

// NewPSQLContentRepository creates a new PostgreSQL content repository
func NewPSQLContentRepository(db DBTX) *PSQLContentRepository {
	return &PSQLContentRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

var sortColumns = map[string]string{
	domain.SortByTitle:     "c.title",
	domain.SortByType:      "c.type",
	domain.SortByCreatedAt: "c.created_at",
	domain.SortByUpdatedAt: "c.updated_at",
}

// Create implements ContentRepository.Create
func (r *PSQLContentRepository) Create(ctx context.Context, content *domain.Content) error {
	query := `
		INSERT INTO cms.contents (
			id, title, type, url, text, image_url, category_id, creator_id, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)
	`

	categoryID, ok := parseID(content.CategoryID)
	if !ok {
		return fmt.Errorf("invalid category id %q", content.CategoryID)
	}
	creatorID, ok := parseID(content.CreatorID)
	if !ok {
		return fmt.Errorf("invalid creator id %q", content.CreatorID)
	}

	id := uuid.New()
	now := time.Now().UTC()
	if content.CreatedAt.IsZero() {
		content.CreatedAt = now
	}
	if content.UpdatedAt.IsZero() {
		content.UpdatedAt = now
	}

	url, text, imageURL := domain.PayloadFields(content.Payload)
	_, err := r.db.Exec(ctx, query,
		id,
		content.Title,
		string(content.Type()),
		url,
		text,
		imageURL,
		categoryID,
		creatorID,
		content.CreatedAt,
		content.UpdatedAt,
	)
	if err != nil {
		return err
	}

	content.ID = id.String()
	return nil
}

// Get implements ContentRepository.Get
func (r *PSQLContentRepository) Get(ctx context.Context, id string) (*domain.Content, error) {
	key, ok := parseID(id)
	if !ok {
		return nil, repository.ErrNotFound
	}

	query := `
		SELECT
			c.id, c.title, c.type, c.url, c.text, c.image_url,
			c.category_id, c.creator_id, c.created_at, c.updated_at
		FROM cms.contents c
		WHERE c.id = $1
	`

	content, err := scanContent(r.db.QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return content, nil
}

// Update implements ContentRepository.Update
func (r *PSQLContentRepository) Update(ctx context.Context, content *domain.Content) error {
	query := `
		UPDATE cms.contents
		SET
			title = $2,
			type = $3,
			url = $4,
			text = $5,
			image_url = $6,
			category_id = $7,
			updated_at = $8
		WHERE id = $1
	`

	key, ok := parseID(content.ID)
	if !ok {
		return repository.ErrNotFound
	}
	categoryID, ok := parseID(content.CategoryID)
	if !ok {
		return fmt.Errorf("invalid category id %q", content.CategoryID)
	}

	url, text, imageURL := domain.PayloadFields(content.Payload)
	tag, err := r.db.Exec(ctx, query,
		key,
		content.Title,
		string(content.Type()),
		url,
		text,
		imageURL,
		categoryID,
		content.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete implements ContentRepository.Delete
func (r *PSQLContentRepository) Delete(ctx context.Context, id string) error {
	key, ok := parseID(id)
	if !ok {
		return repository.ErrNotFound
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM cms.contents WHERE id = $1`, key)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Count implements ContentRepository.Count
func (r *PSQLContentRepository) Count(ctx context.Context, filter domain.ContentFilter) (int64, error) {
	where, args, ok := buildWhere(filter)
	if !ok {
		return 0, nil
	}

	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM cms.contents c`+where, args...).Scan(&total)
	return total, err
}

// Find implements ContentRepository.Find
func (r *PSQLContentRepository) Find(ctx context.Context, q repository.ContentQuery) ([]*domain.ContentView, error) {
	views := []*domain.ContentView{}

	where, args, ok := buildWhere(q.Filter)
	if !ok {
		return views, nil
	}

	var sb strings.Builder
	sb.WriteString(`
		SELECT
			c.id, c.title, c.type, c.url, c.text, c.image_url,
			c.category_id, c.creator_id, c.created_at, c.updated_at,
			cat.name, u.username
		FROM cms.contents c
		LEFT JOIN cms.categories cat ON cat.id = c.category_id
		LEFT JOIN cms.users u ON u.id = c.creator_id`)
	sb.WriteString(where)
	sb.WriteString(buildOrderBy(q.Sort))
	if q.Limit > 0 {
		args = append(args, q.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}
	if q.Skip > 0 {
		args = append(args, q.Skip)
		fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var categoryName, username *string
		view, err := scanContentView(rows, &categoryName, &username)
		if err != nil {
			return nil, err
		}
		if categoryName != nil {
			view.Category = &domain.CategoryRef{ID: view.CategoryID, Name: *categoryName}
		}
		if username != nil {
			view.Creator = &domain.UserRef{ID: view.CreatorID, Username: *username}
		}
		views = append(views, view)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}

// CountByType implements ContentRepository.CountByType
func (r *PSQLContentRepository) CountByType(ctx context.Context, filter domain.ContentFilter) (map[domain.ContentType]int64, error) {
	counts := make(map[domain.ContentType]int64)

	where, args, ok := buildWhere(filter)
	if !ok {
		return counts, nil
	}

	rows, err := r.db.Query(ctx, `SELECT c.type, COUNT(*) FROM cms.contents c`+where+` GROUP BY c.type`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			t     string
			count int64
		)
		if err := rows.Scan(&t, &count); err != nil {
			return nil, err
		}
		counts[domain.ContentType(t)] = count
	}

	return counts, rows.Err()
}

// buildWhere renders filter as a WHERE clause. ok is false when a malformed
// id makes the filter unsatisfiable.
func buildWhere(filter domain.ContentFilter) (clause string, args []interface{}, ok bool) {
	var conds []string

	if filter.CategoryID != "" {
		id, valid := parseID(filter.CategoryID)
		if !valid {
			return "", nil, false
		}
		args = append(args, id)
		conds = append(conds, fmt.Sprintf("c.category_id = $%d", len(args)))
	}
	if filter.CreatorID != "" {
		id, valid := parseID(filter.CreatorID)
		if !valid {
			return "", nil, false
		}
		args = append(args, id)
		conds = append(conds, fmt.Sprintf("c.creator_id = $%d", len(args)))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		conds = append(conds, fmt.Sprintf("c.type = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", args, true
	}
	return " WHERE " + strings.Join(conds, " AND "), args, true
}

func buildOrderBy(keys []domain.SortField) string {
	var parts []string
	for _, key := range keys {
		column, ok := sortColumns[key.Field]
		if !ok {
			continue
		}
		if key.Desc {
			column += " DESC"
		}
		parts = append(parts, column)
	}
	parts = append(parts, "c.created_at", "c.id")
	return " ORDER BY " + strings.Join(parts, ", ")
}

func scanContent(row pgx.Row) (*domain.Content, error) {
	view, err := scanContentView(row)
	if err != nil {
		return nil, err
	}
	return &view.Content, nil
}

func scanContentView(row pgx.Row, extra ...interface{}) (*domain.ContentView, error) {
	var (
		id, categoryID, creatorID uuid.UUID
		typ                       string
		url, text, imageURL       *string
	)
	view := &domain.ContentView{}
	dest := []interface{}{
		&id,
		&view.Title,
		&typ,
		&url,
		&text,
		&imageURL,
		&categoryID,
		&creatorID,
		&view.CreatedAt,
		&view.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	payload, err := domain.PayloadFromFields(domain.ContentType(typ), url, text, imageURL)
	if err != nil {
		return nil, fmt.Errorf("content %s: %w", id, err)
	}

	view.ID = id.String()
	view.Payload = payload
	view.CategoryID = categoryID.String()
	view.CreatorID = creatorID.String()
	return view, nil
}
