package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/tendant/simple-cms/internal/domain"
	"github.com/tendant/simple-cms/internal/repository"
)

type contentEntry struct {
	content domain.Content
	seq     uint64
}

// ContentRepository is an in-memory implementation of the ContentRepository interface.
// Category and creator references are resolved through the given repositories.
type ContentRepository struct {
	mu       sync.RWMutex
	contents map[string]*contentEntry
	seq      uint64

	users      repository.UserRepository
	categories repository.CategoryRepository
}

// NewContentRepository creates a new in-memory content repository
func NewContentRepository(users repository.UserRepository, categories repository.CategoryRepository) repository.ContentRepository {
	return &ContentRepository{
		contents:   make(map[string]*contentEntry),
		users:      users,
		categories: categories,
	}
}

// Create adds a new content to the repository
func (r *ContentRepository) Create(ctx context.Context, content *domain.Content) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if content.ID == "" {
		content.ID = uuid.NewString()
	}
	if _, exists := r.contents[content.ID]; exists {
		return repository.ErrDuplicate
	}

	r.seq++
	r.contents[content.ID] = &contentEntry{content: *content, seq: r.seq}
	return nil
}

// Get retrieves a content by ID
func (r *ContentRepository) Get(ctx context.Context, id string) (*domain.Content, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, exists := r.contents[id]
	if !exists {
		return nil, repository.ErrNotFound
	}
	c := entry.content
	return &c, nil
}

// Update replaces an existing content, keeping its position in natural order
func (r *ContentRepository) Update(ctx context.Context, content *domain.Content) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.contents[content.ID]
	if !exists {
		return repository.ErrNotFound
	}

	entry.content = *content
	return nil
}

// Delete removes a content by ID
func (r *ContentRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.contents[id]; !exists {
		return repository.ErrNotFound
	}

	delete(r.contents, id)
	return nil
}

// Count returns the number of contents matching filter
func (r *ContentRepository) Count(ctx context.Context, filter domain.ContentFilter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.match(filter))), nil
}

// Find returns one sorted window of matching contents with references resolved
func (r *ContentRepository) Find(ctx context.Context, query repository.ContentQuery) ([]*domain.ContentView, error) {
	r.mu.RLock()
	entries := r.match(query.Filter)
	r.mu.RUnlock()

	sortEntries(entries, query.Sort)

	if query.Skip > 0 {
		if query.Skip >= len(entries) {
			entries = nil
		} else {
			entries = entries[query.Skip:]
		}
	}
	if query.Limit > 0 && len(entries) > query.Limit {
		entries = entries[:query.Limit]
	}

	views := make([]*domain.ContentView, 0, len(entries))
	for _, e := range entries {
		view, err := r.resolve(ctx, e.content)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// CountByType groups matching contents by type tag
func (r *ContentRepository) CountByType(ctx context.Context, filter domain.ContentFilter) (map[domain.ContentType]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[domain.ContentType]int64)
	for _, e := range r.match(filter) {
		counts[e.content.Type()]++
	}
	return counts, nil
}

// match returns copies of the entries matching filter. Callers hold the read lock.
func (r *ContentRepository) match(filter domain.ContentFilter) []contentEntry {
	var result []contentEntry
	for _, e := range r.contents {
		c := e.content
		if filter.CategoryID != "" && c.CategoryID != filter.CategoryID {
			continue
		}
		if filter.CreatorID != "" && c.CreatorID != filter.CreatorID {
			continue
		}
		if filter.Type != "" && string(c.Type()) != filter.Type {
			continue
		}
		result = append(result, *e)
	}
	return result
}

func (r *ContentRepository) resolve(ctx context.Context, c domain.Content) (*domain.ContentView, error) {
	view := &domain.ContentView{Content: c}

	category, err := r.categories.Get(ctx, c.CategoryID)
	switch {
	case err == nil:
		view.Category = &domain.CategoryRef{ID: category.ID, Name: category.Name}
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	creator, err := r.users.Get(ctx, c.CreatorID)
	switch {
	case err == nil:
		view.Creator = &domain.UserRef{ID: creator.ID, Username: creator.Username}
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	return view, nil
}

// sortEntries orders by the requested keys, then by insertion order
func sortEntries(entries []contentEntry, keys []domain.SortField) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := &entries[i].content, &entries[j].content
		for _, key := range keys {
			cmp := compareField(a, b, key.Field)
			if cmp == 0 {
				continue
			}
			if key.Desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return entries[i].seq < entries[j].seq
	})
}

func compareField(a, b *domain.Content, field string) int {
	switch field {
	case domain.SortByTitle:
		return strings.Compare(a.Title, b.Title)
	case domain.SortByType:
		return strings.Compare(string(a.Type()), string(b.Type()))
	case domain.SortByCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case domain.SortByUpdatedAt:
		return a.UpdatedAt.Compare(b.UpdatedAt)
	}
	return 0
}
