package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tendant/simple-cms/internal/auth"
	"github.com/tendant/simple-cms/internal/domain"
	"github.com/tendant/simple-cms/internal/repository"
)

var (
	writerRoles = []domain.Role{domain.RoleAdmin, domain.RoleCreator}
	adminRoles  = []domain.Role{domain.RoleAdmin}
)

// ContentInput is the client-supplied part of a content item. The creator
// is never taken from here.
type ContentInput struct {
	Title      string
	Type       string
	URL        string
	Text       string
	ImageURL   string
	CategoryID string
}

// ContentService handles content-related operations
type ContentService struct {
	contentRepo  repository.ContentRepository
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
	now          func() time.Time
}

// NewContentService creates a new content service
func NewContentService(
	contentRepo repository.ContentRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
) *ContentService {
	return &ContentService{
		contentRepo:  contentRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// CreateContent validates in and stores it with caller as creator
func (s *ContentService) CreateContent(ctx context.Context, caller auth.Principal, in ContentInput) (*domain.Ack, error) {
	if err := auth.Authorize(caller, writerRoles, nil); err != nil {
		return nil, err
	}

	payload, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}

	now := s.now()
	content := &domain.Content{
		Title:      in.Title,
		Payload:    payload,
		CategoryID: in.CategoryID,
		CreatorID:  caller.UserID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.contentRepo.Create(ctx, content); err != nil {
		return nil, fmt.Errorf("failed to create content: %w", err)
	}

	slog.Debug("Content created", "content_id", content.ID, "creator_id", content.CreatorID)
	return &domain.Ack{Message: "Content created successfully"}, nil
}

// UpdateContent overwrites title, payload and category of a content owned by caller.
// Ownership is checked before validation and applies to admins as well.
func (s *ContentService) UpdateContent(ctx context.Context, caller auth.Principal, id string, in ContentInput) (*domain.Ack, error) {
	content, err := s.getContent(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := auth.Authorize(caller, writerRoles, auth.OwnedBy(content.CreatorID)); err != nil {
		slog.Warn("Content update rejected", "content_id", id, "user_id", caller.UserID, "err", err)
		return nil, err
	}

	payload, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}

	content.Title = in.Title
	content.Payload = payload
	content.CategoryID = in.CategoryID
	content.UpdatedAt = s.now()

	if err := s.contentRepo.Update(ctx, content); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrContentNotFound
		}
		return nil, fmt.Errorf("failed to update content: %w", err)
	}

	return &domain.Ack{Message: "Content updated successfully"}, nil
}

// DeleteContent removes a content regardless of its creator
func (s *ContentService) DeleteContent(ctx context.Context, caller auth.Principal, id string) (*domain.Ack, error) {
	if err := auth.Authorize(caller, adminRoles, nil); err != nil {
		return nil, err
	}

	if _, err := s.getContent(ctx, id); err != nil {
		return nil, err
	}

	if err := s.contentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrContentNotFound
		}
		return nil, fmt.Errorf("failed to delete content: %w", err)
	}

	return &domain.Ack{Message: "Content deleted successfully"}, nil
}

// GetContent returns a single content with its category and creator resolved
func (s *ContentService) GetContent(ctx context.Context, id string) (*domain.ContentView, error) {
	content, err := s.getContent(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &domain.ContentView{Content: *content}

	category, err := s.categoryRepo.Get(ctx, content.CategoryID)
	switch {
	case err == nil:
		view.Category = &domain.CategoryRef{ID: category.ID, Name: category.Name}
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	creator, err := s.userRepo.Get(ctx, content.CreatorID)
	switch {
	case err == nil:
		view.Creator = &domain.UserRef{ID: creator.ID, Username: creator.Username}
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("failed to get creator: %w", err)
	}

	return view, nil
}

// ListContent returns one page of contents matching filter, the total
// count, and a per-type breakdown over the whole filtered set.
func (s *ContentService) ListContent(
	ctx context.Context,
	filter domain.ContentFilter,
	sort []domain.SortField,
	pagination domain.Pagination,
) (*domain.ContentPage, error) {
	page := pagination.Normalize()

	totalCount, err := s.contentRepo.Count(ctx, filter)
	if err != nil {
		slog.Error("Failed to count contents", "err", err)
		return nil, err
	}

	contents, err := s.contentRepo.Find(ctx, repository.ContentQuery{
		Filter: filter,
		Sort:   sortableFields(sort),
		Skip:   page.Skip(),
		Limit:  page.Limit,
	})
	if err != nil {
		slog.Error("Failed to find contents", "err", err)
		return nil, err
	}
	if contents == nil {
		contents = []*domain.ContentView{}
	}

	counts, err := s.contentRepo.CountByType(ctx, filter)
	if err != nil {
		slog.Error("Failed to count contents by type", "err", err)
		return nil, err
	}
	if counts == nil {
		counts = map[domain.ContentType]int64{}
	}

	return &domain.ContentPage{
		Contents: contents,
		Counts:   counts,
		Pagination: domain.PageInfo{
			TotalCount:  totalCount,
			CurrentPage: page.Page,
			TotalPages:  domain.TotalPages(totalCount, page.Limit),
		},
	}, nil
}

// validate checks the type tag, then the category, then the payload
func (s *ContentService) validate(ctx context.Context, in ContentInput) (domain.Payload, error) {
	contentType, err := domain.ParseContentType(in.Type)
	if err != nil {
		return nil, err
	}

	if in.CategoryID == "" {
		return nil, domain.ErrInvalidCategory
	}
	if _, err := s.categoryRepo.Get(ctx, in.CategoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrInvalidCategory
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	payload, err := domain.NewPayload(contentType, in.URL, in.Text, in.ImageURL)
	if err != nil {
		return nil, err
	}

	if in.Title == "" {
		return nil, domain.ErrMissingTitle
	}
	return payload, nil
}

func (s *ContentService) getContent(ctx context.Context, id string) (*domain.Content, error) {
	content, err := s.contentRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrContentNotFound
		}
		return nil, fmt.Errorf("failed to get content: %w", err)
	}
	return content, nil
}

func sortableFields(sort []domain.SortField) []domain.SortField {
	var out []domain.SortField
	for _, f := range sort {
		if domain.IsSortable(f.Field) {
			out = append(out, f)
		}
	}
	return out
}
