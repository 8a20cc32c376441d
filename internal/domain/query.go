package domain

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Sortable content fields
const (
	SortByTitle     = "title"
	SortByType      = "type"
	SortByCreatedAt = "createdAt"
	SortByUpdatedAt = "updatedAt"
)

// IsSortable reports whether field can be used as a content sort key
func IsSortable(field string) bool {
	switch field {
	case SortByTitle, SortByType, SortByCreatedAt, SortByUpdatedAt:
		return true
	}
	return false
}

// ContentFilter narrows a content listing. Empty fields match everything.
// Type is matched exactly, so an unknown tag yields an empty result.
type ContentFilter struct {
	CategoryID string
	CreatorID  string
	Type       string
}

// SortField is one key of a listing order
type SortField struct {
	Field string
	Desc  bool
}

// Pagination selects one page of a listing, 1-based
type Pagination struct {
	Page  int
	Limit int
}

// Normalize replaces non-positive values with the defaults
func (p Pagination) Normalize() Pagination {
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	return p
}

// Skip is the number of records before the page. It saturates at
// math.MaxInt instead of wrapping for pages far past any real result.
func (p Pagination) Skip() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// PageInfo describes where a page sits in the full result
type PageInfo struct {
	TotalCount  int64 `json:"totalCount"`
	CurrentPage int   `json:"currentPage"`
	TotalPages  int64 `json:"totalPages"`
}

// TotalPages is ceil(total/limit)
func TotalPages(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	l := int64(limit)
	return (total + l - 1) / l
}

// ContentPage is the combined result of a content listing
type ContentPage struct {
	Contents   []*ContentView        `json:"contents"`
	Counts     map[ContentType]int64 `json:"counts"`
	Pagination PageInfo              `json:"pagination"`
}

// Ack is the acknowledgment returned by mutating operations
type Ack struct {
	Message string `json:"message"`
}
