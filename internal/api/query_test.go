package api

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-cms/internal/domain"
)

func TestParseListQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  listQuery
	}{
		{
			name:  "defaults",
			query: "",
			want:  listQuery{Pagination: domain.Pagination{Page: 1, Limit: 10}},
		},
		{
			name:  "invalid paging falls back",
			query: "page=abc&limit=-4",
			want:  listQuery{Pagination: domain.Pagination{Page: 1, Limit: 10}},
		},
		{
			name:  "flat filters and sort list",
			query: "categoryId=c1&creatorId=u1&type=Image&sort=title,-createdAt&page=3&limit=5",
			want: listQuery{
				Filter: domain.ContentFilter{CategoryID: "c1", CreatorID: "u1", Type: "Image"},
				Sort: []domain.SortField{
					{Field: "title"},
					{Field: "createdAt", Desc: true},
				},
				Pagination: domain.Pagination{Page: 3, Limit: 5},
			},
		},
		{
			name:  "bracketed keys",
			query: "filters%5BcategoryId%5D=c2&sort%5BupdatedAt%5D=desc&sort%5Btitle%5D=1",
			want: listQuery{
				Filter: domain.ContentFilter{CategoryID: "c2"},
				Sort: []domain.SortField{
					{Field: "updatedAt", Desc: true},
					{Field: "title"},
				},
				Pagination: domain.Pagination{Page: 1, Limit: 10},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/contents?"+tt.query, nil)
			got, err := parseListQuery(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/api/contents?sort%5Btitle%5D=up", nil)
	_, err := parseListQuery(req)
	assert.ErrorIs(t, err, errInvalidSort)
}

func TestParseListQuery_HugePageSaturatesSkip(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/contents?page=4611686018427387904&limit=4", nil)
	got, err := parseListQuery(req)
	require.NoError(t, err)

	assert.Equal(t, 1<<62, got.Pagination.Page)
	assert.Equal(t, math.MaxInt, got.Pagination.Normalize().Skip())
}
