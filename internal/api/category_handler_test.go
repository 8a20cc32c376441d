package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-cms/internal/domain"
)

func TestCategoryHandler(t *testing.T) {
	a := setupAPITest(t)
	admin := a.login("adam", domain.RoleAdmin)

	rr := a.do(http.MethodGet, "/api/categories", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	id := a.createCategory(admin, "News")
	assert.NotEmpty(t, id)

	rr = a.do(http.MethodPost, "/api/categories", admin, newCategoryRequest("News", true, true, true))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Category already exists", errorOf(t, rr))
}

func TestCategoryHandler_CreateRequiresEveryFlag(t *testing.T) {
	a := setupAPITest(t)
	admin := a.login("adam", domain.RoleAdmin)

	for _, body := range []map[string]interface{}{
		{"name": "News"},
		{"name": "News", "allowsImages": true, "allowsVideos": true},
		{"name": "News", "allowsImages": true, "allowsTexts": false},
	} {
		rr := a.do(http.MethodPost, "/api/categories", admin, body)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "allowsImages, allowsVideos and allowsTexts are required", errorOf(t, rr))
	}

	rr := a.do(http.MethodGet, "/api/categories", "", nil)
	assert.JSONEq(t, `[]`, rr.Body.String())

	rr = a.do(http.MethodPost, "/api/categories", admin, map[string]interface{}{
		"name": "News", "allowsImages": false, "allowsVideos": false, "allowsTexts": true,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = a.do(http.MethodGet, "/api/categories", "", nil)
	var categories []domain.Category
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &categories))
	require.Len(t, categories, 1)
	assert.False(t, categories[0].AllowsImages)
	assert.False(t, categories[0].AllowsVideos)
	assert.True(t, categories[0].AllowsTexts)
}
