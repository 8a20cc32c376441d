package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-cms/internal/domain"
	"github.com/tendant/simple-cms/internal/repository/memory"
	"github.com/tendant/simple-cms/internal/service"
)

func TestCategoryService(t *testing.T) {
	svc := service.NewCategoryService(memory.NewCategoryRepository())
	ctx := context.Background()

	categories, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.NotNil(t, categories)
	assert.Empty(t, categories)

	ack, err := svc.CreateCategory(ctx, service.CreateCategoryRequest{Name: "News", AllowsImages: true, AllowsTexts: true})
	require.NoError(t, err)
	assert.Equal(t, "Category created successfully", ack.Message)

	_, err = svc.CreateCategory(ctx, service.CreateCategoryRequest{Name: "News"})
	assert.ErrorIs(t, err, domain.ErrDuplicateCategory)
	assert.Equal(t, "Category already exists", err.Error())

	_, err = svc.CreateCategory(ctx, service.CreateCategoryRequest{})
	assert.ErrorIs(t, err, domain.ErrMissingCategoryName)

	categories, err = svc.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "News", categories[0].Name)
	assert.True(t, categories[0].AllowsImages)
	assert.False(t, categories[0].AllowsVideos)
	assert.True(t, categories[0].AllowsTexts)
}
