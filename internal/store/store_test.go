package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-cms/internal/config"
	"github.com/tendant/simple-cms/internal/domain"
	"github.com/tendant/simple-cms/internal/repository"
)

func TestOpen_Memory(t *testing.T) {
	ctx := context.Background()

	st, err := Open(ctx, config.Config{DatabaseType: config.DatabaseMemory})
	require.NoError(t, err)
	defer st.Close()

	category := &domain.Category{Name: "News", AllowsTexts: true}
	require.NoError(t, st.Categories.Create(ctx, category))
	user := &domain.User{Username: "alice", Email: "alice@example.com", Role: domain.RoleCreator}
	require.NoError(t, st.Users.Create(ctx, user))

	content := &domain.Content{
		Title:      "Hello",
		Payload:    domain.TextPayload{Text: "body"},
		CategoryID: category.ID,
		CreatorID:  user.ID,
	}
	require.NoError(t, st.Contents.Create(ctx, content))

	views, err := st.Contents.Find(ctx, repository.ContentQuery{Limit: 10})
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.NotNil(t, views[0].Category)
	assert.Equal(t, "News", views[0].Category.Name)
	require.NotNil(t, views[0].Creator)
	assert.Equal(t, "alice", views[0].Creator.Username)
}

func TestOpen_UnsupportedType(t *testing.T) {
	_, err := Open(context.Background(), config.Config{DatabaseType: "sqlite"})
	assert.Error(t, err)
}
