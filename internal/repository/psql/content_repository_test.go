package psql

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-cms/internal/domain"
	"github.com/tendant/simple-cms/internal/repository"
)

func seed(t *testing.T, db *TestDB) (*domain.User, *domain.Category) {
	t.Helper()
	ctx := context.Background()

	user := &domain.User{Username: "alice", Email: "alice@example.com", PasswordHash: "hash", Role: domain.RoleCreator}
	require.NoError(t, NewPSQLUserRepository(db.Pool).Create(ctx, user))

	category := &domain.Category{Name: "News", AllowsImages: true, AllowsTexts: true}
	require.NoError(t, NewPSQLCategoryRepository(db.Pool).Create(ctx, category))

	return user, category
}

func TestPSQLUserRepository(t *testing.T) {
	RunTest(t, func(t *testing.T, db *TestDB) {
		repo := NewPSQLUserRepository(db.Pool)
		ctx := context.Background()

		user := &domain.User{Username: "alice", Email: "alice@example.com", PasswordHash: "hash", Role: domain.RoleAdmin}
		require.NoError(t, repo.Create(ctx, user))
		_, err := uuid.Parse(user.ID)
		require.NoError(t, err)

		got, err := repo.GetByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, "hash", got.PasswordHash)
		assert.Equal(t, domain.RoleAdmin, got.Role)

		exists, err := repo.ExistsByUsernameOrEmail(ctx, "alice", "other@example.com")
		require.NoError(t, err)
		assert.True(t, exists)

		err = repo.Create(ctx, &domain.User{Username: "bob", Email: "alice@example.com", PasswordHash: "h", Role: domain.RoleReader})
		assert.ErrorIs(t, err, repository.ErrDuplicate)

		_, err = repo.Get(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestPSQLCategoryRepository(t *testing.T) {
	RunTest(t, func(t *testing.T, db *TestDB) {
		repo := NewPSQLCategoryRepository(db.Pool)
		ctx := context.Background()

		categories, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, categories)

		category := &domain.Category{Name: "News", AllowsVideos: true}
		require.NoError(t, repo.Create(ctx, category))

		err = repo.Create(ctx, &domain.Category{Name: "News"})
		assert.ErrorIs(t, err, repository.ErrDuplicate)

		got, err := repo.Get(ctx, category.ID)
		require.NoError(t, err)
		assert.Equal(t, "News", got.Name)
		assert.False(t, got.AllowsImages)
		assert.True(t, got.AllowsVideos)
		assert.False(t, got.AllowsTexts)

		_, err = repo.Get(ctx, uuid.NewString())
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestPSQLContentRepository_Lifecycle(t *testing.T) {
	RunTest(t, func(t *testing.T, db *TestDB) {
		repo := NewPSQLContentRepository(db.Pool)
		ctx := context.Background()
		user, category := seed(t, db)

		content := &domain.Content{
			Title:      "A",
			Payload:    domain.ImagePayload{ImageURL: "http://x/y.jpg"},
			CategoryID: category.ID,
			CreatorID:  user.ID,
		}
		require.NoError(t, repo.Create(ctx, content))
		assert.NotEmpty(t, content.ID)
		assert.False(t, content.CreatedAt.IsZero())

		content.Payload = domain.VideoPayload{URL: "http://x/v.mp4"}
		content.UpdatedAt = time.Now().UTC()
		require.NoError(t, repo.Update(ctx, content))

		got, err := repo.Get(ctx, content.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.VideoPayload{URL: "http://x/v.mp4"}, got.Payload)
		assert.Equal(t, user.ID, got.CreatorID)

		require.NoError(t, repo.Delete(ctx, content.ID))
		_, err = repo.Get(ctx, content.ID)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, content.ID), repository.ErrNotFound)
	})
}

func TestPSQLContentRepository_Listing(t *testing.T) {
	RunTest(t, func(t *testing.T, db *TestDB) {
		repo := NewPSQLContentRepository(db.Pool)
		ctx := context.Background()
		user, category := seed(t, db)

		base := time.Now().UTC().Truncate(time.Millisecond)
		for i, p := range []domain.Payload{
			domain.ImagePayload{ImageURL: "i1"},
			domain.TextPayload{Text: "t1"},
			domain.ImagePayload{ImageURL: "i2"},
		} {
			require.NoError(t, repo.Create(ctx, &domain.Content{
				Title:      string(rune('c' - i)),
				Payload:    p,
				CategoryID: category.ID,
				CreatorID:  user.ID,
				CreatedAt:  base.Add(time.Duration(i) * time.Minute),
			}))
		}

		total, err := repo.Count(ctx, domain.ContentFilter{Type: "Image"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)

		counts, err := repo.CountByType(ctx, domain.ContentFilter{CategoryID: category.ID})
		require.NoError(t, err)
		assert.Equal(t, map[domain.ContentType]int64{domain.ContentTypeImage: 2, domain.ContentTypeText: 1}, counts)

		views, err := repo.Find(ctx, repository.ContentQuery{
			Sort:  []domain.SortField{{Field: domain.SortByTitle}},
			Limit: 2,
		})
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, "a", views[0].Title)
		assert.Equal(t, "b", views[1].Title)
		require.NotNil(t, views[0].Category)
		assert.Equal(t, "News", views[0].Category.Name)
		require.NotNil(t, views[0].Creator)
		assert.Equal(t, "alice", views[0].Creator.Username)

		views, err = repo.Find(ctx, repository.ContentQuery{Filter: domain.ContentFilter{CreatorID: "bogus"}})
		require.NoError(t, err)
		assert.Empty(t, views)
	})
}
