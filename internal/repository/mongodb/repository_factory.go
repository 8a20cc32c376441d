package mongodb

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tendant/simple-cms/internal/repository"
)

// RepositoryFactory creates and returns all repository implementations
type RepositoryFactory struct {
	db *mongo.Database
}

// NewRepositoryFactory creates a new repository factory
func NewRepositoryFactory(db *mongo.Database) *RepositoryFactory {
	return &RepositoryFactory{
		db: db,
	}
}

// NewUserRepository creates a new user repository
func (f *RepositoryFactory) NewUserRepository() repository.UserRepository {
	return NewMongoUserRepository(f.db)
}

// NewCategoryRepository creates a new category repository
func (f *RepositoryFactory) NewCategoryRepository() repository.CategoryRepository {
	return NewMongoCategoryRepository(f.db)
}

// NewContentRepository creates a new content repository
func (f *RepositoryFactory) NewContentRepository() repository.ContentRepository {
	return NewMongoContentRepository(f.db)
}
