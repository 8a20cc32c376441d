package psql

import "github.com/tendant/simple-cms/internal/repository"

// RepositoryFactory creates and returns all repository implementations
type RepositoryFactory struct {
	db DBTX
}

// NewRepositoryFactory creates a new repository factory
func NewRepositoryFactory(db DBTX) *RepositoryFactory {
	return &RepositoryFactory{
		db: db,
	}
}

// NewUserRepository creates a new user repository
func (f *RepositoryFactory) NewUserRepository() repository.UserRepository {
	return NewPSQLUserRepository(f.db)
}

// NewCategoryRepository creates a new category repository
func (f *RepositoryFactory) NewCategoryRepository() repository.CategoryRepository {
	return NewPSQLCategoryRepository(f.db)
}

// NewContentRepository creates a new content repository
func (f *RepositoryFactory) NewContentRepository() repository.ContentRepository {
	return NewPSQLContentRepository(f.db)
}
