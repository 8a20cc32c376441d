// Package store opens the repositories of the configured backend.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tendant/simple-cms/internal/config"
	"github.com/tendant/simple-cms/internal/repository"
	memoryrepo "github.com/tendant/simple-cms/internal/repository/memory"
	mongorepo "github.com/tendant/simple-cms/internal/repository/mongodb"
	psqlrepo "github.com/tendant/simple-cms/internal/repository/psql"
)

// Stores bundles the repositories of one backend
type Stores struct {
	Users      repository.UserRepository
	Categories repository.CategoryRepository
	Contents   repository.ContentRepository

	close func()
}

// Close releases the backend connection
func (s *Stores) Close() {
	if s.close != nil {
		s.close()
	}
}

func NewDbPool(ctx context.Context, dbConfig config.DbConfig) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dbConfig.DatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// Open connects to the backend named by cfg.DatabaseType and prepares its
// indexes or schema
func Open(ctx context.Context, cfg config.Config) (*Stores, error) {
	switch cfg.DatabaseType {
	case config.DatabaseMongo:
		return openMongo(ctx, cfg.Mongo)
	case config.DatabasePostgres:
		return openPostgres(ctx, cfg.DB)
	case config.DatabaseMemory, "":
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("unsupported database type: %s", cfg.DatabaseType)
}

// NewMemory returns empty in-process stores
func NewMemory() *Stores {
	users := memoryrepo.NewUserRepository()
	categories := memoryrepo.NewCategoryRepository()
	return &Stores{
		Users:      users,
		Categories: categories,
		Contents:   memoryrepo.NewContentRepository(users, categories),
	}
}

func openMongo(ctx context.Context, cfg config.MongoConfig) (*Stores, error) {
	conn, err := mongorepo.NewMongoConnection(ctx, cfg.URI, cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := mongorepo.EnsureIndexes(ctx, conn.Database); err != nil {
		_ = conn.Close(ctx)
		return nil, err
	}

	factory := mongorepo.NewRepositoryFactory(conn.Database)
	return &Stores{
		Users:      factory.NewUserRepository(),
		Categories: factory.NewCategoryRepository(),
		Contents:   factory.NewContentRepository(),
		close: func() {
			if err := conn.Close(context.Background()); err != nil {
				slog.Error("Failed to disconnect MongoDB", "err", err)
			}
		},
	}, nil
}

func openPostgres(ctx context.Context, cfg config.DbConfig) (*Stores, error) {
	pool, err := NewDbPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := psqlrepo.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	factory := psqlrepo.NewRepositoryFactory(pool)
	return &Stores{
		Users:      factory.NewUserRepository(),
		Categories: factory.NewCategoryRepository(),
		Contents:   factory.NewContentRepository(),
		close:      pool.Close,
	}, nil
}
