package psql

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE SCHEMA IF NOT EXISTS cms`,
	`CREATE TABLE IF NOT EXISTS cms.users (
		id UUID PRIMARY KEY,
		username VARCHAR(255) NOT NULL UNIQUE,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(20) NOT NULL CHECK (role IN ('Admin', 'Reader', 'Creator')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS cms.categories (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL UNIQUE,
		allows_images BOOLEAN NOT NULL,
		allows_videos BOOLEAN NOT NULL,
		allows_texts BOOLEAN NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS cms.contents (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL,
		type VARCHAR(10) NOT NULL CHECK (type IN ('Image', 'Video', 'Text')),
		url TEXT,
		text TEXT,
		image_url TEXT,
		category_id UUID NOT NULL REFERENCES cms.categories(id),
		creator_id UUID NOT NULL REFERENCES cms.users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT one_payload CHECK (num_nonnulls(url, text, image_url) = 1)
	)`,
	`CREATE INDEX IF NOT EXISTS contents_category_idx ON cms.contents (category_id)`,
	`CREATE INDEX IF NOT EXISTS contents_creator_idx ON cms.contents (creator_id)`,
	`CREATE INDEX IF NOT EXISTS contents_type_idx ON cms.contents (type)`,
}

// EnsureSchema creates the cms schema and its tables when missing. It is safe to run on every start.
func EnsureSchema(ctx context.Context, db DBTX) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
