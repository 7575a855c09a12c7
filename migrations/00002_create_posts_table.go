package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreatePostsTable, downCreatePostsTable)
}

func upCreatePostsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE TABLE posts (
	  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	  title VARCHAR(255) NOT NULL,
	  slug VARCHAR(255) UNIQUE NOT NULL,
	  content TEXT NOT NULL,
	  published BOOLEAN NOT NULL DEFAULT false,
	  author_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
	  updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
	);

	CREATE INDEX idx_posts_author_id ON posts(author_id);
	CREATE INDEX idx_posts_published ON posts(published);
	`

	_, err := tx.ExecContext(ctx, query)
	return err
}

func downCreatePostsTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS posts;`)
	return err
}
