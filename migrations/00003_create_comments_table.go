package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateCommentsTable, downCreateCommentsTable)
}

func upCreateCommentsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE TABLE comments (
	  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	  content TEXT NOT NULL,
	  user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	  post_id UUID NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
	  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
	  updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
	);

	CREATE INDEX idx_comments_post_id ON comments(post_id);
	CREATE INDEX idx_comments_user_id ON comments(user_id);
	`

	_, err := tx.ExecContext(ctx, query)
	return err
}

func downCreateCommentsTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS comments;`)
	return err
}
