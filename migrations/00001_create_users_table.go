package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateUsersTable, downCreateUsersTable)
}

func upCreateUsersTable(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE TABLE users (
	  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	  username VARCHAR(50) UNIQUE NOT NULL,
	  email VARCHAR(255) UNIQUE NOT NULL,
	  password_hash TEXT NOT NULL,
	  role TEXT NOT NULL DEFAULT 'user',
	  token_version INT NOT NULL DEFAULT 0,
	  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
	  CONSTRAINT check_role CHECK (role IN ('user', 'author', 'admin'))
	);
	`

	_, err := tx.ExecContext(ctx, query)
	return err
}

func downCreateUsersTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS users;`)
	return err
}
