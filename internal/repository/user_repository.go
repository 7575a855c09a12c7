package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/anjimamurali/BlogHub/internal/model"
)

// UserWithPostCount is the admin listing projection.
type UserWithPostCount struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	Username  string     `db:"username" json:"username"`
	Email     string     `db:"email" json:"email"`
	Role      model.Role `db:"role" json:"role"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	PostCount int        `db:"post_count" json:"post_count"`
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	ListWithPostCount(ctx context.Context) ([]UserWithPostCount, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role model.Role) error
}

type postgresUserRepository struct {
	db *sqlx.DB
}

func NewPostgresUserRepository(db *sqlx.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

func (r *postgresUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (username, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, token_version, created_at
	`
	row := r.db.QueryRowxContext(ctx, query, user.Username, user.Email, user.PasswordHash, user.Role)
	return row.Scan(&user.ID, &user.TokenVersion, &user.CreatedAt)
}

func (r *postgresUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	query := `SELECT id, username, email, password_hash, role, token_version, created_at FROM users WHERE id = $1`
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *postgresUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	query := `SELECT id, username, email, password_hash, role, token_version, created_at FROM users WHERE email = $1`
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *postgresUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	query := `SELECT id, username, email, password_hash, role, token_version, created_at FROM users WHERE username = $1`
	err := r.db.GetContext(ctx, &user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *postgresUserRepository) ListWithPostCount(ctx context.Context) ([]UserWithPostCount, error) {
	users := []UserWithPostCount{}
	query := `
		SELECT u.id, u.username, u.email, u.role, u.created_at,
		       COUNT(p.id) AS post_count
		FROM users u
		LEFT JOIN posts p ON p.author_id = u.id
		GROUP BY u.id
		ORDER BY u.created_at
	`
	err := r.db.SelectContext(ctx, &users, query)
	if err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateRole also bumps token_version so that tokens issued before the
// role change stop verifying.
func (r *postgresUserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role model.Role) error {
	query := `UPDATE users SET role = $1, token_version = token_version + 1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, role, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
