package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/anjimamurali/BlogHub/internal/model"
)

// PostUpdate carries a partial update; nil fields are left untouched.
type PostUpdate struct {
	Title     *string
	Content   *string
	Published *bool
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	FindDetailsByID(ctx context.Context, id uuid.UUID) (*model.PostDetails, error)
	ListAll(ctx context.Context) ([]model.PostSummary, error)
	ListPublished(ctx context.Context) ([]model.PostSummary, error)
	Update(ctx context.Context, id uuid.UUID, update PostUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type postgresPostRepository struct {
	db *sqlx.DB
}

func NewPostgresPostRepository(db *sqlx.DB) PostRepository {
	return &postgresPostRepository{db: db}
}

func (r *postgresPostRepository) Create(ctx context.Context, post *model.Post) error {
	query := `
		INSERT INTO posts (title, slug, content, published, author_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	row := r.db.QueryRowxContext(ctx, query, post.Title, post.Slug, post.Content, post.Published, post.AuthorID)
	return row.Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
}

func (r *postgresPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var post model.Post
	query := `SELECT id, title, slug, content, published, author_id, created_at, updated_at FROM posts WHERE id = $1`
	err := r.db.GetContext(ctx, &post, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (r *postgresPostRepository) FindDetailsByID(ctx context.Context, id uuid.UUID) (*model.PostDetails, error) {
	var details model.PostDetails
	query := `
		SELECT p.id, p.title, p.slug, p.content, p.published, p.author_id,
		       p.created_at, p.updated_at, u.username AS author_username
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.id = $1
	`
	err := r.db.GetContext(ctx, &details, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &details, nil
}

const postSummaryColumns = `
	p.id, p.title, p.slug, p.content AS excerpt, p.published,
	p.created_at, p.updated_at, u.username AS author_username
`

func (r *postgresPostRepository) ListAll(ctx context.Context) ([]model.PostSummary, error) {
	posts := []model.PostSummary{}
	query := `
		SELECT ` + postSummaryColumns + `
		FROM posts p
		JOIN users u ON u.id = p.author_id
		ORDER BY p.created_at DESC
	`
	if err := r.db.SelectContext(ctx, &posts, query); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postgresPostRepository) ListPublished(ctx context.Context) ([]model.PostSummary, error) {
	posts := []model.PostSummary{}
	query := `
		SELECT ` + postSummaryColumns + `
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.published = true
		ORDER BY p.created_at DESC
	`
	if err := r.db.SelectContext(ctx, &posts, query); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postgresPostRepository) Update(ctx context.Context, id uuid.UUID, update PostUpdate) error {
	var setClauses []string
	var args []interface{}
	argID := 1

	if update.Title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", argID))
		args = append(args, *update.Title)
		argID++
	}
	if update.Content != nil {
		setClauses = append(setClauses, fmt.Sprintf("content = $%d", argID))
		args = append(args, *update.Content)
		argID++
	}
	if update.Published != nil {
		setClauses = append(setClauses, fmt.Sprintf("published = $%d", argID))
		args = append(args, *update.Published)
		argID++
	}

	if len(setClauses) == 0 {
		return nil
	}

	setClauses = append(setClauses, "updated_at = now()")

	query := fmt.Sprintf("UPDATE posts SET %s WHERE id = $%d", strings.Join(setClauses, ", "), argID)
	args = append(args, id)

	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *postgresPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	return err
}
