package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/anjimamurali/BlogHub/internal/model"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	ListByPostID(ctx context.Context, postID uuid.UUID) ([]model.CommentDetails, error)
}

type postgresCommentRepository struct {
	db *sqlx.DB
}

func NewPostgresCommentRepository(db *sqlx.DB) CommentRepository {
	return &postgresCommentRepository{db: db}
}

func (r *postgresCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	query := `
		INSERT INTO comments (content, user_id, post_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	row := r.db.QueryRowxContext(ctx, query, comment.Content, comment.UserID, comment.PostID)
	return row.Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
}

func (r *postgresCommentRepository) ListByPostID(ctx context.Context, postID uuid.UUID) ([]model.CommentDetails, error) {
	comments := []model.CommentDetails{}
	query := `
		SELECT c.id, c.content, c.user_id, c.post_id, c.created_at, c.updated_at,
		       u.username AS author_username
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id = $1
		ORDER BY c.created_at
	`
	if err := r.db.SelectContext(ctx, &comments, query); err != nil {
		return nil, err
	}
	return comments, nil
}
