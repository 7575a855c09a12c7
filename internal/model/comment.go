package model

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Content   string    `db:"content" json:"content"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	PostID    uuid.UUID `db:"post_id" json:"post_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// CommentDetails joins in the commenter's username for responses.
type CommentDetails struct {
	Comment
	AuthorUsername string `db:"author_username" json:"author"`
}
