package model

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Slug      string    `db:"slug" json:"slug"`
	Content   string    `db:"content" json:"content"`
	Published bool      `db:"published" json:"published"`
	AuthorID  uuid.UUID `db:"author_id" json:"author_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// PostSummary is the list-view projection: a trimmed excerpt instead of
// the full content, plus the author's username joined in.
type PostSummary struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Title          string    `db:"title" json:"title"`
	Slug           string    `db:"slug" json:"slug"`
	Excerpt        string    `db:"excerpt" json:"excerpt"`
	Published      bool      `db:"published" json:"published"`
	AuthorUsername string    `db:"author_username" json:"author"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// PostDetails is the detail-view projection with author identity and
// the post's comments.
type PostDetails struct {
	Post
	AuthorUsername string           `db:"author_username" json:"-"`
	Comments       []CommentDetails `db:"-" json:"comments"`
}
