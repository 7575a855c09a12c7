package events

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/anjimamurali/BlogHub/internal/model"
)

type EventPublisher interface {
	PublishPostPublished(post *model.Post) error
	PublishCommentCreated(comment *model.Comment) error
}

type NatsPublisher struct {
	conn *nats.Conn
}

func NewNatsPublisher(natsURL string) (EventPublisher, error) {
	nc, err := nats.Connect(natsURL)
	if err != nil {
		return nil, err
	}
	return &NatsPublisher{conn: nc}, nil
}

type PostPublishedEvent struct {
	EventType   string    `json:"event_type"`
	PostID      uuid.UUID `json:"post_id"`
	AuthorID    uuid.UUID `json:"author_id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	PublishedAt time.Time `json:"published_at"`
}

type CommentCreatedEvent struct {
	EventType string    `json:"event_type"`
	CommentID uuid.UUID `json:"comment_id"`
	PostID    uuid.UUID `json:"post_id"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (p *NatsPublisher) PublishPostPublished(post *model.Post) error {
	event := PostPublishedEvent{
		EventType:   "post.published",
		PostID:      post.ID,
		AuthorID:    post.AuthorID,
		Title:       post.Title,
		Slug:        post.Slug,
		PublishedAt: time.Now(),
	}
	return p.publish("post.published", event)
}

func (p *NatsPublisher) PublishCommentCreated(comment *model.Comment) error {
	event := CommentCreatedEvent{
		EventType: "comment.created",
		CommentID: comment.ID,
		PostID:    comment.PostID,
		UserID:    comment.UserID,
		CreatedAt: comment.CreatedAt,
	}
	return p.publish("comment.created", event)
}

func (p *NatsPublisher) publish(subject string, event interface{}) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		slog.Error("Error marshalling event JSON", slog.String("subject", subject), slog.String("error", err.Error()))
		return err
	}

	if err := p.conn.Publish(subject, eventJSON); err != nil {
		slog.Error("Error publishing to NATS", slog.String("subject", subject), slog.String("error", err.Error()))
		return err
	}

	slog.Info("Published event to NATS", slog.String("subject", subject))
	return nil
}

// NoopPublisher stands in when the broker is unreachable; the blog
// keeps serving requests and events are dropped.
type NoopPublisher struct{}

func (NoopPublisher) PublishPostPublished(*model.Post) error     { return nil }
func (NoopPublisher) PublishCommentCreated(*model.Comment) error { return nil }
