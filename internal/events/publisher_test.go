package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/anjimamurali/BlogHub/internal/events"
)

func TestPostPublishedEvent_Marshal(t *testing.T) {
	ev := events.PostPublishedEvent{
		EventType:   "post.published",
		PostID:      uuid.New(),
		AuthorID:    uuid.New(),
		Title:       "Hello",
		Slug:        "hello-1700000000",
		PublishedAt: time.Now(),
	}

	b, err := json.Marshal(ev)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Equal(t, "post.published", decoded["event_type"])
	require.Equal(t, "hello-1700000000", decoded["slug"])
}

func TestCommentCreatedEvent_Marshal(t *testing.T) {
	ev := events.CommentCreatedEvent{
		EventType: "comment.created",
		CommentID: uuid.New(),
		PostID:    uuid.New(),
		UserID:    uuid.New(),
		CreatedAt: time.Now(),
	}

	b, err := json.Marshal(ev)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Equal(t, "comment.created", decoded["event_type"])
}
