package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anjimamurali/BlogHub/internal/model"
	"github.com/anjimamurali/BlogHub/internal/repository"
	"github.com/anjimamurali/BlogHub/internal/service"
)

type postFixture struct {
	svc      service.PostService
	posts    *fakePostRepo
	comments *fakeCommentRepo
	events   *recordingPublisher
	owner    *model.User
	admin    *model.User
	stranger *model.User
}

func newPostFixture(t *testing.T) *postFixture {
	t.Helper()
	posts := newFakePostRepo()
	comments := newFakeCommentRepo()
	events := newRecordingPublisher()

	f := &postFixture{
		svc:      service.NewPostService(posts, comments, events),
		posts:    posts,
		comments: comments,
		events:   events,
		owner:    &model.User{ID: uuid.New(), Username: "owner", Role: model.RoleAuthor},
		admin:    &model.User{ID: uuid.New(), Username: "admin", Role: model.RoleAdmin},
		stranger: &model.User{ID: uuid.New(), Username: "stranger", Role: model.RoleUser},
	}
	posts.usernames[f.owner.ID] = f.owner.Username
	posts.usernames[f.admin.ID] = f.admin.Username
	return f
}

func waitForEvent(t *testing.T, ch chan uuid.UUID) uuid.UUID {
	t.Helper()
	select {
	case id := <-ch:
		return id
	case <-time.After(2 * time.Second):
		t.Fatal("expected an event to be published")
		return uuid.Nil
	}
}

func TestCreatePost_GeneratesSlug(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	post, err := f.svc.CreatePost(ctx, f.owner, "Hello, World! Again", "body", false)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(post.Slug, "hello-world-again-"), "got slug %q", post.Slug)
	require.Equal(t, f.owner.ID, post.AuthorID)
	require.False(t, post.Published)
}

func TestCreatePost_PublishedEmitsEvent(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	post, err := f.svc.CreatePost(ctx, f.owner, "Hello", "body", true)
	require.NoError(t, err)
	require.Equal(t, post.ID, waitForEvent(t, f.events.published))
}

func TestGetPost_DraftHiddenFromStrangers(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	draft, err := f.svc.CreatePost(ctx, f.owner, "Draft", "secret body", false)
	require.NoError(t, err)

	// Invisible to everyone but the author and admins, and invisible
	// means not-found, not forbidden.
	_, err = f.svc.GetPost(ctx, f.stranger, draft.ID)
	require.ErrorIs(t, err, service.ErrPostNotFound)

	details, err := f.svc.GetPost(ctx, f.owner, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "secret body", details.Content)

	details, err = f.svc.GetPost(ctx, f.admin, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "owner", details.AuthorUsername)
}

func TestGetPost_Missing(t *testing.T) {
	f := newPostFixture(t)

	_, err := f.svc.GetPost(context.Background(), f.admin, uuid.New())
	require.ErrorIs(t, err, service.ErrPostNotFound)
}

func TestListPosts_Visibility(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreatePost(ctx, f.owner, "Published", "body", true)
	require.NoError(t, err)
	_, err = f.svc.CreatePost(ctx, f.owner, "Draft", "body", false)
	require.NoError(t, err)

	forStranger, err := f.svc.ListPosts(ctx, f.stranger)
	require.NoError(t, err)
	require.Len(t, forStranger, 1)
	assert.Equal(t, "Published", forStranger[0].Title)

	// The owner's own drafts are also absent from the list view; only
	// admins see everything.
	forOwner, err := f.svc.ListPosts(ctx, f.owner)
	require.NoError(t, err)
	require.Len(t, forOwner, 1)

	forAdmin, err := f.svc.ListPosts(ctx, f.admin)
	require.NoError(t, err)
	require.Len(t, forAdmin, 2)
}

func TestListPosts_Excerpt(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	long := strings.Repeat("x", 400)
	_, err := f.svc.CreatePost(ctx, f.owner, "Long", long, true)
	require.NoError(t, err)

	posts, err := f.svc.ListPosts(ctx, f.stranger)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, strings.Repeat("x", 150)+"...", posts[0].Excerpt)
}

func TestUpdatePost_OwnershipGate(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	post, err := f.svc.CreatePost(ctx, f.owner, "Hello", "body", true)
	require.NoError(t, err)

	title := "Edited"
	_, err = f.svc.UpdatePost(ctx, f.stranger, post.ID, repository.PostUpdate{Title: &title})
	require.ErrorIs(t, err, service.ErrForbidden)

	updated, err := f.svc.UpdatePost(ctx, f.owner, post.ID, repository.PostUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Edited", updated.Title)

	content := "admin edit"
	updated, err = f.svc.UpdatePost(ctx, f.admin, post.ID, repository.PostUpdate{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, "admin edit", updated.Content)
}

func TestUpdatePost_PublishEmitsEvent(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	draft, err := f.svc.CreatePost(ctx, f.owner, "Draft", "body", false)
	require.NoError(t, err)

	published := true
	updated, err := f.svc.UpdatePost(ctx, f.owner, draft.ID, repository.PostUpdate{Published: &published})
	require.NoError(t, err)
	require.True(t, updated.Published)
	require.Equal(t, draft.ID, waitForEvent(t, f.events.published))
}

func TestDeletePost(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	post, err := f.svc.CreatePost(ctx, f.owner, "Hello", "body", true)
	require.NoError(t, err)

	require.ErrorIs(t, f.svc.DeletePost(ctx, f.stranger, post.ID), service.ErrForbidden)
	require.NoError(t, f.svc.DeletePost(ctx, f.owner, post.ID))
	require.ErrorIs(t, f.svc.DeletePost(ctx, f.owner, post.ID), service.ErrPostNotFound)
}

// The full draft lifecycle: a draft is hidden from another user until
// its author publishes it.
func TestDraftLifecycle(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	draft, err := f.svc.CreatePost(ctx, f.owner, "My Draft", "the content", false)
	require.NoError(t, err)

	_, err = f.svc.GetPost(ctx, f.stranger, draft.ID)
	require.ErrorIs(t, err, service.ErrPostNotFound)

	published := true
	_, err = f.svc.UpdatePost(ctx, f.owner, draft.ID, repository.PostUpdate{Published: &published})
	require.NoError(t, err)

	details, err := f.svc.GetPost(ctx, f.stranger, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "the content", details.Content)
	assert.True(t, details.Published)
}
