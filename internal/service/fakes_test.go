package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/anjimamurali/BlogHub/internal/model"
	"github.com/anjimamurali/BlogHub/internal/repository"
)

// fakeUserRepo enforces the same uniqueness the real store does,
// surfacing duplicates as pg unique violations so the services see the
// authoritative conflict path.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
		}
		if existing.Username == user.Username {
			return &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}
		}
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ListWithPostCount(_ context.Context) ([]repository.UserWithPostCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []repository.UserWithPostCount{}
	for _, user := range r.users {
		out = append(out, repository.UserWithPostCount{
			ID:        user.ID,
			Username:  user.Username,
			Email:     user.Email,
			Role:      user.Role,
			CreatedAt: user.CreatedAt,
		})
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateRole(_ context.Context, id uuid.UUID, role model.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil
	}
	user.Role = role
	user.TokenVersion++
	return nil
}

type fakePostRepo struct {
	mu        sync.Mutex
	posts     map[uuid.UUID]*model.Post
	usernames map[uuid.UUID]string
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{
		posts:     make(map[uuid.UUID]*model.Post),
		usernames: make(map[uuid.UUID]string),
	}
}

func (r *fakePostRepo) Create(_ context.Context, post *model.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.posts {
		if existing.Slug == post.Slug {
			return &pgconn.PgError{Code: "23505", ConstraintName: "posts_slug_key"}
		}
	}
	post.ID = uuid.New()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	stored := *post
	r.posts[post.ID] = &stored
	return nil
}

func (r *fakePostRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if post, ok := r.posts[id]; ok {
		copied := *post
		return &copied, nil
	}
	return nil, nil
}

func (r *fakePostRepo) FindDetailsByID(ctx context.Context, id uuid.UUID) (*model.PostDetails, error) {
	post, err := r.FindByID(ctx, id)
	if err != nil || post == nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return &model.PostDetails{Post: *post, AuthorUsername: r.usernames[post.AuthorID]}, nil
}

func (r *fakePostRepo) ListAll(_ context.Context) ([]model.PostSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.PostSummary{}
	for _, post := range r.posts {
		out = append(out, r.summary(post))
	}
	return out, nil
}

func (r *fakePostRepo) ListPublished(_ context.Context) ([]model.PostSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.PostSummary{}
	for _, post := range r.posts {
		if post.Published {
			out = append(out, r.summary(post))
		}
	}
	return out, nil
}

func (r *fakePostRepo) summary(post *model.Post) model.PostSummary {
	return model.PostSummary{
		ID:             post.ID,
		Title:          post.Title,
		Slug:           post.Slug,
		Excerpt:        post.Content,
		Published:      post.Published,
		AuthorUsername: r.usernames[post.AuthorID],
		CreatedAt:      post.CreatedAt,
		UpdatedAt:      post.UpdatedAt,
	}
}

func (r *fakePostRepo) Update(_ context.Context, id uuid.UUID, update repository.PostUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok {
		return nil
	}
	if update.Title != nil {
		post.Title = *update.Title
	}
	if update.Content != nil {
		post.Content = *update.Content
	}
	if update.Published != nil {
		post.Published = *update.Published
	}
	post.UpdatedAt = time.Now()
	return nil
}

func (r *fakePostRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.posts, id)
	return nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments map[uuid.UUID]*model.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[uuid.UUID]*model.Comment)}
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *model.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	comment.ID = uuid.New()
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = comment.CreatedAt
	stored := *comment
	r.comments[comment.ID] = &stored
	return nil
}

func (r *fakeCommentRepo) ListByPostID(_ context.Context, postID uuid.UUID) ([]model.CommentDetails, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.CommentDetails{}
	for _, comment := range r.comments {
		if comment.PostID == postID {
			out = append(out, model.CommentDetails{Comment: *comment})
		}
	}
	return out, nil
}

// recordingPublisher captures published events on channels so tests can
// wait for the async publish goroutines.
type recordingPublisher struct {
	published chan uuid.UUID
	commented chan uuid.UUID
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{
		published: make(chan uuid.UUID, 8),
		commented: make(chan uuid.UUID, 8),
	}
}

func (p *recordingPublisher) PublishPostPublished(post *model.Post) error {
	p.published <- post.ID
	return nil
}

func (p *recordingPublisher) PublishCommentCreated(comment *model.Comment) error {
	p.commented <- comment.ID
	return nil
}
