package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/anjimamurali/BlogHub/internal/authz"
	"github.com/anjimamurali/BlogHub/internal/events"
	"github.com/anjimamurali/BlogHub/internal/model"
	"github.com/anjimamurali/BlogHub/internal/repository"
)

type CommentService interface {
	CreateComment(ctx context.Context, viewer *model.User, postID uuid.UUID, content string) (*model.Comment, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	publisher   events.EventPublisher
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository, publisher events.EventPublisher) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		publisher:   publisher,
	}
}

// CreateComment admits a commenter under the same rule that governs
// post visibility. Unlike reads, a rejected commenter gets a forbidden
// error rather than a not-found.
func (s *commentService) CreateComment(ctx context.Context, viewer *model.User, postID uuid.UUID, content string) (*model.Comment, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	if !authz.CanComment(viewer, post) {
		return nil, ErrForbidden
	}

	comment := &model.Comment{
		Content: content,
		UserID:  viewer.ID,
		PostID:  postID,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	go s.publisher.PublishCommentCreated(comment)

	return comment, nil
}
