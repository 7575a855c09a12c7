package api

import (
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/anjimamurali/BlogHub/internal/repository"
	"github.com/anjimamurali/BlogHub/internal/service"
)

type PostHandler struct {
	postService service.PostService
	validate    *validator.Validate
}

func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{
		postService: postService,
		validate:    validator.New(),
	}
}

type CreatePostRequest struct {
	Title     string `json:"title" validate:"required,min=1,max=255"`
	Content   string `json:"content" validate:"required"`
	Published bool   `json:"published"`
}

type UpdatePostRequest struct {
	Title     *string `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Content   *string `json:"content,omitempty" validate:"omitempty,min=1"`
	Published *bool   `json:"published,omitempty"`
}

func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	viewer := CurrentUser(c)

	posts, err := h.postService.ListPosts(c.UserContext(), viewer)
	if err != nil {
		slog.ErrorContext(c.UserContext(), "Failed to list posts", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not list posts"})
	}

	return c.Status(fiber.StatusOK).JSON(posts)
}

func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	author := CurrentUser(c)

	var request CreatePostRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	post, err := h.postService.CreatePost(c.UserContext(), author, request.Title, request.Content, request.Published)
	if err != nil {
		if errors.Is(err, service.ErrSlugTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A post with this slug already exists"})
		}
		slog.ErrorContext(c.UserContext(), "Failed to create post", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create post"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Post created successfully",
		"post":    post,
	})
}

func (h *PostHandler) GetPost(c *fiber.Ctx) error {
	viewer := CurrentUser(c)

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid post ID format"})
	}

	details, err := h.postService.GetPost(c.UserContext(), viewer, postID)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
		}
		slog.ErrorContext(c.UserContext(), "Failed to get post", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not get post"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"id":         details.ID,
		"title":      details.Title,
		"content":    details.Content,
		"slug":       details.Slug,
		"published":  details.Published,
		"author":     fiber.Map{"id": details.AuthorID, "username": details.AuthorUsername},
		"created_at": details.CreatedAt,
		"updated_at": details.UpdatedAt,
		"comments":   details.Comments,
	})
}

func (h *PostHandler) UpdatePost(c *fiber.Ctx) error {
	viewer := CurrentUser(c)

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid post ID format"})
	}

	var request UpdatePostRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	post, err := h.postService.UpdatePost(c.UserContext(), viewer, postID, repository.PostUpdate{
		Title:     request.Title,
		Content:   request.Content,
		Published: request.Published,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
		case errors.Is(err, service.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized to update this post"})
		default:
			slog.ErrorContext(c.UserContext(), "Failed to update post", slog.String("error", err.Error()))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update post"})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Post updated successfully",
		"post":    post,
	})
}

func (h *PostHandler) DeletePost(c *fiber.Ctx) error {
	viewer := CurrentUser(c)

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid post ID format"})
	}

	if err := h.postService.DeletePost(c.UserContext(), viewer, postID); err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
		case errors.Is(err, service.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized to delete this post"})
		default:
			slog.ErrorContext(c.UserContext(), "Failed to delete post", slog.String("error", err.Error()))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete post"})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Post deleted successfully"})
}
