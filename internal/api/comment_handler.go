package api

import (
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/anjimamurali/BlogHub/internal/service"
)

type CommentHandler struct {
	commentService service.CommentService
	validate       *validator.Validate
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		validate:       validator.New(),
	}
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1"`
}

func (h *CommentHandler) CreateComment(c *fiber.Ctx) error {
	viewer := CurrentUser(c)

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid post ID format"})
	}

	var request CreateCommentRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Comment content is required"})
	}

	comment, err := h.commentService.CreateComment(c.UserContext(), viewer, postID, request.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
		case errors.Is(err, service.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Cannot comment on unpublished posts"})
		default:
			slog.ErrorContext(c.UserContext(), "Failed to create comment", slog.String("error", err.Error()))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create comment"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Comment added successfully",
		"comment": fiber.Map{
			"id":         comment.ID,
			"content":    comment.Content,
			"author":     viewer.Username,
			"created_at": comment.CreatedAt,
		},
	})
}
