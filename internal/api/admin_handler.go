package api

import (
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/anjimamurali/BlogHub/internal/service"
)

type AdminHandler struct {
	authService service.AuthService
	validate    *validator.Validate
}

func NewAdminHandler(authService service.AuthService) *AdminHandler {
	return &AdminHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.authService.ListUsers(c.UserContext())
	if err != nil {
		slog.ErrorContext(c.UserContext(), "Failed to list users", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not list users"})
	}

	return c.Status(fiber.StatusOK).JSON(users)
}

func (h *AdminHandler) UpdateUserRole(c *fiber.Ctx) error {
	admin := CurrentUser(c)

	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID format"})
	}

	var request UpdateRoleRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	target, err := h.authService.UpdateUserRole(c.UserContext(), admin, targetID, request.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfRoleChange):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot change your own role"})
		case errors.Is(err, service.ErrInvalidRole):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid role"})
		case errors.Is(err, service.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		default:
			slog.ErrorContext(c.UserContext(), "Failed to update user role", slog.String("error", err.Error()))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update user role"})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "User role updated successfully",
		"user": fiber.Map{
			"id":       target.ID,
			"username": target.Username,
			"role":     target.Role,
		},
	})
}
