package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/anjimamurali/BlogHub/internal/jwt"
	"github.com/anjimamurali/BlogHub/internal/model"
	"github.com/anjimamurali/BlogHub/internal/service"
)

// TokenHeader is the custom header carrying the bearer token on every
// authenticated request.
const TokenHeader = "X-Access-Token"

const currentUserKey = "currentUser"

var (
	httpRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of http request",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)
)

// AuthMiddleware resolves the bearer token to a live user and stores it
// in the request locals. Authentication always runs before any role or
// ownership check; a missing or bad credential short-circuits here.
func AuthMiddleware(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get(TokenHeader)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token is missing"})
		}

		user, err := authService.Authenticate(c.UserContext(), token)
		if err != nil {
			switch {
			case errors.Is(err, jwt.ErrExpiredCredential):
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token has expired"})
			case errors.Is(err, jwt.ErrInvalidCredential):
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not verify token"})
			}
		}

		c.Locals(currentUserKey, user)

		return c.Next()
	}
}

// RequireRole admits the current user iff their role subsumes the
// required one. Must be mounted after AuthMiddleware.
func RequireRole(required model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated"})
		}
		if !user.HasRole(required) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": fmt.Sprintf("This action requires %s role", required),
			})
		}
		return c.Next()
	}
}

// CurrentUser returns the authenticated user placed by AuthMiddleware,
// or nil when the route is unauthenticated.
func CurrentUser(c *fiber.Ctx) *model.User {
	user, _ := c.Locals(currentUserKey).(*model.User)
	return user
}

func PrometheusMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		duration := time.Since(start).Seconds()
		statusCode := c.Response().StatusCode()

		if err != nil {
			var e *fiber.Error
			if errors.As(err, &e) {
				statusCode = e.Code
			} else {
				statusCode = fiber.StatusInternalServerError
			}
		}

		statusStr := fmt.Sprintf("%d", statusCode)
		httpRequestTotal.WithLabelValues(c.Method(), c.Path(), statusStr).Inc()
		httpRequestDuration.WithLabelValues(c.Method(), c.Path(), statusStr).Observe(duration)

		return err
	}
}
