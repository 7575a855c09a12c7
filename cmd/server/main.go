package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/anjimamurali/BlogHub/internal/api"
	"github.com/anjimamurali/BlogHub/internal/config"
	"github.com/anjimamurali/BlogHub/internal/events"
	"github.com/anjimamurali/BlogHub/internal/jwt"
	"github.com/anjimamurali/BlogHub/internal/model"
	"github.com/anjimamurali/BlogHub/internal/repository"
	"github.com/anjimamurali/BlogHub/internal/service"
	"github.com/anjimamurali/BlogHub/internal/tracing"
	_ "github.com/anjimamurali/BlogHub/migrations"
)

const serviceName = "bloghub"

func main() {
	if err := godotenv.Load(".env.dev"); err != nil {
		fmt.Println("No .env.dev file found, reading from environment variables")
	}

	api.SetupGlobalLogger(serviceName)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	shutdownTracer, err := tracing.InitTracerProvider(serviceName, cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize OpenTelemetry: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Error shutting down tracer provider: %v", err)
		}
	}()

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		handleMigrations(cfg)
		return
	}

	db := connectDB(cfg)
	defer db.Close()

	var publisher events.EventPublisher
	publisher, err = events.NewNatsPublisher(cfg.NATSURL)
	if err != nil {
		log.Printf("WARNING: Failed to connect to NATS, events will be dropped: %v", err)
		publisher = events.NoopPublisher{}
	}

	userRepo := repository.NewPostgresUserRepository(db)
	postRepo := repository.NewPostgresPostRepository(db)
	commentRepo := repository.NewPostgresCommentRepository(db)

	tokenService := jwt.NewService(cfg.JWTSecret, cfg.TokenTTL)

	authService := service.NewAuthService(userRepo, tokenService)
	postService := service.NewPostService(postRepo, commentRepo, publisher)
	commentService := service.NewCommentService(commentRepo, postRepo, publisher)

	authHandler := api.NewAuthHandler(authService)
	postHandler := api.NewPostHandler(postService)
	commentHandler := api.NewCommentHandler(commentService)
	adminHandler := api.NewAdminHandler(authService)

	app := fiber.New()
	app.Use(otelfiber.Middleware())
	app.Use(api.PrometheusMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": serviceName})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	v1 := app.Group("/v1")

	authRoutes := v1.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)

	userRoutes := v1.Group("/users")
	userRoutes.Use(api.AuthMiddleware(authService))
	userRoutes.Get("/me", authHandler.GetProfile)

	postRoutes := v1.Group("/posts")
	postRoutes.Use(api.AuthMiddleware(authService))
	postRoutes.Get("/", postHandler.ListPosts)
	postRoutes.Post("/", api.RequireRole(model.RoleAuthor), postHandler.CreatePost)
	postRoutes.Get("/:id", postHandler.GetPost)
	postRoutes.Put("/:id", postHandler.UpdatePost)
	postRoutes.Delete("/:id", postHandler.DeletePost)
	postRoutes.Post("/:id/comments", commentHandler.CreateComment)

	adminRoutes := v1.Group("/admin")
	adminRoutes.Use(api.AuthMiddleware(authService), api.RequireRole(model.RoleAdmin))
	adminRoutes.Get("/users", adminHandler.ListUsers)
	adminRoutes.Put("/users/:id/role", adminHandler.UpdateUserRole)

	log.Printf("Listening %s on port %s", serviceName, cfg.AppPort)
	log.Fatal(app.Listen(":" + cfg.AppPort))
}

func connectDB(cfg *config.Config) *sqlx.DB {
	db, err := sqlx.Connect("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Successfully connected to the database.")
	return db
}

func handleMigrations(cfg *config.Config) {
	fmt.Println("Running database migrations...")

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database for migration: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("failed to set goose dialect: %v", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		log.Fatalf("goose: failed to run migrations: %v", err)
	}

	fmt.Println("Migrations applied successfully!")
}
