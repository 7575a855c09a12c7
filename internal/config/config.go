package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is read once at startup and handed to each component
// explicitly; nothing below main reaches into the environment.
type Config struct {
	AppPort      string
	DatabaseURL  string
	JWTSecret    []byte
	TokenTTL     time.Duration
	NATSURL      string
	OTLPEndpoint string
}

func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	ttl := time.Hour
	if raw := os.Getenv("TOKEN_TTL_SECONDS"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return nil, fmt.Errorf("invalid TOKEN_TTL_SECONDS: %q", raw)
		}
		ttl = time.Duration(seconds) * time.Second
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8001"
	}

	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = "nats://localhost:4222"
	}

	return &Config{
		AppPort:      port,
		DatabaseURL:  databaseURL(),
		JWTSecret:    []byte(secret),
		TokenTTL:     ttl,
		NATSURL:      natsURL,
		OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}, nil
}

func databaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
	)
}
