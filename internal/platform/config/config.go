package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string

	TokenSecret string
	TokenTTL    time.Duration

	DBMaxOpenConns    int
	DBMinIdleConns    int
	DBConnMaxIdleTime time.Duration
	DBAcquireTimeout  time.Duration

	WorkerPollInterval time.Duration
	OutboxBatchSize    int

	EnableRegistration bool
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "requisite"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	return Config{
		ServiceName: service,
		HTTPPort:    port,
		PostgresDSN: os.Getenv("POSTGRES_DSN"),

		TokenSecret: os.Getenv("TOKEN_SECRET"),
		TokenTTL:    envDuration("TOKEN_TTL", time.Hour),

		DBMaxOpenConns:    envInt("DB_MAX_OPEN_CONNS", 10),
		DBMinIdleConns:    envInt("DB_MIN_IDLE_CONNS", 2),
		DBConnMaxIdleTime: envDuration("DB_CONN_MAX_IDLE_TIME", 5*time.Minute),
		DBAcquireTimeout:  envDuration("DB_ACQUIRE_TIMEOUT", 5*time.Second),

		WorkerPollInterval: envDuration("WORKER_POLL_INTERVAL", 5*time.Second),
		OutboxBatchSize:    envInt("OUTBOX_BATCH_SIZE", 100),

		EnableRegistration: envBool("ENABLE_REGISTRATION", true),
	}, nil
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}

func envInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func envDuration(name string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return value
}
