package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go-ems/internal/shared/connection"

	"github.com/joho/godotenv"
)

const (
	DeliveryOutbox = "outbox"
	DeliveryDirect = "direct"
)

type Config struct {
	AppEnv   string
	Port     string
	LogLevel string

	Postgres      connection.PostgresConfig
	RunMigrations bool

	RedisAddr string

	KafkaBroker        string
	EventDeliveryMode  string
	OutboxPollInterval time.Duration

	JWTSecret      string
	BcryptCost     int
	InternalAPIKey string
}

// Load reads .env when present, then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		Port:     getEnv("PORT", "3000"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Postgres: connection.PostgresConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			User:     getEnv("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getEnv("DB_NAME", "go_ems"),
			Port:     getEnv("DB_PORT", "5432"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBroker:       os.Getenv("KAFKA_BROKER"),
		EventDeliveryMode: strings.ToLower(getEnv("EVENT_DELIVERY_MODE", DeliveryOutbox)),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		InternalAPIKey:    os.Getenv("INTERNAL_API_KEY"),
	}

	var err error
	if cfg.RunMigrations, err = strconv.ParseBool(getEnv("DB_RUN_MIGRATIONS", "false")); err != nil {
		return Config{}, fmt.Errorf("DB_RUN_MIGRATIONS: %w", err)
	}
	if cfg.OutboxPollInterval, err = time.ParseDuration(getEnv("OUTBOX_POLL_INTERVAL", "3s")); err != nil {
		return Config{}, fmt.Errorf("OUTBOX_POLL_INTERVAL: %w", err)
	}
	if cfg.BcryptCost, err = strconv.Atoi(getEnv("BCRYPT_COST", "10")); err != nil {
		return Config{}, fmt.Errorf("BCRYPT_COST: %w", err)
	}

	return cfg, nil
}

// ValidateAPI checks what the HTTP process needs to start.
func (c Config) ValidateAPI() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.InternalAPIKey == "" {
		return fmt.Errorf("INTERNAL_API_KEY is required")
	}
	switch c.EventDeliveryMode {
	case DeliveryOutbox:
	case DeliveryDirect:
		if c.KafkaBroker == "" {
			return fmt.Errorf("KAFKA_BROKER is required when EVENT_DELIVERY_MODE=direct")
		}
	default:
		return fmt.Errorf("unknown EVENT_DELIVERY_MODE %q", c.EventDeliveryMode)
	}
	return nil
}

// ValidateWorker checks what the outbox relay needs to start.
func (c Config) ValidateWorker() error {
	if c.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
