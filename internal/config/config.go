// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// HTTP server
	Port string
	Mode string

	// Database
	SQLiteDBPath string

	// Auth
	JWTSecret     string
	TokenDuration time.Duration

	// Provider catalog
	ProvidersPath string

	// Reminders
	ReminderCron string

	// AMQP (empty URL disables event publishing)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// Load reads configuration from the environment, after loading an optional
// .env file.
func Load() *Config {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		Port:          getEnv("PORT", "8080"),
		Mode:          getEnv("GIN_MODE", "debug"),
		SQLiteDBPath:  getEnv("DB_PATH", "./data/fluxy.db"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		TokenDuration: getEnvDuration("TOKEN_DURATION", 24*time.Hour),
		ProvidersPath: getEnv("PROVIDERS_PATH", "./providers.yaml"),
		ReminderCron:  getEnv("REMINDER_CRON", "0 0 9 * * *"),
		AMQPURL:       getEnv("AMQP_URL", ""),
		AMQPExchange:  getEnv("AMQP_EXCHANGE", "fluxy"),
		AMQPQueue:     getEnv("AMQP_QUEUE", "renewal_reminders"),
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if port, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid port %q: must be a number", c.Port)
	} else if port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", port)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}
	if c.SQLiteDBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
