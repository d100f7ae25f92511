package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	StoreDriver  string        // Optional: ledger backend, sqlite or postgres (default: sqlite)
	DatabaseFile string        // Optional: path to SQLite database file (default: ./janus.db)
	DatabaseURL  string        // Required for postgres: pgx connection string
	RedisAddr    string        // Optional: enables cross-instance pending notifications
	PendingTTL   time.Duration // Optional: hide pending requests older than this from devices (default: 0, off)
	MaxPollWait  time.Duration // Optional: upper bound on a device's long poll (default: 20s)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 30s)
	BacklogInterval     time.Duration // Backlog gauge refresh interval (default: 1m)
}

func LoadConfig() Config {
	return Config{
		StoreDriver:         getEnvOrDefault("JANUS_STORE_DRIVER", DriverSQLite),
		DatabaseFile:        getEnvOrDefault("JANUS_DATABASE_FILE", "janus.db"),
		DatabaseURL:         os.Getenv("JANUS_DATABASE_URL"),
		RedisAddr:           os.Getenv("JANUS_REDIS_ADDR"),
		PendingTTL:          getEnvDurationOrDefault("JANUS_PENDING_TTL", 0),
		MaxPollWait:         getEnvDurationOrDefault("JANUS_MAX_POLL_WAIT", 20*time.Second),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 30*time.Second),
		BacklogInterval:     getEnvDurationOrDefault("BACKLOG_INTERVAL", time.Minute),
	}
}

// Validate reports settings the application cannot start with.
func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverSQLite:
		if c.DatabaseFile == "" {
			return errors.New("JANUS_DATABASE_FILE must not be empty")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("JANUS_DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.StoreDriver)
	}

	if c.PendingTTL < 0 {
		return errors.New("JANUS_PENDING_TTL must not be negative")
	}
	if c.MaxPollWait < 0 {
		return errors.New("JANUS_MAX_POLL_WAIT must not be negative")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds.
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
