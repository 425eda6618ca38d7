// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"

	SessionsSQL   = "sql"
	SessionsRedis = "redis"
)

// Config is the resolved server configuration.
type Config struct {
	Addr         string
	WebDir       string
	Store        string
	DatabaseURL  string
	SessionStore string
	RedisURL     string
	AdminHash    string
	MetricsAddr  string
	LogLevel     slog.Level
	Env          string
}

// Load reads the environment, first merging a .env file from the working
// directory unless APP_ENV is "production". Variables already set in the
// environment win over the file.
func Load() (Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load .env: %w", err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function and validates it.
func FromEnv(getenv func(string) string) (Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	c := Config{
		Addr:         get("ADDR", ":3000"),
		WebDir:       get("WEB_DIR", "web"),
		Store:        strings.ToLower(get("STORE", StorePostgres)),
		DatabaseURL:  get("DATABASE_URL", ""),
		SessionStore: strings.ToLower(get("SESSION_STORE", SessionsSQL)),
		RedisURL:     get("REDIS_URL", ""),
		AdminHash:    get("ADMIN_HASH", ""),
		MetricsAddr:  get("METRICS_ADDR", ""),
		Env:          get("APP_ENV", "development"),
	}

	if err := c.LogLevel.UnmarshalText([]byte(get("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	switch c.Store {
	case StorePostgres:
		if c.DatabaseURL == "" {
			return Config{}, errors.New("DATABASE_URL is required when STORE=postgres")
		}
	case StoreMemory:
	default:
		return Config{}, fmt.Errorf("STORE: unknown backend %q", c.Store)
	}

	switch c.SessionStore {
	case SessionsSQL:
	case SessionsRedis:
		if c.RedisURL == "" {
			return Config{}, errors.New("REDIS_URL is required when SESSION_STORE=redis")
		}
	default:
		return Config{}, fmt.Errorf("SESSION_STORE: unknown backend %q", c.SessionStore)
	}
	return c, nil
}
