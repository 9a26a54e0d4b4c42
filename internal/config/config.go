// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Menu data sources.
const (
	SourcePostgres = "postgres"
	SourceREST     = "rest"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache). Empty host disables the menu cache.
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// Menu data source
	MenuSource   string // "postgres" or "rest"
	RestURL      string
	RestKey      string
	PollInterval time.Duration

	// Presentation
	BasePath    string
	DefaultLang string
	CacheTTL    time.Duration

	// HTTP surface
	CORSOrigins []string
	RateLimit   int // requests per minute per client, 0 disables

	// S3-compatible object storage for dish images
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3PublicURL string
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing in production mode or a value cannot be parsed.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "bukhara"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "bukhara"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		MenuSource: strings.ToLower(envOrDefault("MENU_SOURCE", SourcePostgres)),
		RestURL:    os.Getenv("MENU_REST_URL"),
		RestKey:    os.Getenv("MENU_REST_KEY"),

		BasePath:    envOrDefault("MENU_BASE_PATH", ""),
		DefaultLang: envOrDefault("MENU_DEFAULT_LANG", "uz"),

		CORSOrigins: splitList(os.Getenv("MENU_CORS_ORIGINS")),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    envOrDefault("S3_REGION", "fsn1"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Bucket:    envOrDefault("S3_BUCKET", "bukhara-menu"),
		S3PublicURL: os.Getenv("S3_PUBLIC_URL"),
	}

	var err error
	if cfg.CacheTTL, err = durationOrDefault("MENU_CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.PollInterval, err = durationOrDefault("MENU_POLL_INTERVAL", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.RateLimit, err = intOrDefault("MENU_RATE_LIMIT", 120); err != nil {
		return nil, err
	}

	switch cfg.MenuSource {
	case SourcePostgres:
	case SourceREST:
		if cfg.RestURL == "" {
			return nil, fmt.Errorf("MENU_REST_URL must be set when MENU_SOURCE=rest")
		}
	default:
		return nil, fmt.Errorf("MENU_SOURCE must be %q or %q, got %q", SourcePostgres, SourceREST, cfg.MenuSource)
	}

	if cfg.Env == "production" {
		if cfg.MenuSource == SourcePostgres && cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOrDefault(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%s: invalid duration %q", key, v)
	}
	return d, nil
}

func intOrDefault(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s: invalid number %q", key, v)
	}
	return n, nil
}

// splitList parses a comma separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
