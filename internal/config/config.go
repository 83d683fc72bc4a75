package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Addr         string   // STOREFRONT_ADDR, default ":8080"
	DBPath       string   // STOREFRONT_DB, default "storefront.db"; set but empty keeps slots in memory
	AuthToken    string   // STOREFRONT_AUTH_TOKEN, optional
	LogLevel     string   // STOREFRONT_LOG_LEVEL, default "info"
	LogFormat    string   // STOREFRONT_LOG_FORMAT, default "text"
	Metrics      bool     // STOREFRONT_METRICS, default true
	DiscardStale bool     // STOREFRONT_DISCARD_STALE, default false
	DefaultLimit int      // STOREFRONT_DEFAULT_LIMIT, default 24
	Commerce     Commerce // COMMERCE_*
	Warnings     []string // values that could not be parsed and fell back to defaults
}

// Commerce configures the Store API client.
type Commerce struct {
	BaseURL      string        // COMMERCE_BASE_URL, default "http://localhost:8000"
	AccessKey    string        // COMMERCE_ACCESS_KEY
	ContextToken string        // COMMERCE_CONTEXT_TOKEN, optional
	APIVersion   string        // COMMERCE_API_VERSION, default "6.4"
	Timeout      time.Duration // COMMERCE_TIMEOUT, default 10s
	RPS          float64       // COMMERCE_RPS, default 10
	Burst        int           // COMMERCE_BURST, default 20
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first when present; it
// never overrides variables that are already set.
func Load() Config {
	_ = godotenv.Load()

	l := &loader{}
	return Config{
		Addr:         envOr("STOREFRONT_ADDR", ":8080"),
		DBPath:       dbPath(),
		AuthToken:    os.Getenv("STOREFRONT_AUTH_TOKEN"),
		LogLevel:     envOr("STOREFRONT_LOG_LEVEL", "info"),
		LogFormat:    envOr("STOREFRONT_LOG_FORMAT", "text"),
		Metrics:      l.boolean("STOREFRONT_METRICS", true),
		DiscardStale: l.boolean("STOREFRONT_DISCARD_STALE", false),
		DefaultLimit: l.integer("STOREFRONT_DEFAULT_LIMIT", 24),
		Commerce: Commerce{
			BaseURL:      envOr("COMMERCE_BASE_URL", "http://localhost:8000"),
			AccessKey:    os.Getenv("COMMERCE_ACCESS_KEY"),
			ContextToken: os.Getenv("COMMERCE_CONTEXT_TOKEN"),
			APIVersion:   envOr("COMMERCE_API_VERSION", "6.4"),
			Timeout:      l.duration("COMMERCE_TIMEOUT", 10*time.Second),
			RPS:          l.number("COMMERCE_RPS", 10),
			Burst:        l.integer("COMMERCE_BURST", 20),
		},
		Warnings: l.warnings,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func dbPath() string {
	if v, ok := os.LookupEnv("STOREFRONT_DB"); ok {
		return v
	}
	return "storefront.db"
}

// loader parses typed values and records the keys it had to default.
type loader struct {
	warnings []string
}

func (l *loader) invalid(key, value string, fallback any) {
	l.warnings = append(l.warnings, fmt.Sprintf("%s=%q is invalid, using %v", key, value, fallback))
}

func (l *loader) integer(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		l.invalid(key, v, fallback)
		return fallback
	}
	return n
}

func (l *loader) number(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		l.invalid(key, v, fallback)
		return fallback
	}
	return f
}

func (l *loader) boolean(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		l.invalid(key, v, fallback)
		return fallback
	}
	return b
}

func (l *loader) duration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		l.invalid(key, v, fallback)
		return fallback
	}
	return d
}
