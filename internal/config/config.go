package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the application configuration
// Note: The engine itself is stateless - the database only backs the
// saved-progression library and can be left unconfigured.
// Auth and billing are handled by the cloud gateway when AUTH_MODE=gateway.
type Config struct {
	// Environment
	Environment string
	Port        string
	GinMode     string

	// Persistence (optional)
	DatabaseURL string

	// Observability
	SentryDSN         string // Sentry DSN for error tracking
	CloudWatchEnabled bool   // Feature flag for CloudWatch metrics
	AWSRegion         string // Region override for the CloudWatch client

	// Engine defaults
	DefaultLimit  int // Fingerings returned when a request names no limit
	MaxSearchFret int // Highest fret the generator searches

	// Auth mode
	// - "none": No auth (self-hosted, local dev)
	// - "gateway": Trust X-User-* headers from the cloud gateway
	AuthMode string
}

func Load() *Config {
	return &Config{
		Environment:       getEnv("ENVIRONMENT", "development"),
		Port:              getEnv("PORT", "8080"),
		GinMode:           getEnv("GIN_MODE", ""),
		DatabaseURL:       databaseURL(),
		SentryDSN:         getEnv("SENTRY_DSN", ""),
		CloudWatchEnabled: getEnv("CLOUDWATCH_METRICS_ENABLED", "false") == "true",
		AWSRegion:         getEnv("AWS_REGION", ""),
		DefaultLimit:      getEnvInt("FRETBOARD_DEFAULT_LIMIT", 10),
		MaxSearchFret:     getEnvInt("FRETBOARD_MAX_SEARCH_FRET", 12),
		AuthMode:          getEnv("AUTH_MODE", "none"), // Default to no auth for self-hosted
	}
}

// databaseURL prefers DATABASE_URL and falls back to composing a DSN
// from DATABASE_* parts. Empty means run without persistence.
func databaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	host := os.Getenv("DATABASE_HOST")
	if host == "" {
		return ""
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host,
		getEnv("DATABASE_USER", "postgres"),
		getEnv("DATABASE_PASSWORD", ""),
		getEnv("DATABASE_NAME", "fretboard"),
		getEnv("DATABASE_PORT", "5432"),
		getEnv("DATABASE_SSLMODE", "disable"),
	)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// IsGatewayMode returns true if running behind the cloud gateway
func (c *Config) IsGatewayMode() bool {
	return c.AuthMode == "gateway"
}

// HasDatabase returns true when a persistence DSN is configured
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}
