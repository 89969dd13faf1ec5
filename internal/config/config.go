package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Storage backend identifiers. The choice is made once at process start and
// injected into every consumer; there is no runtime switch.
const (
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	CORS    CORSConfig
	Pricing PricingConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// StorageConfig selects the repository backend and its location.
type StorageConfig struct {
	Backend string // "sqlite" or "memory"
	Path    string // SQLite database path, ignored for memory
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// PricingConfig holds price-provider and refresh-scheduling configuration.
type PricingConfig struct {
	// ProviderTimeout bounds each networked price lookup.
	ProviderTimeout time.Duration
	// LookupDelay is the minimum spacing between external price lookups
	// during a bulk refresh.
	LookupDelay time.Duration
	// RefreshEnabled gates the background cron refresh.
	RefreshEnabled bool
	// RefreshSchedule is a cron expression for the background refresh.
	RefreshSchedule string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	backend := getEnv("STORAGE_BACKEND", StorageSQLite)
	if backend != StorageSQLite && backend != StorageMemory {
		return nil, fmt.Errorf("unknown storage backend %q (want %q or %q)", backend, StorageSQLite, StorageMemory)
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Storage: StorageConfig{
			Backend: backend,
			Path:    getEnv("DB_PATH", "./data/portfolio_tracker.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Pricing: PricingConfig{
			ProviderTimeout: getEnvDuration("PRICE_PROVIDER_TIMEOUT", 5*time.Second),
			LookupDelay:     getEnvDuration("PRICE_LOOKUP_DELAY", 500*time.Millisecond),
			RefreshEnabled:  getEnvBool("PRICE_REFRESH_ENABLED", true),
			RefreshSchedule: getEnv("PRICE_REFRESH_SCHEDULE", "@hourly"),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvDuration parses a duration environment variable, e.g. "5s" or "250ms".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

// getEnvBool parses a boolean environment variable.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
