// Package config provides application configuration management.
// It loads configuration from environment variables with sensible defaults.
package config

import (
	"fmt"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Collection CollectionConfig
	Redis      RedisConfig
	JWT        JWTConfig
	View       ViewConfig
	Cache      CacheConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Environment  string
	LogLevel     string
	// LoginRateLimit is the number of login attempts allowed per client per minute. Zero disables it.
	LoginRateLimit int
}

// CollectionConfig holds configuration for the remote movements service.
type CollectionConfig struct {
	BaseURL            string
	Timeout            time.Duration
	UseSummaryEndpoint bool
	// PopulationPageSize is the page size used when walking the whole filtered population.
	PopulationPageSize int
	MaxConcurrentPages int
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

// JWTConfig holds session token configuration.
type JWTConfig struct {
	Secret        string
	SessionExpiry time.Duration
}

// ViewConfig holds view-model configuration.
type ViewConfig struct {
	DefaultPageSize int
	NoticeTTL       time.Duration
	IdleTTL         time.Duration
	SweepInterval   time.Duration
	LongPollTimeout time.Duration
}

// CacheConfig holds cache configuration.
type CacheConfig struct {
	CategoryTTL time.Duration
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:    getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getEnvAsDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
			Environment:    getEnv("ENV", "development"),
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			LoginRateLimit: getEnvAsInt("LOGIN_RATE_LIMIT", 5),
		},
		Collection: CollectionConfig{
			BaseURL:            getEnv("COLLECTION_BASE_URL", "http://localhost:8000/api/"),
			Timeout:            getEnvAsDuration("COLLECTION_TIMEOUT", 10*time.Second),
			UseSummaryEndpoint: getEnvAsBool("COLLECTION_USE_SUMMARY_ENDPOINT", true),
			PopulationPageSize: getEnvAsInt("COLLECTION_POPULATION_PAGE_SIZE", 100),
			MaxConcurrentPages: getEnvAsInt("COLLECTION_MAX_CONCURRENT_PAGES", 4),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379/0"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", "change-me-in-production"),
			SessionExpiry: getEnvAsDuration("SESSION_EXPIRY", 12*time.Hour),
		},
		View: ViewConfig{
			DefaultPageSize: getEnvAsInt("VIEW_DEFAULT_PAGE_SIZE", 10),
			NoticeTTL:       getEnvAsDuration("VIEW_NOTICE_TTL", 4*time.Second),
			IdleTTL:         getEnvAsDuration("VIEW_IDLE_TTL", 30*time.Minute),
			SweepInterval:   getEnvAsDuration("VIEW_SWEEP_INTERVAL", time.Minute),
			LongPollTimeout: getEnvAsDuration("VIEW_LONG_POLL_TIMEOUT", 25*time.Second),
		},
		Cache: CacheConfig{
			CategoryTTL: getEnvAsDuration("CATEGORY_CACHE_TTL", 10*time.Minute),
		},
	}
}

// Validate validates the configuration and returns an error listing every problem found.
func (c *Config) Validate() error {
	var problems []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", c.Server.Port))
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLevels, strings.ToLower(c.Server.LogLevel)) {
		problems = append(problems, fmt.Sprintf("invalid log level '%s': must be one of %v", c.Server.LogLevel, validLevels))
	}

	if parsed, err := url.Parse(c.Collection.BaseURL); err != nil || parsed.Host == "" {
		problems = append(problems, fmt.Sprintf("invalid collection base URL '%s'", c.Collection.BaseURL))
	} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
		problems = append(problems, fmt.Sprintf("invalid collection base URL scheme '%s': must be 'http' or 'https'", parsed.Scheme))
	}
	if c.Collection.Timeout <= 0 {
		problems = append(problems, "collection timeout must be positive")
	}
	if c.Collection.PopulationPageSize < 1 || c.Collection.PopulationPageSize > 100 {
		problems = append(problems, fmt.Sprintf("invalid population page size %d: must be between 1 and 100", c.Collection.PopulationPageSize))
	}
	if c.Collection.MaxConcurrentPages < 1 {
		problems = append(problems, "max concurrent pages must be at least 1")
	}

	if c.JWT.Secret == "" {
		problems = append(problems, "JWT secret cannot be empty")
	} else if c.Server.Environment == "production" && c.JWT.Secret == "change-me-in-production" {
		problems = append(problems, "JWT secret must be changed in production")
	}
	if c.JWT.SessionExpiry <= 0 {
		problems = append(problems, "session expiry must be positive")
	}

	if !slices.Contains([]int{5, 10, 20, 50}, c.View.DefaultPageSize) {
		problems = append(problems, fmt.Sprintf("invalid default page size %d: must be one of 5, 10, 20, 50", c.View.DefaultPageSize))
	}
	if c.View.NoticeTTL <= 0 || c.View.IdleTTL <= 0 || c.View.SweepInterval <= 0 || c.View.LongPollTimeout <= 0 {
		problems = append(problems, "view durations must be positive")
	}
	if c.View.LongPollTimeout >= c.Server.WriteTimeout {
		problems = append(problems, fmt.Sprintf("long-poll timeout %s must be shorter than the write timeout %s", c.View.LongPollTimeout, c.Server.WriteTimeout))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
