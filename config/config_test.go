package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.View.DefaultPageSize != 10 {
		t.Errorf("expected default page size 10, got %d", cfg.View.DefaultPageSize)
	}
	if cfg.View.NoticeTTL != 4*time.Second {
		t.Errorf("expected notice TTL 4s, got %s", cfg.View.NoticeTTL)
	}
	if !cfg.Collection.UseSummaryEndpoint {
		t.Error("expected summary endpoint enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("COLLECTION_USE_SUMMARY_ENDPOINT", "false")
	t.Setenv("VIEW_DEFAULT_PAGE_SIZE", "20")
	t.Setenv("VIEW_IDLE_TTL", "5m")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg := Load()

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Collection.UseSummaryEndpoint {
		t.Error("expected summary endpoint disabled")
	}
	if cfg.View.DefaultPageSize != 20 {
		t.Errorf("expected page size 20, got %d", cfg.View.DefaultPageSize)
	}
	if cfg.View.IdleTTL != 5*time.Minute {
		t.Errorf("expected idle TTL 5m, got %s", cfg.View.IdleTTL)
	}
	if cfg.Redis.DB != 0 {
		t.Errorf("unparseable value should fall back to default, got %d", cfg.Redis.DB)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		errorString string
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "invalid port"},
		{"bad log level", func(c *Config) { c.Server.LogLevel = "loud" }, "invalid log level"},
		{"relative base URL", func(c *Config) { c.Collection.BaseURL = "/api/" }, "invalid collection base URL"},
		{"ftp base URL", func(c *Config) { c.Collection.BaseURL = "ftp://host/api/" }, "scheme"},
		{"oversized population page", func(c *Config) { c.Collection.PopulationPageSize = 500 }, "population page size"},
		{"page size not offered", func(c *Config) { c.View.DefaultPageSize = 25 }, "default page size"},
		{"default secret in production", func(c *Config) { c.Server.Environment = "production" }, "must be changed"},
		{"long poll outlives write timeout", func(c *Config) { c.View.LongPollTimeout = 2 * time.Minute }, "long-poll timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.errorString) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.errorString)
			}
		})
	}

	t.Run("reports every problem", func(t *testing.T) {
		cfg := Load()
		cfg.Server.Port = -1
		cfg.JWT.Secret = ""

		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), "invalid port") || !strings.Contains(err.Error(), "JWT secret") {
			t.Errorf("expected both problems reported, got %v", err)
		}
	})
}
