package store

import (
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/finance-tracker/frontend/config"
)

func TestNewRedisConnection(t *testing.T) {
	mr := miniredis.RunT(t)

	s, err := NewRedisConnection(&config.RedisConfig{URL: "redis://" + mr.Addr() + "/0"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Close()

	if !s.HealthCheck() {
		t.Error("expected healthy store")
	}

	mr.Close()
	if s.HealthCheck() {
		t.Error("expected unhealthy store after server shutdown")
	}
}

func TestNewRedisConnection_InvalidURL(t *testing.T) {
	if _, err := NewRedisConnection(&config.RedisConfig{URL: "not a url"}); err == nil {
		t.Error("expected error for invalid URL")
	}
}
