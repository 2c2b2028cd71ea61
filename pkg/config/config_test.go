package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("unexpected addr: %q", cfg.Addr)
	}
	if cfg.TokenTTL != time.Hour {
		t.Fatalf("unexpected token ttl: %s", cfg.TokenTTL)
	}
	if cfg.MigrationsDir != "db/migrations" {
		t.Fatalf("unexpected migrations dir: %q", cfg.MigrationsDir)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("RATE_LIMIT_RPM", "10")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Fatalf("unexpected addr: %q", cfg.Addr)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Fatalf("unexpected token ttl: %s", cfg.TokenTTL)
	}
	if cfg.RateLimitPerMinute != 10 {
		t.Fatalf("unexpected rate limit: %d", cfg.RateLimitPerMinute)
	}
}
