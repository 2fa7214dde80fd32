package config

import (
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("ENV", "")
		t.Setenv("PORT", "")
		t.Setenv("AUTH_SECRET", "")
		t.Setenv("AUTH_TOKEN_TTL", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Port != "8080" {
			t.Errorf("expected port 8080, got %s", cfg.Port)
		}
		if cfg.Env != "development" {
			t.Errorf("expected env development, got %s", cfg.Env)
		}
		if cfg.AuthEnabled() {
			t.Error("expected auth to be disabled without a secret")
		}
		if cfg.AuthTokenTTL != 720*time.Hour {
			t.Errorf("expected 720h ttl, got %s", cfg.AuthTokenTTL)
		}
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("AUTH_SECRET", "s3cret")
		t.Setenv("AUTH_TOKEN_TTL", "1h")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Port != "9090" {
			t.Errorf("expected port 9090, got %s", cfg.Port)
		}
		if !cfg.AuthEnabled() {
			t.Error("expected auth to be enabled")
		}
		if cfg.AuthTokenTTL != time.Hour {
			t.Errorf("expected 1h ttl, got %s", cfg.AuthTokenTTL)
		}
	})

	t.Run("invalid_ttl_falls_back", func(t *testing.T) {
		t.Setenv("AUTH_TOKEN_TTL", "forever")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.AuthTokenTTL != 720*time.Hour {
			t.Errorf("expected fallback ttl, got %s", cfg.AuthTokenTTL)
		}
	})
}
