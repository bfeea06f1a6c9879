// backend/internal/platform/config/config_test.go
package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "DATABASE_URL", "DB_URL_SECRET", "REDIS_ADDR", "REDIS_PASSWORD",
		"CACHE_TTL_SECONDS", "AMQP_URL", "SENDGRID_API_KEY", "MAIL_FROM",
		"JWT_SECRET", "CORS_ORIGIN", "SHUTDOWN_TIMEOUT_SECONDS",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %s, want 8080", cfg.Port)
	}
	if cfg.CORSOrigin != "*" {
		t.Errorf("CORSOrigin = %s, want *", cfg.CORSOrigin)
	}
	if cfg.MailFrom != "no-reply@marketplace.local" {
		t.Errorf("MailFrom = %s", cfg.MailFrom)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %s, want 5m", cfg.CacheTTL)
	}
	if cfg.ShutdownTimeout != 25*time.Second {
		t.Errorf("ShutdownTimeout = %s, want 25s", cfg.ShutdownTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("DATABASE_URL", "postgres://localhost/market")
	t.Setenv("CACHE_TTL_SECONDS", "60")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "5")
	t.Setenv("CORS_ORIGIN", "https://shop.example.com")

	cfg := Load()

	if cfg.Port != "9999" {
		t.Errorf("Port = %s", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://localhost/market" {
		t.Errorf("DatabaseURL = %s", cfg.DatabaseURL)
	}
	if cfg.CacheTTL != time.Minute {
		t.Errorf("CacheTTL = %s, want 1m", cfg.CacheTTL)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %s, want 5s", cfg.ShutdownTimeout)
	}
	if cfg.CORSOrigin != "https://shop.example.com" {
		t.Errorf("CORSOrigin = %s", cfg.CORSOrigin)
	}
}

func TestLoadBadDuration(t *testing.T) {
	t.Setenv("CACHE_TTL_SECONDS", "soon")
	cfg := Load()
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %s, want fallback 5m", cfg.CacheTTL)
	}
}
