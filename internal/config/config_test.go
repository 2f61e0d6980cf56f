// AngelaMos | 2026
// config_test.go

package config

import (
	"testing"
	"time"
)

func TestLoadDefaultsWithEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/bookclub_test")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Server.Port != 8000 {
		t.Errorf("expected default port 8000, got %d", cfg.Server.Port)
	}
	if cfg.Session.CookieName != "bookclub_session" {
		t.Errorf("unexpected cookie name: %q", cfg.Session.CookieName)
	}
	if cfg.Session.TTL != 24*time.Hour {
		t.Errorf("expected 24h session ttl, got %v", cfg.Session.TTL)
	}
	if cfg.BookClub.MaxCommentLength != 1000 {
		t.Errorf("expected max comment length 1000, got %d",
			cfg.BookClub.MaxCommentLength)
	}
	if cfg.Database.URL != "postgres://localhost/bookclub_test" {
		t.Errorf("env override not applied: %q", cfg.Database.URL)
	}
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/bookclub_test")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("PORT", "9000")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("SESSION_SLIDING", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Session.TTL != time.Hour {
		t.Errorf("expected 1h ttl, got %v", cfg.Session.TTL)
	}
	if !cfg.Session.Sliding {
		t.Errorf("expected sliding sessions")
	}
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	if _, err := Load(""); err == nil {
		t.Fatalf("expected error without DATABASE_URL")
	}
}

func TestLoadRejectsBadSameSite(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/bookclub_test")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("SESSION_SAME_SITE", "bogus")

	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for invalid same_site value")
	}
}
