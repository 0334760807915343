package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"BLOO_ADDR", "RATE_LIMIT_DEFAULT", "RATE_LIMIT_WINDOW_SECONDS", "EMAIL_PORT", "DEFAULT_FROM_EMAIL"} {
		t.Setenv(key, "")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.RateLimit != 100 {
		t.Errorf("RateLimit = %d", cfg.RateLimit)
	}
	if cfg.RateWindow != 60*time.Second {
		t.Errorf("RateWindow = %v", cfg.RateWindow)
	}
	if cfg.SMTPPort != 587 {
		t.Errorf("SMTPPort = %d", cfg.SMTPPort)
	}
	if cfg.FromEmail != "Bloo <info@bloo.az>" {
		t.Errorf("FromEmail = %q", cfg.FromEmail)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("BLOO_ADDR", ":9090")
	t.Setenv("RATE_LIMIT_DEFAULT", "10")
	t.Setenv("RATE_LIMIT_WINDOW_SECONDS", "5")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.RateLimit != 10 || cfg.RateWindow != 5*time.Second {
		t.Errorf("rate config = %d/%v", cfg.RateLimit, cfg.RateWindow)
	}
	if cfg.RedisAddr != "localhost:6379" || cfg.RedisDB != 3 {
		t.Errorf("redis config = %q/%d", cfg.RedisAddr, cfg.RedisDB)
	}
}

func TestLoadRejectsBadInt(t *testing.T) {
	t.Setenv("RATE_LIMIT_DEFAULT", "lots")
	if _, err := Load(); err == nil {
		t.Fatal("expected an error for a non-numeric limit")
	}
}
