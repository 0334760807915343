package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries every tunable the server reads from the environment.
type Config struct {
	Addr      string
	DBPath    string
	StaticDir string
	JWTSecret string

	RateLimit  int
	RateWindow time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	FromEmail    string
	AdminEmail   string

	AdminLoginEmail    string
	AdminLoginPassword string
}

func Load() (Config, error) {
	cfg := Config{
		Addr:      valueOrDefault("BLOO_ADDR", ":8080"),
		DBPath:    valueOrDefault("BLOO_DB_PATH", "data/bloo.sqlite"),
		StaticDir: strings.TrimSpace(os.Getenv("BLOO_STATIC_DIR")),
		JWTSecret: valueOrDefault("BLOO_JWT_SECRET", "bloo-dev-secret"),

		RedisAddr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword: strings.TrimSpace(os.Getenv("REDIS_PASSWORD")),

		SMTPHost:     strings.TrimSpace(os.Getenv("EMAIL_HOST")),
		SMTPUser:     strings.TrimSpace(os.Getenv("EMAIL_HOST_USER")),
		SMTPPassword: os.Getenv("EMAIL_HOST_PASSWORD"),
		FromEmail:    valueOrDefault("DEFAULT_FROM_EMAIL", "Bloo <info@bloo.az>"),
		AdminEmail:   strings.TrimSpace(os.Getenv("ADMIN_EMAIL")),

		AdminLoginEmail:    strings.TrimSpace(os.Getenv("BLOO_ADMIN_EMAIL")),
		AdminLoginPassword: os.Getenv("BLOO_ADMIN_PASSWORD"),
	}

	limit, err := intOrDefault("RATE_LIMIT_DEFAULT", 100)
	if err != nil {
		return Config{}, err
	}
	cfg.RateLimit = limit

	window, err := intOrDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
	if err != nil {
		return Config{}, err
	}
	cfg.RateWindow = time.Duration(window) * time.Second

	cfg.SMTPPort, err = intOrDefault("EMAIL_PORT", 587)
	if err != nil {
		return Config{}, err
	}

	cfg.RedisDB, err = intOrDefault("REDIS_DB", 0)
	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func valueOrDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func intOrDefault(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}
