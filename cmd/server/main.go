package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
	"github.com/redis/go-redis/v9"

	"github.com/bloo-az/bloo/internal/api"
	"github.com/bloo-az/bloo/internal/config"
	dbstore "github.com/bloo-az/bloo/internal/db"
	"github.com/bloo-az/bloo/internal/middleware"
	"github.com/bloo-az/bloo/internal/notify"
	"github.com/bloo-az/bloo/internal/ratelimit"
	"github.com/bloo-az/bloo/internal/services"
	"github.com/bloo-az/bloo/internal/utils"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("dotenv: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		log.Fatalf("create data dir: %v", err)
	}
	dsn := fmt.Sprintf("file:%s?cache=shared&_busy_timeout=5000", filepath.ToSlash(cfg.DBPath))
	sqliteDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}
	defer func() { _ = sqliteDB.Close() }()
	if err := dbstore.RunMigrations(sqliteDB); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	store, err := dbstore.NewStore(sqliteDB)
	if err != nil {
		log.Fatalf("init store: %v", err)
	}

	var notifier services.Notifier
	if cfg.SMTPHost != "" {
		notifier = notify.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	} else {
		log.Printf("EMAIL_HOST not set, outgoing mail goes to the log")
		notifier = notify.LogMailer{}
	}

	var counters ratelimit.CounterStore
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer func() { _ = rdb.Close() }()
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		_, err := rdb.Ping(pingCtx).Result()
		cancel()
		if err != nil {
			log.Fatalf("redis ping error: %v", err)
		}
		counters = ratelimit.NewRedisStore(rdb)
	} else {
		// per-process limits only; fine for a single server
		counters = ratelimit.NewMemoryStore()
	}
	limiter := ratelimit.NewLimiter(counters, cfg.RateLimit, cfg.RateWindow)

	rt := api.NewRouter(store, notifier, cfg.FromEmail, cfg.AdminEmail)
	if err := rt.Auth().EnsureAdmin(cfg.AdminLoginEmail, cfg.AdminLoginPassword); err != nil {
		log.Fatalf("seed admin: %v", err)
	}

	mux := http.NewServeMux()
	rt.Register(mux)

	health := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		locale := middleware.LocaleFromContext(r.Context())
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":     true,
			"name":   "Bloo API",
			"locale": locale,
			"msg":    utils.T(locale, "health.ok"),
		})
	}
	mux.HandleFunc("/health", health)
	mux.HandleFunc("/healthz", health)
	mux.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	if cfg.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))
	}

	handler := ratelimit.Middleware(limiter)(
		middleware.SecureHeaders(
			middleware.CORS(
				middleware.NoStore(
					middleware.LocaleMiddleware(
						middleware.WithAuth(mux))))))

	log.Printf("Bloo server listening on %s (rate limit %d/%s)", cfg.Addr, limiter.Limit(), limiter.Window())
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
