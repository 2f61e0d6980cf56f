// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/angelamos/bookclub-api/internal/auth"
	"github.com/angelamos/bookclub-api/internal/book"
	"github.com/angelamos/bookclub-api/internal/config"
	"github.com/angelamos/bookclub-api/internal/core"
	"github.com/angelamos/bookclub-api/internal/health"
	"github.com/angelamos/bookclub-api/internal/middleware"
	"github.com/angelamos/bookclub-api/internal/server"
	"github.com/angelamos/bookclub-api/internal/session"
	"github.com/angelamos/bookclub-api/internal/shelf"
	"github.com/angelamos/bookclub-api/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if cfg.Database.Migrate {
		if err := db.Migrate(); err != nil {
			return err
		}
		logger.Info("database migrations applied")
	}

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	sessions := session.NewRedisStore(
		redis.Client,
		cfg.Session.TTL,
		cfg.Session.Sliding,
	)
	logger.Info("session store initialized",
		"ttl", cfg.Session.TTL,
		"sliding", cfg.Session.Sliding,
	)

	userRepo := user.NewRepository(db.DB)

	authSvc := auth.NewService(userRepo, sessions)
	authHandler := auth.NewHandler(authSvc, cfg.Session)

	bookRepo := book.NewRepository(db.DB)
	bookSvc := book.NewService(bookRepo)
	bookHandler := book.NewHandler(bookSvc)

	shelfSvc := shelf.NewService(db.DB, cfg.BookClub.MaxCommentLength)
	shelfHandler := shelf.NewHandler(shelfSvc)

	healthHandler := health.NewHandler(health.HandlerConfig{
		DB:         db,
		Redis:      redis,
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
	})

	srv := server.New(cfg.Server, logger)
	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))
	router.Use(middleware.SessionAuth(sessions, cfg.Session.CookieName))

	healthHandler.RegisterRoutes(router)

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		core.OK(w, map[string]string{"message": "Welcome to the Book Club API"})
	})

	router.Route("/api", func(r chi.Router) {
		authHandler.RegisterRoutes(r)

		r.Route("/books", func(r chi.Router) {
			bookHandler.RegisterRoutes(r)
			shelfHandler.RegisterRoutes(r)
		})
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	healthHandler.SetShutdown(true)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
