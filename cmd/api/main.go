// Package main is the entrypoint for the Linkstash API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/linkstash/linkstash/internal/analysis"
	"github.com/linkstash/linkstash/internal/cache"
	"github.com/linkstash/linkstash/internal/config"
	"github.com/linkstash/linkstash/internal/handler"
	"github.com/linkstash/linkstash/internal/metrics"
	"github.com/linkstash/linkstash/internal/repository"
	"github.com/linkstash/linkstash/internal/server"
	"github.com/linkstash/linkstash/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	// Initialize persistence
	var (
		links  repository.Links
		users  repository.Users
		dbPing handler.HealthChecker
	)
	switch cfg.StoreBackend {
	case config.StorePostgres:
		pg, err := repository.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error(
				"failed to connect to database",
				slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
				slog.String("database_url", redactURL(cfg.DatabaseURL)),
			)
			os.Exit(1)
		}
		defer pg.Close()

		if err := pg.Migrate(ctx); err != nil {
			logger.Error("failed to run migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("connected to database")

		links = pg.Links()
		users = pg.Users()
		dbPing = pg
	case config.StoreMemory:
		mem := repository.NewMemory()
		links = mem.Links()
		users = mem.Users()
		dbPing = mem
		logger.Info("using in-memory store")
	}

	// Initialize cache; optional, only needed for rate limiting
	var cacheClient *cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.New(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error(
				"failed to connect to Redis",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			os.Exit(1)
		}
		defer cacheClient.Close()
		logger.Info("connected to Redis")
	}

	// Initialize analysis collaborator
	var analyzer analysis.Analyzer
	if cfg.AnalysisServiceURL != "" {
		analyzer = analysis.NewClient(cfg.AnalysisServiceURL, logger)
	}

	// Initialize services
	recorder := metrics.NewInMemory()
	userService := service.NewUserService(users, cfg.JWTSecret, cfg.TokenTTL, recorder)
	linkService := service.NewLinkService(links, analyzer, recorder)

	// Initialize handlers
	var cachePing handler.HealthChecker
	if cacheClient != nil {
		cachePing = cacheClient
	}
	userHandler := handler.NewUserHandler(userService, logger)
	linkHandler := handler.NewLinkHandler(linkService, logger)
	healthHandler := handler.NewHealthHandler(dbPing, cachePing)
	metricsHandler := handler.NewMetricsHandler(recorder)

	r := server.NewRouter(server.RouterConfig{
		Logger:                  logger,
		UserHandler:             userHandler,
		LinkHandler:             linkHandler,
		HealthHandler:           healthHandler,
		MetricsHandler:          metricsHandler,
		Cache:                   cacheClient,
		JWTSecret:               cfg.JWTSecret,
		RateLimitLoginEnabled:   cfg.RateLimitLoginEnabled,
		RateLimitLoginPerMinute: cfg.RateLimitLoginPerMinute,
		RateLimitLoginBurst:     cfg.RateLimitLoginBurst,
		RateLimitIPEnabled:      cfg.RateLimitIPEnabled,
		RateLimitIPRPS:          cfg.RateLimitIPRPS,
		RateLimitIPBurst:        cfg.RateLimitIPBurst,
		CORSAllowedOrigins:      cfg.GetCORSAllowedOrigins(),
		MaxRequestBodySize:      cfg.MaxRequestBodySize,
		IsDevelopment:           cfg.IsDevelopment(),
	})

	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"store", cfg.StoreBackend,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	level := parseLogLevel(cfg.LogLevel)

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
