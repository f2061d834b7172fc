package server

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/linkstash/linkstash/internal/cache"
	"github.com/linkstash/linkstash/internal/handler"
	"github.com/linkstash/linkstash/internal/middleware"
)

// RouterConfig carries everything the router needs. Cache and
// Snapshotter may be nil; the corresponding routes degrade gracefully.
type RouterConfig struct {
	Logger         *slog.Logger
	UserHandler    *handler.UserHandler
	LinkHandler    *handler.LinkHandler
	HealthHandler  *handler.HealthHandler
	MetricsHandler *handler.MetricsHandler
	Cache          *cache.Cache
	JWTSecret      string

	RateLimitLoginEnabled   bool
	RateLimitLoginPerMinute int
	RateLimitLoginBurst     int
	RateLimitIPEnabled      bool
	RateLimitIPRPS          int
	RateLimitIPBurst        int

	CORSAllowedOrigins []string

	// MaxRequestBodySize caps request bodies; zero disables the cap.
	MaxRequestBodySize int64
	IsDevelopment      bool
}

// NewRouter configures the chi router with all routes and middleware.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recoverer(cfg.Logger))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: cfg.IsDevelopment}))
	if cfg.MaxRequestBodySize > 0 {
		r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))
	}

	if len(cfg.CORSAllowedOrigins) > 0 {
		corsCfg := middleware.DefaultCORSConfig()
		corsCfg.AllowedOrigins = cfg.CORSAllowedOrigins
		r.Use(middleware.CORS(corsCfg))
	}

	// Health endpoints (no auth required)
	r.Get("/healthz", cfg.HealthHandler.Healthz)
	r.Get("/readyz", cfg.HealthHandler.Readyz)

	if cfg.MetricsHandler != nil {
		r.Get("/metrics", cfg.MetricsHandler.Metrics)
	}

	// Root info endpoint
	r.Get("/", handler.Hello)

	authCfg := middleware.AuthConfig{
		Logger: cfg.Logger,
		Secret: cfg.JWTSecret,
	}

	rateLimitCfg := middleware.RateLimitConfig{
		Logger:         cfg.Logger,
		Cache:          cfg.Cache,
		LoginEnabled:   cfg.RateLimitLoginEnabled,
		LoginPerMinute: cfg.RateLimitLoginPerMinute,
		LoginBurst:     cfg.RateLimitLoginBurst,
		IPEnabled:      cfg.RateLimitIPEnabled,
		IPRPS:          cfg.RateLimitIPRPS,
		IPBurst:        cfg.RateLimitIPBurst,
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Credential endpoints (no bearer token required); IP-limited
		// since they sit in front of the password hasher
		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.RateLimitIP(rateLimitCfg))

			r.Post("/register", cfg.UserHandler.Register)
			r.With(middleware.RateLimitLogin(rateLimitCfg)).Post("/login", cfg.UserHandler.Login)
		})

		// Link management (requires authentication)
		r.Route("/links", func(r chi.Router) {
			r.Use(middleware.Auth(authCfg))

			r.Get("/", cfg.LinkHandler.Search)
			r.Post("/", cfg.LinkHandler.Create)
			r.Get("/{id}", cfg.LinkHandler.Get)
			r.Put("/{id}", cfg.LinkHandler.Update)
			r.Delete("/{id}", cfg.LinkHandler.Delete)
		})
	})

	// 404 and 405 handlers
	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	return r
}
