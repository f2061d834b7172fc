// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Store backends selectable via STORE_BACKEND.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"8080"`

	// Persistence backend: postgres or memory
	StoreBackend string `env:"STORE_BACKEND" envDefault:"postgres"`

	// Database (PostgreSQL); required when StoreBackend is postgres
	DatabaseURL string `env:"DATABASE_URL"`

	// Cache (Redis); optional, enables login rate limiting
	RedisURL string `env:"REDIS_URL"`

	// Token signing
	JWTSecret string        `env:"JWT_SECRET,required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"60m"`

	// Content analysis collaborator; empty disables analysis
	AnalysisServiceURL string `env:"ANALYSIS_SERVICE_URL"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Rate limiting
	RateLimitLoginEnabled   bool `env:"RATE_LIMIT_LOGIN_ENABLED" envDefault:"true"`
	RateLimitLoginPerMinute int  `env:"RATE_LIMIT_LOGIN_PER_MINUTE" envDefault:"10"`
	RateLimitLoginBurst     int  `env:"RATE_LIMIT_LOGIN_BURST" envDefault:"5"`
	RateLimitIPEnabled      bool `env:"RATE_LIMIT_IP_ENABLED" envDefault:"true"`
	RateLimitIPRPS          int  `env:"RATE_LIMIT_IP_RPS" envDefault:"20"`
	RateLimitIPBurst        int  `env:"RATE_LIMIT_IP_BURST" envDefault:"10"`

	// CORS configuration
	// Comma-separated list of allowed origins (e.g., "https://example.com,https://app.example.com")
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:""`

	// Request body size limit in bytes (default 1MB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// GetCORSAllowedOrigins parses the comma-separated origins string into a slice.
func (c *Config) GetCORSAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}

	origins := strings.Split(c.CORSAllowedOrigins, ",")
	result := make([]string, 0, len(origins))

	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// Load parses environment variables and returns a Config.
// Returns an error if required variables are missing or inconsistent.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	switch cfg.StoreBackend {
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when STORE_BACKEND is %s", StorePostgres)
		}
	case StoreMemory:
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	return cfg, nil
}
