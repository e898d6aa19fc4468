package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/htmw/2025Su-ByteSquad/pkg/config"
)

// Config holds all configuration for the fitstore API service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// Postgres
	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"fitstore"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" envDefault:"fitstore_secret"`
	PostgresDB       string `env:"POSTGRES_DB" envDefault:"fitstore"`
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`

	// Redis
	RedisHost string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Cart TTL in hours (default: 7 days)
	CartTTLHours int `env:"CART_TTL_HOURS" envDefault:"168"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// JWT
	JWTSecret          string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	JWTAccessExpiryMin int    `env:"JWT_ACCESS_EXPIRY_MINUTES" envDefault:"60"`

	// Payment provider
	CheckoutSessionURL string `env:"CHECKOUT_SESSION_URL" envDefault:""`
	CheckoutAPIKey     string `env:"CHECKOUT_API_KEY" envDefault:""`
	CheckoutTimeoutSec int    `env:"CHECKOUT_TIMEOUT_SECONDS" envDefault:"10"`

	// LLM provider
	LLMURL        string `env:"LLM_URL" envDefault:""`
	LLMAPIKey     string `env:"LLM_API_KEY" envDefault:""`
	LLMModel      string `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
	LLMTimeoutSec int    `env:"LLM_TIMEOUT_SECONDS" envDefault:"60"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Per-IP rate limiting; RPS 0 disables it.
	RateLimitRPS   int `env:"RATE_LIMIT_RPS" envDefault:"50"`
	RateLimitBurst int `env:"RATE_LIMIT_BURST" envDefault:"100"`

	// Pprof debug endpoints; empty list disables them.
	PprofAllowedCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"127.0.0.1/32" envSeparator:","`

	// Tracing
	TracingEnabled    bool    `env:"TRACING_ENABLED" envDefault:"false"`
	TracingEndpoint   string  `env:"TRACING_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	TracingSampleRate float64 `env:"TRACING_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load fitstore config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.CartTTLHours < 1 {
		return fmt.Errorf("cart TTL must be at least 1 hour, got %d", c.CartTTLHours)
	}
	if c.JWTAccessExpiryMin < 1 {
		return fmt.Errorf("JWT access expiry must be at least 1 minute, got %d", c.JWTAccessExpiryMin)
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return fmt.Errorf("rate limit values must not be negative")
	}
	if c.RateLimitRPS > 0 && c.RateLimitBurst < c.RateLimitRPS {
		return fmt.Errorf("rate limit burst (%d) must be at least the RPS (%d)", c.RateLimitBurst, c.RateLimitRPS)
	}
	if c.TracingSampleRate < 0 || c.TracingSampleRate > 1 {
		return fmt.Errorf("tracing sample rate must be between 0 and 1, got %f", c.TracingSampleRate)
	}
	return nil
}

// CartTTL returns the cart TTL as a duration.
func (c *Config) CartTTL() time.Duration {
	return time.Duration(c.CartTTLHours) * time.Hour
}

// JWTAccessExpiry returns the access-token lifetime as a duration.
func (c *Config) JWTAccessExpiry() time.Duration {
	return time.Duration(c.JWTAccessExpiryMin) * time.Minute
}
