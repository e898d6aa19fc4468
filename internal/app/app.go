package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/htmw/2025Su-ByteSquad/internal/auth"
	"github.com/htmw/2025Su-ByteSquad/internal/config"
	"github.com/htmw/2025Su-ByteSquad/internal/event"
	handler "github.com/htmw/2025Su-ByteSquad/internal/handler/http"
	"github.com/htmw/2025Su-ByteSquad/internal/migrations"
	"github.com/htmw/2025Su-ByteSquad/internal/provider/checkout"
	"github.com/htmw/2025Su-ByteSquad/internal/provider/llm"
	postgresrepo "github.com/htmw/2025Su-ByteSquad/internal/repository/postgres"
	redisrepo "github.com/htmw/2025Su-ByteSquad/internal/repository/redis"
	"github.com/htmw/2025Su-ByteSquad/internal/service"
	"github.com/htmw/2025Su-ByteSquad/pkg/database"
	"github.com/htmw/2025Su-ByteSquad/pkg/health"
	"github.com/htmw/2025Su-ByteSquad/pkg/httpclient"
	pkgkafka "github.com/htmw/2025Su-ByteSquad/pkg/kafka"
	"github.com/htmw/2025Su-ByteSquad/pkg/middleware"
	"github.com/htmw/2025Su-ByteSquad/pkg/tracing"
)

// App wires together all dependencies and runs the fitstore API service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	rdb            *redis.Client
	producer       *pkgkafka.Producer
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "fitstore",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.TracingEndpoint,
		SampleRate:     cfg.TracingSampleRate,
		Enabled:        cfg.TracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Initialize Postgres pool and run pending migrations.
	pgCfg := database.DefaultPostgresConfig()
	pgCfg.Host = cfg.PostgresHost
	pgCfg.Port = cfg.PostgresPort
	pgCfg.User = cfg.PostgresUser
	pgCfg.Password = cfg.PostgresPassword
	pgCfg.DBName = cfg.PostgresDB
	pgCfg.SSLMode = cfg.PostgresSSLMode

	pool, err := database.NewPostgresPoolWithLogger(ctx, &pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	database.RegisterPoolMetrics(pool, "fitstore")
	database.SetSlowQueryLogging(200*time.Millisecond, logger)

	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	// Initialize Redis client.
	rdb, err := database.NewRedisClient(ctx, database.RedisConfig{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	// Initialize Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Repositories.
	cartRepo := redisrepo.NewCartRepository(rdb, cfg.CartTTL())
	userRepo := postgresrepo.NewUserRepository(pool)
	supplementRepo := postgresrepo.NewSupplementRepository(pool)

	// External providers. Both run single-attempt clients behind a circuit
	// breaker: a checkout or generation request must never be retried
	// automatically, and a flapping downstream must not absorb every request.
	checkoutProvider := newCheckoutProvider(cfg, logger)
	llmClient := httpclient.NewCircuitBreakerClient(
		httpclient.New(httpclient.SingleAttemptConfig(time.Duration(cfg.LLMTimeoutSec)*time.Second)),
		httpclient.DefaultCircuitBreakerConfig("llm-provider"),
		logger,
	)
	completer := llm.NewClient(llmClient, cfg.LLMURL, cfg.LLMAPIKey, cfg.LLMModel)

	// Services.
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessExpiry())
	eventProducer := event.NewProducer(producer, logger)

	userService := service.NewUserService(userRepo, jwtManager, eventProducer, logger)
	cartService := service.NewCartService(cartRepo, eventProducer, logger, cfg.CartTTL())
	supplementService := service.NewSupplementService(supplementRepo, logger)
	recommendationService := service.NewRecommendationService(logger)
	workoutService := service.NewWorkoutService(completer, logger)
	checkoutService := service.NewCheckoutService(checkoutProvider, eventProducer, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	healthHandler.Register("kafka", func(ctx context.Context) error {
		return producer.Ping(ctx)
	})

	// HTTP router.
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSAllowedOrigins
	corsCfg.Environment = cfg.Environment

	router := handler.NewRouter(handler.RouterDeps{
		Users:           userService,
		Carts:           cartService,
		Supplements:     supplementService,
		Recommendations: recommendationService,
		Workouts:        workoutService,
		Checkout:        checkoutService,
		JWT:             jwtManager,
		HealthHandler:   healthHandler,
		Logger:          logger,
		CORS:            corsCfg,
		PprofCIDRs:      cfg.PprofAllowedCIDRs,
		RateLimitRPS:    cfg.RateLimitRPS,
		RateLimitBurst:  cfg.RateLimitBurst,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		pool:           pool,
		rdb:            rdb,
		producer:       producer,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// newCheckoutProvider selects the payment-session provider. Without a
// configured session URL the mock provider is used, which keeps local
// development working end to end.
func newCheckoutProvider(cfg *config.Config, logger *slog.Logger) checkout.Provider {
	if cfg.CheckoutSessionURL == "" {
		logger.Warn("no checkout session URL configured, using mock payment provider")
		return checkout.NewMockProvider()
	}

	client := httpclient.NewCircuitBreakerClient(
		httpclient.New(httpclient.SingleAttemptConfig(time.Duration(cfg.CheckoutTimeoutSec)*time.Second)),
		httpclient.DefaultCircuitBreakerConfig("checkout-provider"),
		logger,
	)
	return checkout.NewHTTPProvider(client, cfg.CheckoutSessionURL, cfg.CheckoutAPIKey)
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	// Close Kafka producer.
	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	// Close Redis client.
	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	// Close Postgres pool.
	a.pool.Close()

	// Flush remaining spans.
	if err := a.tracerShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
