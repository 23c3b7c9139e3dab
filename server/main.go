package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"guideomra/api/routes"
	"guideomra/internal/notifications"
	"guideomra/internal/shared/config"
	"guideomra/internal/shared/database"
	"guideomra/pkg/logger"
	"guideomra/pkg/ratelimit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	appLogger := logger.GetDefault()

	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// Rebuild after GIN_MODE/LOG_LEVEL are known
	appLogger = logger.NewWithWriter(os.Stdout, cfg.LogLevel, !cfg.IsDevelopment())
	logger.SetDefault(appLogger)
	appLogger.Info("Starting",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
		slog.String("commit", GitCommit),
	)

	grids, err := routes.CalendarGrids(cfg.Calendar)
	if err != nil {
		appLogger.Error("Invalid calendar configuration", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	db, err := database.InitDB(ctx, cfg)
	cancel()
	if err != nil {
		appLogger.Error("Failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	var rateLimiter *ratelimit.RateLimiter
	switch {
	case !cfg.RateLimit.Enabled:
		appLogger.Info("Rate limiting disabled")
	case db.Redis == nil:
		appLogger.Warn("Rate limiting disabled: Redis unavailable")
	default:
		rateLimiter = ratelimit.NewRateLimiter(db.Redis, &ratelimit.Config{
			Enabled:                     cfg.RateLimit.Enabled,
			WindowDuration:              cfg.RateLimit.WindowDuration,
			DefaultRequests:             cfg.RateLimit.DefaultRequests,
			PublicRequests:              cfg.RateLimit.PublicRequests,
			AuthRequests:                cfg.RateLimit.AuthRequests,
			ReservationRequests:         cfg.RateLimit.ReservationRequests,
			ReservationCriticalRequests: cfg.RateLimit.ReservationCriticalRequests,
			GuideRequests:               cfg.RateLimit.GuideRequests,
			HealthRequests:              cfg.RateLimit.HealthRequests,
			WhitelistedIPs:              cfg.RateLimit.WhitelistedIPs,
		})
		appLogger.Info("Rate limiter initialized",
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("default_requests", cfg.RateLimit.DefaultRequests),
		)
	}

	publisher := newPublisher(cfg.Kafka, appLogger)
	defer func() {
		if err := publisher.Close(); err != nil {
			appLogger.Error("Error closing event publisher", slog.Any("error", err))
		}
	}()

	router := setupRouter(routes.NewRouter(cfg, db, grids, publisher), rateLimiter)

	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	go func() {
		appLogger.Info("Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Port)),
			slog.String("version", cfg.APIVersion),
			slog.Bool("redis_cache", db.Redis != nil),
			slog.Bool("rate_limiting", rateLimiter != nil),
			slog.Bool("kafka_events", cfg.Kafka.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	appLogger.Info("Server exited gracefully")
}

// newPublisher dials Kafka when enabled. Reservations still succeed without
// it, so a broker failure only downgrades to the no-op publisher.
func newPublisher(cfg config.KafkaConfig, appLogger *logger.Logger) notifications.Publisher {
	if !cfg.Enabled {
		appLogger.Info("Reservation events disabled")
		return notifications.NoopPublisher{}
	}

	producerCfg := notifications.DefaultKafkaProducerConfig()
	producerCfg.Brokers = cfg.Brokers
	producerCfg.ReservationTopic = cfg.ReservationTopic
	producerCfg.RetryMax = cfg.RetryMax
	producerCfg.Timeout = cfg.Timeout

	publisher, err := notifications.NewKafkaPublisher(producerCfg)
	if err != nil {
		appLogger.LogDegraded(context.Background(), "kafka", err)
		return notifications.NoopPublisher{}
	}
	appLogger.Info("Reservation events enabled",
		slog.Any("brokers", cfg.Brokers),
		slog.String("topic", cfg.ReservationTopic),
	)
	return publisher
}

func setupRouter(appRouter *routes.Router, rateLimiter *ratelimit.RateLimiter) *gin.Engine {
	engine := gin.New()
	appLogger := logger.GetDefault()

	engine.Use(RequestLoggerMiddleware(appLogger), gin.Recovery())

	engine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter))
	}

	appRouter.SetupRoutes(engine)

	return engine
}

func RequestLoggerMiddleware(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		l.LogHTTPRequest(c, time.Since(start))
	}
}
