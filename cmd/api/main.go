package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"pantry/docs"
	"pantry/internal/app"
	"pantry/internal/config"
	handlers "pantry/internal/http/handler"
	"pantry/internal/http/middleware"
	"pantry/internal/logging"
	"pantry/internal/metrics"
	"pantry/internal/otel"
)

// @title Pantry API
// @version 1.0
// @description Grocery inventory with expiry tracking.
// @BasePath /
func main() {
	// .env is auto-loaded if present; real environment variables win
	cfg := config.Load()
	loc := cfg.Location()

	logger, err := logging.New(cfg.LogLevel, loc)
	if err != nil {
		logger = logging.Must("info", loc)
		logger.Warn("invalid_log_level", zap.String("level", cfg.LogLevel), zap.Error(err))
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, logger)
	if err != nil {
		logger.Fatal("tracing_init_failed", zap.Error(err))
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("app_init_failed", zap.Error(err))
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn("app_close_failed", zap.Error(err))
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		metrics.NewInventoryCollector(a.Records, a.Now),
	)
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		logger.Fatal("metrics_init_failed", zap.Error(err))
	}

	srv := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	srv.Use(otelfiber.Middleware())
	srv.Use(middleware.RequestID())
	srv.Use(middleware.Logger(logger))
	srv.Use(promMiddleware.Handler())

	handlers.RegisterRoutes(srv, handlers.Deps{
		Records:  a.Records,
		Export:   a.Export,
		Health:   a.Pinger(),
		Metrics:  adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
		Now:      a.Now,
		ShareTTL: cfg.ExportShareTTL,
	})

	// Swagger UI with dynamic host and scheme
	srv.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}
		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}
		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		logger.Info("server_shutdown")
		if err := srv.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Warn("server_shutdown_failed", zap.Error(err))
		}
	}()

	addr := ":" + cfg.Port
	logger.Info("server_listen", zap.String("addr", addr))
	if err := srv.Listen(addr); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server_failed", zap.Error(err))
	}
}
