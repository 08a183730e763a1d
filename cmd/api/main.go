package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"weatherapp/docs"
	"weatherapp/internal/config"
	handlers "weatherapp/internal/http/handler"
	"weatherapp/internal/http/middleware"
	"weatherapp/internal/logging"
	"weatherapp/internal/otel"
	"weatherapp/internal/service"
	"weatherapp/internal/weather"
)

// @title Weather API
// @version 1.0
// @description Current weather by city name.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel, time.UTC)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	shutdownTracing, err := otel.Init(context.Background(), cfg.Tracing, logger)
	if err != nil {
		logger.Fatal("failed to initialize tracing", zap.Error(err))
	}

	if cfg.Weather.APIKey == "" {
		logger.Warn("OPENWEATHER_API_KEY is not set; lookups will be rejected upstream")
	}
	provider, err := weather.NewOpenWeather(cfg.Weather)
	if err != nil {
		logger.Fatal("failed to initialize weather provider", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	weatherSvc, err := service.NewWeatherService(provider, logger, reg)
	if err != nil {
		logger.Fatal("failed to initialize weather service", zap.Error(err))
	}

	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		logger.Fatal("failed to initialize metrics middleware", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		DisableStartupMessage: true,
	})

	// Server spans first so request IDs can be attached to them
	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(logger))
	app.Use(promMiddleware.Handler())

	handlers.RegisterRoutes(app, cfg.Weather.APIKey != "", weatherSvc, reg)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
		logger.Info("shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(ctx); err != nil {
			logger.Error("server shutdown failed", zap.Error(err))
		}
	}()

	addr := ":" + cfg.Port
	logger.Info("server starting", zap.String("addr", addr), zap.String("app_host", cfg.AppHost))
	if err := app.Listen(addr); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(ctx); err != nil {
		logger.Error("tracer shutdown failed", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
