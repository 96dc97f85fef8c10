package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/safehaven/brandsite/cmd/mainconfig"
	"github.com/safehaven/brandsite/internal/analytics"
	"github.com/safehaven/brandsite/internal/api/router"
	"github.com/safehaven/brandsite/internal/app/bootstrap"
	"github.com/safehaven/brandsite/internal/brands"
	appconfig "github.com/safehaven/brandsite/internal/config"
	"github.com/safehaven/brandsite/internal/funnel"
	"github.com/safehaven/brandsite/internal/geo"
	"github.com/safehaven/brandsite/internal/http/handlers"
	"github.com/safehaven/brandsite/internal/leads"
	"github.com/safehaven/brandsite/internal/navigation"
	"github.com/safehaven/brandsite/internal/notify"
	"github.com/safehaven/brandsite/internal/observability/metrics"
	"github.com/safehaven/brandsite/internal/providers"
	"github.com/safehaven/brandsite/internal/submission"
	"github.com/safehaven/brandsite/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting brandsite API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Shared infrastructure
	redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true)
	pgPool := bootstrap.BuildPostgresPool(ctx, cfg.DatabaseURL, logger)
	if pgPool != nil {
		defer pgPool.Close()
	}

	// Brand routing
	registry := brands.DefaultRegistry()
	nav := navigation.NewResolver(registry)
	resolver := geo.NewResolver(geo.ResolverConfig{
		Registry:     registry,
		Store:        geo.NewSignalStore(redisClient, cfg.LocationCacheTTL),
		Logger:       logger,
		Timeout:      cfg.GeolocationTimeout,
		CacheTTL:     cfg.LocationCacheTTL,
		AutoRedirect: cfg.AutoRedirect,
	})

	// Funnel state and submission
	stateStore := funnel.NewStateStore(redisClient, cfg.DraftTTL)
	engine := funnel.NewEngine(stateStore, logger)
	pipeline := submission.NewPipeline(
		submission.NewHTTPIntakeClient(intakeURL(cfg), cfg.SubmitTimeout),
		stateStore,
		logger,
	)

	// Analytics
	sink := buildSink(ctx, cfg, logger)
	tracker := analytics.NewTracker(sink, stateStore, logger)

	// Lead ledger and notification
	leadsRepo := bootstrap.BuildLeadsRepository(pgPool, logger)
	notifier := notify.NewService(bootstrap.BuildEmailSender(cfg, logger), registry, cfg.LeadNotifyEmail, logger)
	leadsHandler := leads.NewHandler(leadsRepo, registry, notifier, logger)

	// Observability
	siteMetrics := metrics.NewSiteMetrics(nil)

	// Lookup providers
	weather := providers.NewCachedWeatherProvider(providers.NewMockWeatherProvider(), redisClient, cfg.WeatherCacheTTL)

	// Setup router
	routerCfg := &router.Config{
		Logger:             logger,
		BrandHandler:       handlers.NewBrandHandler(registry, nav, siteMetrics, logger),
		LocationHandler:    handlers.NewLocationHandler(resolver, stateStore, tracker, siteMetrics, logger),
		FunnelHandler:      handlers.NewFunnelHandler(engine, pipeline, registry, tracker, siteMetrics, logger),
		AddressHandler:     handlers.NewAddressHandler(providers.MockAddressProvider{}, logger),
		WeatherHandler:     handlers.NewWeatherHandler(weather, logger),
		TrackHandler:       handlers.NewTrackHandler(tracker, registry, logger),
		LeadsHandler:       leadsHandler,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		IntakeRateLimit:    cfg.IntakeRateLimit,
		IntakeBurst:        cfg.IntakeBurst,
	}
	r := router.New(routerCfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

// intakeURL resolves the lead intake endpoint. Without an external override
// the funnel posts to this server's own /lead route.
func intakeURL(cfg *appconfig.Config) string {
	if url := strings.TrimSpace(cfg.LeadIntakeURL); url != "" {
		return url
	}
	return strings.TrimRight(cfg.PublicBaseURL, "/") + "/lead"
}

// buildSink wires the SQS analytics sink when a queue is configured, falling
// back to the structured log on any AWS setup failure.
func buildSink(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) analytics.Sink {
	if strings.TrimSpace(cfg.AnalyticsQueueURL) == "" {
		return bootstrap.BuildAnalyticsSink(nil, cfg, logger)
	}
	awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
	if err != nil {
		logger.Error("failed to load AWS config, analytics falls back to log", "error", err)
		return bootstrap.BuildAnalyticsSink(nil, cfg, logger)
	}
	return bootstrap.BuildAnalyticsSink(sqs.NewFromConfig(awsCfg), cfg, logger)
}
