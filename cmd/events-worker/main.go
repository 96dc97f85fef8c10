package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"

	"github.com/safehaven/brandsite/cmd/mainconfig"
	"github.com/safehaven/brandsite/internal/app/bootstrap"
	appconfig "github.com/safehaven/brandsite/internal/config"
	eventsworker "github.com/safehaven/brandsite/internal/worker/events"
	"github.com/safehaven/brandsite/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.AnalyticsQueueURL == "" {
		logger.Error("events worker requires ANALYTICS_QUEUE_URL")
		os.Exit(1)
	}

	redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true)
	if redisClient == nil {
		logger.Error("events worker requires redis")
		os.Exit(1)
	}
	defer func() { _ = redisClient.Close() }()

	awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
	if err != nil {
		logger.Error("failed to load AWS config", "error", err)
		os.Exit(1)
	}

	rollups := eventsworker.NewRollupStore(redisClient, 0)
	consumer := eventsworker.NewConsumer(sqs.NewFromConfig(awsCfg), cfg.AnalyticsQueueURL, rollups, logger)

	go consumer.Run(ctx)
	logger.Info("events worker started", "queue", cfg.AnalyticsQueueURL)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info("events worker shutting down")
	cancel()
	time.Sleep(2 * time.Second)
}
