// Package bootstrap wires shared infrastructure clients from configuration.
package bootstrap

import (
	"context"
	"crypto/tls"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/safehaven/brandsite/internal/analytics"
	appconfig "github.com/safehaven/brandsite/internal/config"
	"github.com/safehaven/brandsite/internal/leads"
	"github.com/safehaven/brandsite/internal/notify"
	"github.com/safehaven/brandsite/pkg/logging"
)

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(redisOptions)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available", "error", err)
		return nil
	}
	return client
}

// BuildPostgresPool connects a pgx pool, or returns nil when no database URL
// is configured. Drafts and sessions live in Redis either way; Postgres only
// backs the lead ledger.
func BuildPostgresPool(ctx context.Context, databaseURL string, logger *logging.Logger) *pgxpool.Pool {
	if strings.TrimSpace(databaseURL) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		logger.Error("postgres pool init failed", "error", err)
		return nil
	}
	if err := pool.Ping(ctx); err != nil {
		logger.Warn("postgres not available", "error", err)
		pool.Close()
		return nil
	}
	return pool
}

// BuildLeadsRepository prefers the Postgres ledger and falls back to the
// in-memory repository when no pool is available.
func BuildLeadsRepository(pool *pgxpool.Pool, logger *logging.Logger) leads.Repository {
	if logger == nil {
		logger = logging.Default()
	}
	if pool != nil {
		logger.Info("leads repository backed by postgres")
		return leads.NewPostgresRepository(pool)
	}
	logger.Warn("leads repository is in-memory, submissions will not survive restarts")
	return leads.NewInMemoryRepository()
}

// BuildEmailSender returns a SendGrid sender when an API key is configured,
// otherwise nil so lead notification stays silent.
func BuildEmailSender(cfg *appconfig.Config, logger *logging.Logger) notify.EmailSender {
	if cfg == nil {
		return nil
	}
	sender := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger)
	if sender == nil {
		return nil
	}
	return sender
}

// BuildAnalyticsSink selects the event sink: SQS when a queue is configured
// and a client was built, the structured log otherwise.
func BuildAnalyticsSink(sqsClient *sqs.Client, cfg *appconfig.Config, logger *logging.Logger) analytics.Sink {
	if cfg != nil && strings.TrimSpace(cfg.AnalyticsQueueURL) != "" && sqsClient != nil {
		return analytics.NewSQSSink(sqsClient, cfg.AnalyticsQueueURL)
	}
	return analytics.NewLogSink(logger)
}
