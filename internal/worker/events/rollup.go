// Package eventsworker consumes the analytics queue and maintains daily
// event rollups.
package eventsworker

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const rollupKeyPrefix = "analytics:rollup:"

// RollupStore keeps per-day event counters in Redis.
type RollupStore struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewRollupStore creates a rollup store. A non-positive TTL defaults to 40
// days, long enough to cover a monthly reporting cycle.
func NewRollupStore(redisClient *redis.Client, ttl time.Duration) *RollupStore {
	if ttl <= 0 {
		ttl = 40 * 24 * time.Hour
	}
	return &RollupStore{redis: redisClient, ttl: ttl}
}

func rollupKey(day time.Time) string {
	return rollupKeyPrefix + day.UTC().Format("2006-01-02")
}

// Increment bumps the counter for one event name on the given day.
func (s *RollupStore) Increment(ctx context.Context, day time.Time, event string) error {
	if s == nil || s.redis == nil {
		return nil
	}
	key := rollupKey(day)
	if err := s.redis.HIncrBy(ctx, key, event, 1).Err(); err != nil {
		return fmt.Errorf("eventsworker: increment rollup: %w", err)
	}
	if err := s.redis.Expire(ctx, key, s.ttl).Err(); err != nil {
		return fmt.Errorf("eventsworker: expire rollup: %w", err)
	}
	return nil
}

// Counts returns the event counters recorded for the given day.
func (s *RollupStore) Counts(ctx context.Context, day time.Time) (map[string]int64, error) {
	if s == nil || s.redis == nil {
		return nil, nil
	}
	raw, err := s.redis.HGetAll(ctx, rollupKey(day)).Result()
	if err != nil {
		return nil, fmt.Errorf("eventsworker: read rollup: %w", err)
	}
	out := make(map[string]int64, len(raw))
	for event, val := range raw {
		var n int64
		if _, err := fmt.Sscan(val, &n); err != nil {
			continue
		}
		out[event] = n
	}
	return out, nil
}
