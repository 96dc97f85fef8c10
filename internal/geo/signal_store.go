package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const signalKeyPrefix = "location:signal:"

// SignalStore persists resolved location signals per session with a TTL.
// Writes overwrite any prior entry for the session.
type SignalStore struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewSignalStore creates a signal store. A 24 hour TTL is used when ttl is
// not positive.
func NewSignalStore(redisClient *redis.Client, ttl time.Duration) *SignalStore {
	if redisClient == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SignalStore{redis: redisClient, ttl: ttl}
}

func signalKey(sessionID string) string {
	return signalKeyPrefix + sessionID
}

// Get returns the cached signal for a session, or nil when absent or
// unreadable. A corrupt entry is treated as a miss, not an error.
func (s *SignalStore) Get(ctx context.Context, sessionID string) (*Signal, error) {
	if s == nil || s.redis == nil {
		return nil, nil
	}
	data, err := s.redis.Get(ctx, signalKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("geo: get signal: %w", err)
	}

	var sig Signal
	if err := json.Unmarshal(data, &sig); err != nil {
		return nil, nil
	}
	return &sig, nil
}

// Set stores a signal for a session, superseding any prior entry.
func (s *SignalStore) Set(ctx context.Context, sessionID string, sig *Signal) error {
	if s == nil || s.redis == nil {
		return nil
	}
	data, err := json.Marshal(sig)
	if err != nil {
		return fmt.Errorf("geo: marshal signal: %w", err)
	}
	if err := s.redis.Set(ctx, signalKey(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("geo: set signal: %w", err)
	}
	return nil
}
