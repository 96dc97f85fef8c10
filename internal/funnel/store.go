package funnel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	draftKeyPrefix     = "funnel:draft:"
	flagsKeyPrefix     = "funnel:location_flags:"
	lastVisitKeyPrefix = "visit:last:"
)

// LocationFlags records whether the location permission prompt was already
// shown or dismissed for a session.
type LocationFlags struct {
	Asked     bool `json:"asked"`
	Dismissed bool `json:"dismissed"`
}

// StateStore is the durable client-state store backing the funnel: the
// current draft, permission-prompt flags and last-visit marks per brand.
// All writes are last-write-wins; cross-tab staleness is acceptable.
type StateStore struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewStateStore creates a state store. ttl of zero keeps entries until
// explicitly cleared.
func NewStateStore(redisClient *redis.Client, ttl time.Duration) *StateStore {
	if redisClient == nil {
		return nil
	}
	return &StateStore{redis: redisClient, ttl: ttl}
}

func draftKey(sessionID string) string { return draftKeyPrefix + sessionID }
func flagsKey(sessionID string) string { return flagsKeyPrefix + sessionID }

func lastVisitKey(sessionID, brandID string) string {
	return fmt.Sprintf("%s%s:%s", lastVisitKeyPrefix, sessionID, brandID)
}

// SaveDraft persists the full draft, overwriting any prior value.
func (s *StateStore) SaveDraft(ctx context.Context, sessionID string, d Draft) error {
	if s == nil || s.redis == nil {
		return nil
	}
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("funnel: marshal draft: %w", err)
	}
	if err := s.redis.Set(ctx, draftKey(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("funnel: save draft: %w", err)
	}
	return nil
}

// LoadDraft returns the persisted draft, or an empty draft when none is
// stored or the stored value is unreadable.
func (s *StateStore) LoadDraft(ctx context.Context, sessionID string) (Draft, error) {
	if s == nil || s.redis == nil {
		return EmptyDraft(), nil
	}
	data, err := s.redis.Get(ctx, draftKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return EmptyDraft(), nil
	}
	if err != nil {
		return EmptyDraft(), fmt.Errorf("funnel: load draft: %w", err)
	}

	var d Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return EmptyDraft(), nil
	}
	if d.CurrentStep < StepContact || d.CurrentStep > StepService {
		d.CurrentStep = StepContact
	}
	return d, nil
}

// ClearDraft removes the persisted draft.
func (s *StateStore) ClearDraft(ctx context.Context, sessionID string) error {
	if s == nil || s.redis == nil {
		return nil
	}
	if err := s.redis.Del(ctx, draftKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("funnel: clear draft: %w", err)
	}
	return nil
}

// SetLocationFlags stores the permission-prompt flags.
func (s *StateStore) SetLocationFlags(ctx context.Context, sessionID string, flags LocationFlags) error {
	if s == nil || s.redis == nil {
		return nil
	}
	data, err := json.Marshal(flags)
	if err != nil {
		return fmt.Errorf("funnel: marshal flags: %w", err)
	}
	if err := s.redis.Set(ctx, flagsKey(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("funnel: set flags: %w", err)
	}
	return nil
}

// LocationFlags returns the permission-prompt flags, zero-valued when unset.
func (s *StateStore) LocationFlags(ctx context.Context, sessionID string) (LocationFlags, error) {
	if s == nil || s.redis == nil {
		return LocationFlags{}, nil
	}
	data, err := s.redis.Get(ctx, flagsKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return LocationFlags{}, nil
	}
	if err != nil {
		return LocationFlags{}, fmt.Errorf("funnel: get flags: %w", err)
	}
	var flags LocationFlags
	if err := json.Unmarshal(data, &flags); err != nil {
		return LocationFlags{}, nil
	}
	return flags, nil
}

// TouchVisit records the current time as the session's last visit to a
// brand and returns the previous mark when one existed.
func (s *StateStore) TouchVisit(ctx context.Context, sessionID, brandID string, now time.Time) (time.Time, bool, error) {
	if s == nil || s.redis == nil {
		return time.Time{}, false, nil
	}
	key := lastVisitKey(sessionID, brandID)

	prev, err := s.redis.GetSet(ctx, key, strconv.FormatInt(now.UnixMilli(), 10)).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("funnel: touch visit: %w", err)
	}

	ms, parseErr := strconv.ParseInt(prev, 10, 64)
	if parseErr != nil {
		return time.Time{}, false, nil
	}
	return time.UnixMilli(ms).UTC(), true, nil
}
