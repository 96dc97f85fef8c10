package geo

import (
	"context"
	"fmt"
	"time"

	"github.com/safehaven/brandsite/internal/brands"
	"github.com/safehaven/brandsite/pkg/logging"
)

// SwitchCause records why a brand transition happened, for the attribution
// trail.
type SwitchCause string

const (
	// CauseDetected marks a transition triggered by location detection.
	CauseDetected SwitchCause = "location_detection"
	// CauseManual marks a user-initiated brand switch.
	CauseManual SwitchCause = "manual_switch"
)

// SwitchAdvice tells the caller what to do with a detected brand: offer a
// switch affordance, or redirect outright when the policy allows it.
type SwitchAdvice struct {
	Brand        brands.Brand `json:"brand"`
	AutoRedirect bool         `json:"auto_redirect"`
	Cause        SwitchCause  `json:"cause"`
}

// Resolver detects a visitor's location and maps it to a brand, caching the
// result per session.
type Resolver struct {
	registry     *brands.Registry
	provider     CoordinateProvider
	store        *SignalStore
	logger       *logging.Logger
	timeout      time.Duration
	cacheTTL     time.Duration
	autoRedirect bool

	now func() time.Time
}

// ResolverConfig configures a Resolver.
type ResolverConfig struct {
	Registry     *brands.Registry
	Provider     CoordinateProvider
	Store        *SignalStore
	Logger       *logging.Logger
	Timeout      time.Duration // device query bound, default 10s
	CacheTTL     time.Duration // signal freshness window, default 24h
	AutoRedirect bool
}

// NewResolver creates a geolocation resolver.
func NewResolver(cfg ResolverConfig) *Resolver {
	if cfg.Registry == nil {
		panic("geo: registry required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 24 * time.Hour
	}
	return &Resolver{
		registry:     cfg.Registry,
		provider:     cfg.Provider,
		store:        cfg.Store,
		logger:       cfg.Logger,
		timeout:      cfg.Timeout,
		cacheTTL:     cfg.CacheTTL,
		autoRedirect: cfg.AutoRedirect,
		now:          time.Now,
	}
}

// Detect resolves the session's location signal. A signal cached within the
// TTL is returned unchanged without querying the device. Detection is
// fail-soft: permission denials, timeouts and missing providers all yield
// nil rather than an error, and the caller proceeds with the default brand.
func (r *Resolver) Detect(ctx context.Context, sessionID string) *Signal {
	if cached, err := r.store.Get(ctx, sessionID); err != nil {
		r.logger.Warn("location cache read failed", "error", err, "session_id", sessionID)
	} else if cached.Fresh(r.now(), r.cacheTTL) {
		return cached
	}

	if r.provider == nil {
		return nil
	}

	queryCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	coords, err := r.provider.Coordinates(queryCtx)
	if err != nil {
		r.logger.Info("location detection failed", "error", err, "session_id", sessionID)
		return nil
	}

	sig := r.resolve(coords)
	if err := r.store.Set(ctx, sessionID, sig); err != nil {
		r.logger.Warn("location cache write failed", "error", err, "session_id", sessionID)
	}
	return sig
}

// Resolve computes and caches a signal from caller-supplied coordinates,
// for clients that report their own device position instead of relying on
// a server-side provider.
func (r *Resolver) Resolve(ctx context.Context, sessionID string, coords Coordinates) *Signal {
	sig := r.resolve(coords)
	if err := r.store.Set(ctx, sessionID, sig); err != nil {
		r.logger.Warn("location cache write failed", "error", err, "session_id", sessionID)
	}
	return sig
}

// resolve maps coordinates to a signal via the region bucket table and the
// brand registry.
func (r *Resolver) resolve(coords Coordinates) *Signal {
	zip := zipForCoordinates(coords)
	brand := r.registry.ResolveZip(zip)

	region := zip
	if len(brand.States) > 0 {
		region = fmt.Sprintf("%s - %s", brand.States[0], zip)
	}

	c := coords
	return &Signal{
		ZipCode:         zip,
		Coordinates:     &c,
		DetectedBrandID: brand.ID,
		RegionLabel:     region,
		ResolvedAt:      r.now().UTC(),
	}
}

// Suggest applies the switch rule: advice is offered only when the detected
// brand differs from the brand on screen and is not the default. The advice
// carries the auto-redirect policy and the detection cause so the caller can
// record the transition.
func (r *Resolver) Suggest(sig *Signal, currentBrandID string) *SwitchAdvice {
	if sig == nil || sig.DetectedBrandID == "" {
		return nil
	}
	if sig.DetectedBrandID == currentBrandID {
		return nil
	}
	if sig.DetectedBrandID == r.registry.Default().ID {
		return nil
	}
	detected, ok := r.registry.ByID(sig.DetectedBrandID)
	if !ok {
		return nil
	}
	return &SwitchAdvice{
		Brand:        detected,
		AutoRedirect: r.autoRedirect,
		Cause:        CauseDetected,
	}
}
