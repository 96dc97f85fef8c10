package geo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/safehaven/brandsite/internal/brands"
)

type countingProvider struct {
	coords Coordinates
	err    error
	calls  int
}

func (p *countingProvider) Coordinates(ctx context.Context) (Coordinates, error) {
	p.calls++
	if p.err != nil {
		return Coordinates{}, p.err
	}
	return p.coords, nil
}

func newTestResolver(t *testing.T, provider CoordinateProvider) *Resolver {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewResolver(ResolverConfig{
		Registry: brands.DefaultRegistry(),
		Provider: provider,
		Store:    NewSignalStore(client, 48*time.Hour),
	})
}

func TestDetect_ResolvesBrandFromCoordinates(t *testing.T) {
	provider := &countingProvider{coords: Coordinates{Lat: 33.7, Lng: -84.4}} // Atlanta
	r := newTestResolver(t, provider)

	sig := r.Detect(context.Background(), "sess_1")
	if sig == nil {
		t.Fatal("expected signal")
	}
	if sig.ZipCode != "30301" {
		t.Errorf("expected zip 30301, got %s", sig.ZipCode)
	}
	if sig.DetectedBrandID != "topsecurity" {
		t.Errorf("expected topsecurity, got %s", sig.DetectedBrandID)
	}
	if sig.RegionLabel != "GA - 30301" {
		t.Errorf("expected region label GA - 30301, got %s", sig.RegionLabel)
	}
	if sig.ResolvedAt.IsZero() {
		t.Error("expected ResolvedAt to be set")
	}
}

func TestDetect_FailSoft(t *testing.T) {
	for _, provErr := range []error{ErrPermissionDenied, ErrUnavailable, context.DeadlineExceeded} {
		r := newTestResolver(t, &countingProvider{err: provErr})
		if sig := r.Detect(context.Background(), "sess_1"); sig != nil {
			t.Errorf("expected nil signal on %v, got %+v", provErr, sig)
		}
	}
}

func TestDetect_NilProvider(t *testing.T) {
	r := newTestResolver(t, nil)
	if sig := r.Detect(context.Background(), "sess_1"); sig != nil {
		t.Errorf("expected nil signal without provider, got %+v", sig)
	}
}

func TestDetect_CacheWithinTTL(t *testing.T) {
	provider := &countingProvider{coords: Coordinates{Lat: 28.5, Lng: -81.4}} // FL
	r := newTestResolver(t, provider)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return base }

	first := r.Detect(context.Background(), "sess_1")
	if first == nil || provider.calls != 1 {
		t.Fatalf("expected one device query, got %d", provider.calls)
	}

	// 23 hours later the cached signal is returned unchanged, no new query.
	r.now = func() time.Time { return base.Add(23 * time.Hour) }
	second := r.Detect(context.Background(), "sess_1")
	if second == nil {
		t.Fatal("expected cached signal")
	}
	if provider.calls != 1 {
		t.Errorf("expected no second device query, got %d calls", provider.calls)
	}
	if !second.ResolvedAt.Equal(first.ResolvedAt) {
		t.Error("expected cached signal to be returned unchanged")
	}

	// 25 hours later the cache is stale and a fresh computation happens.
	r.now = func() time.Time { return base.Add(25 * time.Hour) }
	third := r.Detect(context.Background(), "sess_1")
	if third == nil {
		t.Fatal("expected recomputed signal")
	}
	if provider.calls != 2 {
		t.Errorf("expected a second device query, got %d calls", provider.calls)
	}
	if !third.ResolvedAt.After(first.ResolvedAt) {
		t.Error("expected recomputed signal to carry a newer timestamp")
	}
}

func TestSuggest(t *testing.T) {
	r := newTestResolver(t, nil)

	topsec := &Signal{DetectedBrandID: "topsecurity"}

	// Differs from current and is not the default: offer a switch.
	advice := r.Suggest(topsec, "safehaven")
	if advice == nil {
		t.Fatal("expected switch advice")
	}
	if advice.Brand.ID != "topsecurity" {
		t.Errorf("expected topsecurity advice, got %s", advice.Brand.ID)
	}
	if advice.Cause != CauseDetected {
		t.Errorf("expected detection cause, got %s", advice.Cause)
	}

	// Same as current: no advice.
	if advice := r.Suggest(topsec, "topsecurity"); advice != nil {
		t.Errorf("expected no advice for same brand, got %+v", advice)
	}

	// Detected brand is the default: no advice.
	if advice := r.Suggest(&Signal{DetectedBrandID: "safehaven"}, "topsecurity"); advice != nil {
		t.Errorf("expected no advice for default brand, got %+v", advice)
	}

	// Nil signal: no advice.
	if advice := r.Suggest(nil, "safehaven"); advice != nil {
		t.Errorf("expected no advice for nil signal, got %+v", advice)
	}

	// Unknown detected id is rejected at the boundary.
	if advice := r.Suggest(&Signal{DetectedBrandID: "nosuch"}, "safehaven"); advice != nil {
		t.Errorf("expected no advice for unknown brand, got %+v", advice)
	}
}

func TestSuggest_AutoRedirectPolicy(t *testing.T) {
	r := NewResolver(ResolverConfig{
		Registry:     brands.DefaultRegistry(),
		AutoRedirect: true,
	})

	advice := r.Suggest(&Signal{DetectedBrandID: "redhawk"}, "safehaven")
	if advice == nil {
		t.Fatal("expected advice")
	}
	if !advice.AutoRedirect {
		t.Error("expected auto-redirect flag to carry the policy")
	}
}

func TestDetect_ProviderTimeoutBound(t *testing.T) {
	slow := slowProvider{delay: 50 * time.Millisecond}
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	r := NewResolver(ResolverConfig{
		Registry: brands.DefaultRegistry(),
		Provider: slow,
		Store:    NewSignalStore(client, time.Hour),
		Timeout:  5 * time.Millisecond,
	})

	if sig := r.Detect(context.Background(), "sess_1"); sig != nil {
		t.Errorf("expected nil signal on timeout, got %+v", sig)
	}
}

type slowProvider struct {
	delay time.Duration
}

func (p slowProvider) Coordinates(ctx context.Context) (Coordinates, error) {
	select {
	case <-time.After(p.delay):
		return Coordinates{Lat: 35, Lng: -80}, nil
	case <-ctx.Done():
		return Coordinates{}, ctx.Err()
	}
}

func TestStaticProvider(t *testing.T) {
	p := StaticProvider{Coords: Coordinates{Lat: 1, Lng: 2}}
	got, err := p.Coordinates(context.Background())
	if err != nil || got.Lat != 1 {
		t.Errorf("unexpected result: %+v, %v", got, err)
	}

	p = StaticProvider{Err: ErrPermissionDenied}
	if _, err := p.Coordinates(context.Background()); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("expected permission error, got %v", err)
	}
}
