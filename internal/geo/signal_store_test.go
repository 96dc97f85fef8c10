package geo

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) *SignalStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewSignalStore(client, 24*time.Hour)
}

func TestSignalStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sig := &Signal{
		ZipCode:         "28202",
		Coordinates:     &Coordinates{Lat: 35.2, Lng: -80.8},
		DetectedBrandID: "safehaven",
		RegionLabel:     "NC - 28202",
		ResolvedAt:      time.Now().UTC().Truncate(time.Second),
	}

	if err := store.Set(ctx, "sess_1", sig); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := store.Get(ctx, "sess_1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected cached signal")
	}
	if got.ZipCode != sig.ZipCode || got.DetectedBrandID != sig.DetectedBrandID {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.Coordinates == nil || got.Coordinates.Lat != 35.2 {
		t.Errorf("expected coordinates to survive, got %+v", got.Coordinates)
	}
}

func TestSignalStore_MissReturnsNil(t *testing.T) {
	store := newTestStore(t)

	got, err := store.Get(context.Background(), "sess_none")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil on miss, got %+v", got)
	}
}

func TestSignalStore_Supersedes(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := &Signal{ZipCode: "28202", DetectedBrandID: "safehaven", ResolvedAt: time.Now().UTC()}
	second := &Signal{ZipCode: "30301", DetectedBrandID: "topsecurity", ResolvedAt: time.Now().UTC()}

	if err := store.Set(ctx, "sess_1", first); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Set(ctx, "sess_1", second); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := store.Get(ctx, "sess_1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.DetectedBrandID != "topsecurity" {
		t.Errorf("expected newer signal to supersede, got %s", got.DetectedBrandID)
	}
}

func TestSignalStore_NilClient(t *testing.T) {
	var store *SignalStore

	if err := store.Set(context.Background(), "sess_1", &Signal{}); err != nil {
		t.Errorf("nil store Set should be a no-op, got %v", err)
	}
	got, err := store.Get(context.Background(), "sess_1")
	if err != nil || got != nil {
		t.Errorf("nil store Get should miss, got %+v, %v", got, err)
	}
}
