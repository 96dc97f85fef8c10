package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/safehaven/brandsite/internal/brands"
	"github.com/safehaven/brandsite/internal/funnel"
	"github.com/safehaven/brandsite/internal/geo"
	"github.com/safehaven/brandsite/internal/session"
)

func sessionRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	sess := session.Context{ID: "sess_1756600000000_abc123def", StartedAt: time.Now()}
	return req.WithContext(session.WithContext(req.Context(), sess))
}

func newLocationHandler(t *testing.T) *LocationHandler {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	resolver := geo.NewResolver(geo.ResolverConfig{
		Registry: brands.DefaultRegistry(),
		Store:    geo.NewSignalStore(client, time.Hour),
	})
	flags := funnel.NewStateStore(client, time.Hour)
	return NewLocationHandler(resolver, flags, nil, nil, nil)
}

func TestDetectLocation_WithCoordinates(t *testing.T) {
	h := newLocationHandler(t)

	req := sessionRequest(http.MethodPost, "/detect-location",
		`{"lat":33.7,"lng":-84.4,"currentBrand":"safehaven","granted":true}`)
	w := httptest.NewRecorder()
	h.DetectLocation(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp detectResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Detected == nil || resp.Detected.DetectedBrandID != "topsecurity" {
		t.Fatalf("expected topsecurity detection, got %+v", resp.Detected)
	}
	if resp.Advice == nil || resp.Advice.Brand.ID != "topsecurity" {
		t.Errorf("expected switch advice, got %+v", resp.Advice)
	}
}

func TestDetectLocation_NoProviderDegradesToNoSignal(t *testing.T) {
	h := newLocationHandler(t)

	req := sessionRequest(http.MethodPost, "/detect-location", "")
	w := httptest.NewRecorder()
	h.DetectLocation(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp detectResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Detected != nil || resp.Advice != nil {
		t.Errorf("expected degraded empty response, got %+v", resp)
	}
}

func TestDetectLocation_NoAdviceWhenSameBrand(t *testing.T) {
	h := newLocationHandler(t)

	req := sessionRequest(http.MethodPost, "/detect-location",
		`{"lat":33.7,"lng":-84.4,"currentBrand":"topsecurity"}`)
	w := httptest.NewRecorder()
	h.DetectLocation(w, req)

	var resp detectResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Advice != nil {
		t.Errorf("expected no advice for matching brand, got %+v", resp.Advice)
	}
}

func TestDetectLocation_MissingSession(t *testing.T) {
	h := newLocationHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/detect-location", nil)
	w := httptest.NewRecorder()
	h.DetectLocation(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without session, got %d", w.Code)
	}
}

func TestPromptLifecycle(t *testing.T) {
	h := newLocationHandler(t)

	// Fresh session: nothing recorded.
	req := sessionRequest(http.MethodGet, "/detect-location/prompt", "")
	w := httptest.NewRecorder()
	h.PromptState(w, req)

	var flags funnel.LocationFlags
	if err := json.NewDecoder(w.Body).Decode(&flags); err != nil {
		t.Fatal(err)
	}
	if flags.Asked || flags.Dismissed {
		t.Errorf("expected zero flags, got %+v", flags)
	}

	// Dismissal sticks.
	req = sessionRequest(http.MethodPost, "/detect-location/dismiss", "")
	w = httptest.NewRecorder()
	h.DismissPrompt(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("dismiss: expected 200, got %d", w.Code)
	}

	req = sessionRequest(http.MethodGet, "/detect-location/prompt", "")
	w = httptest.NewRecorder()
	h.PromptState(w, req)
	if err := json.NewDecoder(w.Body).Decode(&flags); err != nil {
		t.Fatal(err)
	}
	if !flags.Asked || !flags.Dismissed {
		t.Errorf("expected dismissal recorded, got %+v", flags)
	}
}
