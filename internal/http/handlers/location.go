package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/safehaven/brandsite/internal/analytics"
	"github.com/safehaven/brandsite/internal/funnel"
	"github.com/safehaven/brandsite/internal/geo"
	"github.com/safehaven/brandsite/internal/observability/metrics"
	"github.com/safehaven/brandsite/internal/session"
	"github.com/safehaven/brandsite/pkg/logging"
)

// LocationHandler runs location detection for a session and reports the
// resulting brand advice.
type LocationHandler struct {
	resolver *geo.Resolver
	flags    *funnel.StateStore
	tracker  *analytics.Tracker
	metrics  *metrics.SiteMetrics
	logger   *logging.Logger
}

// NewLocationHandler creates the handler.
func NewLocationHandler(resolver *geo.Resolver, flags *funnel.StateStore, tracker *analytics.Tracker, m *metrics.SiteMetrics, logger *logging.Logger) *LocationHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &LocationHandler{
		resolver: resolver,
		flags:    flags,
		tracker:  tracker,
		metrics:  m,
		logger:   logger.Component("location"),
	}
}

type detectRequest struct {
	Lat          *float64 `json:"lat"`
	Lng          *float64 `json:"lng"`
	CurrentBrand string   `json:"currentBrand"`
	Granted      *bool    `json:"granted"`
}

type detectResponse struct {
	Detected *geo.Signal       `json:"detected"`
	Advice   *geo.SwitchAdvice `json:"advice"`
}

// DetectLocation handles POST /detect-location requests. The body may
// carry device coordinates; without them the server-side provider is
// queried, and without that the response degrades to no signal.
func (h *LocationHandler) DetectLocation(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusBadRequest, "missing session")
		return
	}

	// An empty body means a plain detection request.
	var req detectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.markPromptAsked(r, sess.ID, req.Granted)

	start := time.Now()
	var sig *geo.Signal
	if req.Lat != nil && req.Lng != nil {
		sig = h.resolver.Resolve(r.Context(), sess.ID, geo.Coordinates{Lat: *req.Lat, Lng: *req.Lng})
	} else {
		sig = h.resolver.Detect(r.Context(), sess.ID)
	}

	outcome := "resolved"
	if sig == nil {
		outcome = "unresolved"
	}
	h.metrics.ObserveDetectLatency(outcome, time.Since(start).Seconds())

	advice := h.resolver.Suggest(sig, req.CurrentBrand)
	if advice != nil {
		h.metrics.ObserveSwitch(advice.Brand.ID, string(advice.Cause))
		if h.tracker != nil {
			h.tracker.BrandSwitch(r.Context(), sess.ID, req.CurrentBrand, advice.Brand.ID, string(advice.Cause))
		}
	}

	writeJSON(w, http.StatusOK, detectResponse{Detected: sig, Advice: advice})
}

// DismissPrompt handles POST /detect-location/dismiss requests, recording
// that the session declined the permission prompt.
func (h *LocationHandler) DismissPrompt(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusBadRequest, "missing session")
		return
	}

	if err := h.flags.SetLocationFlags(r.Context(), sess.ID, funnel.LocationFlags{Asked: true, Dismissed: true}); err != nil {
		h.logger.Warn("flag write failed", "error", err, "session_id", sess.ID)
	}
	if h.tracker != nil {
		h.tracker.LocationPermission(r.Context(), sess.ID, false)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"dismissed": true})
}

// PromptState handles GET /detect-location/prompt requests so the client
// can decide whether to show the permission prompt again.
func (h *LocationHandler) PromptState(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusBadRequest, "missing session")
		return
	}

	flags, err := h.flags.LocationFlags(r.Context(), sess.ID)
	if err != nil {
		h.logger.Warn("flag read failed", "error", err, "session_id", sess.ID)
	}
	writeJSON(w, http.StatusOK, flags)
}

func (h *LocationHandler) markPromptAsked(r *http.Request, sessionID string, granted *bool) {
	flags := funnel.LocationFlags{Asked: true}
	if granted != nil && !*granted {
		flags.Dismissed = true
	}
	if err := h.flags.SetLocationFlags(r.Context(), sessionID, flags); err != nil {
		h.logger.Warn("flag write failed", "error", err, "session_id", sessionID)
	}
	if granted != nil && h.tracker != nil {
		h.tracker.LocationPermission(r.Context(), sessionID, *granted)
	}
}
