package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/safehaven/brandsite/internal/analytics"
	"github.com/safehaven/brandsite/internal/attribution"
	"github.com/safehaven/brandsite/internal/brands"
	"github.com/safehaven/brandsite/internal/session"
	"github.com/safehaven/brandsite/pkg/logging"
)

// TrackHandler accepts client-side analytics beacons.
type TrackHandler struct {
	tracker  *analytics.Tracker
	registry *brands.Registry
	logger   *logging.Logger
}

// NewTrackHandler creates the handler.
func NewTrackHandler(tracker *analytics.Tracker, registry *brands.Registry, logger *logging.Logger) *TrackHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &TrackHandler{tracker: tracker, registry: registry, logger: logger.Component("track")}
}

type pageViewRequest struct {
	BrandID      string `json:"brandId"`
	PageLocation string `json:"pageLocation"`
}

// PageView handles POST /track/page-view requests.
func (h *TrackHandler) PageView(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusBadRequest, "missing session")
		return
	}

	var req pageViewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	brand, ok := h.registry.ByID(req.BrandID)
	if !ok {
		brand = h.registry.Default()
	}
	h.tracker.PageView(r.Context(), sess.ID, brand, attribution.FromQuery(r.URL.Query()), req.PageLocation)
	w.WriteHeader(http.StatusAccepted)
}

type phoneClickRequest struct {
	BrandID     string `json:"brandId"`
	PhoneNumber string `json:"phoneNumber"`
}

// PhoneClick handles POST /track/phone-click requests.
func (h *TrackHandler) PhoneClick(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusBadRequest, "missing session")
		return
	}

	var req phoneClickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.tracker.PhoneClick(r.Context(), sess.ID, req.BrandID, req.PhoneNumber)
	w.WriteHeader(http.StatusAccepted)
}
