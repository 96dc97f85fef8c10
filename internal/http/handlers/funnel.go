package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/safehaven/brandsite/internal/analytics"
	"github.com/safehaven/brandsite/internal/attribution"
	"github.com/safehaven/brandsite/internal/brands"
	"github.com/safehaven/brandsite/internal/funnel"
	"github.com/safehaven/brandsite/internal/observability/metrics"
	"github.com/safehaven/brandsite/internal/providers"
	"github.com/safehaven/brandsite/internal/session"
	"github.com/safehaven/brandsite/internal/submission"
	"github.com/safehaven/brandsite/pkg/logging"
)

// FunnelHandler exposes the lead form state machine over HTTP, keyed by
// the caller's session.
type FunnelHandler struct {
	engine   *funnel.Engine
	pipeline *submission.Pipeline
	registry *brands.Registry
	tracker  *analytics.Tracker
	metrics  *metrics.SiteMetrics
	logger   *logging.Logger

	// Coalesces per-keystroke zip updates before recording a resolution.
	zipLookup *providers.Debouncer
}

// NewFunnelHandler creates the handler. tracker and metrics may be nil.
func NewFunnelHandler(engine *funnel.Engine, pipeline *submission.Pipeline, registry *brands.Registry, tracker *analytics.Tracker, m *metrics.SiteMetrics, logger *logging.Logger) *FunnelHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &FunnelHandler{
		engine:    engine,
		pipeline:  pipeline,
		registry:  registry,
		tracker:   tracker,
		metrics:   m,
		logger:    logger.Component("funnel"),
		zipLookup: providers.NewDebouncer(0),
	}
}

type draftResponse struct {
	Draft funnel.Draft       `json:"draft"`
	Field *funnel.FieldState `json:"field,omitempty"`
}

// GetDraft handles GET /funnel requests.
func (h *FunnelHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusBadRequest, "missing session")
		return
	}

	d, err := h.engine.Load(r.Context(), sess.ID)
	if err != nil {
		h.logger.Error("draft load failed", "error", err, "session_id", sess.ID)
		writeError(w, http.StatusInternalServerError, "failed to load form state")
		return
	}
	writeJSON(w, http.StatusOK, draftResponse{Draft: d})
}

type updateFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// UpdateField handles PUT /funnel/field requests.
func (h *FunnelHandler) UpdateField(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusBadRequest, "missing session")
		return
	}

	var req updateFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	d, err := h.engine.Load(r.Context(), sess.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load form state")
		return
	}

	d, state, err := h.engine.UpdateField(r.Context(), sess.ID, d, req.Field, req.Value)
	switch {
	case errors.Is(err, funnel.ErrUnknownField):
		writeError(w, http.StatusBadRequest, "unknown field")
		return
	case errors.Is(err, funnel.ErrInputRejected):
		writeJSON(w, http.StatusUnprocessableEntity, draftResponse{Draft: d, Field: &state})
		return
	case err != nil:
		h.logger.Error("field update failed", "error", err, "session_id", sess.ID, "field", req.Field)
		writeError(w, http.StatusInternalServerError, "failed to save form state")
		return
	}

	if req.Field == "zip" && len(d.Zip) == 5 {
		zip := d.Zip
		h.zipLookup.Schedule(func() {
			brand := h.registry.ResolveZip(zip)
			h.metrics.ObserveResolution(brand.ID, "funnel_zip")
		})
	}

	writeJSON(w, http.StatusOK, draftResponse{Draft: d, Field: &state})
}

type stepRequest struct {
	Brand string `json:"brand"`
}

// Advance handles POST /funnel/advance requests.
func (h *FunnelHandler) Advance(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusBadRequest, "missing session")
		return
	}

	var req stepRequest
	decodeOptional(r, &req)

	d, err := h.engine.Load(r.Context(), sess.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load form state")
		return
	}

	d, err = h.engine.Advance(r.Context(), sess.ID, d)
	if errors.Is(err, funnel.ErrStepGated) {
		writeError(w, http.StatusConflict, "complete the current step first")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save form state")
		return
	}

	h.metrics.ObserveStep(strconv.Itoa(d.CurrentStep - 1))
	if h.tracker != nil {
		attr := attribution.FromQuery(r.URL.Query())
		h.tracker.FormStepCompleted(r.Context(), sess.ID, h.brandOrDefault(req.Brand).ID, attr.Source, d.CurrentStep-1)
	}
	writeJSON(w, http.StatusOK, draftResponse{Draft: d})
}

// Back handles POST /funnel/back requests.
func (h *FunnelHandler) Back(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusBadRequest, "missing session")
		return
	}

	d, err := h.engine.Load(r.Context(), sess.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load form state")
		return
	}
	d, err = h.engine.Back(r.Context(), sess.ID, d)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save form state")
		return
	}
	writeJSON(w, http.StatusOK, draftResponse{Draft: d})
}

// Reset handles POST /funnel/reset requests.
func (h *FunnelHandler) Reset(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusBadRequest, "missing session")
		return
	}

	d, err := h.engine.Reset(r.Context(), sess.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to reset form state")
		return
	}
	writeJSON(w, http.StatusOK, draftResponse{Draft: d})
}

// Submit handles POST /funnel/submit requests. The draft is reloaded from
// the store so the submission reflects every persisted mutation.
func (h *FunnelHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusBadRequest, "missing session")
		return
	}

	var req stepRequest
	decodeOptional(r, &req)
	brand := h.brandOrDefault(req.Brand)
	attr := attribution.FromQuery(r.URL.Query())

	d, err := h.engine.Load(r.Context(), sess.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load form state")
		return
	}

	receipt, err := h.pipeline.Submit(r.Context(), sess.ID, brand.ID, d, attr)
	switch {
	case errors.Is(err, submission.ErrIncomplete):
		h.metrics.ObserveLead(brand.ID, "incomplete")
		writeError(w, http.StatusBadRequest, "form is not complete")
		return
	case errors.Is(err, submission.ErrInFlight):
		writeError(w, http.StatusConflict, "submission already in progress")
		return
	case err != nil:
		h.metrics.ObserveLead(brand.ID, "failed")
		h.logger.Error("submission failed", "error", err, "session_id", sess.ID, "brand", brand.ID)
		writeError(w, http.StatusBadGateway, "Failed to process your request. Please try again or call us directly.")
		return
	}

	h.metrics.ObserveLead(brand.ID, "accepted")
	if h.tracker != nil {
		h.tracker.LeadSubmitted(r.Context(), sess.ID, brand.ID, attr.Source, receipt.LeadID)
	}
	writeJSON(w, http.StatusOK, receipt)
}

// FieldState handles GET /funnel/field-state?field=&value= requests, the
// keystroke-level validation feedback endpoint.
func (h *FunnelHandler) FieldState(w http.ResponseWriter, r *http.Request) {
	field := r.URL.Query().Get("field")
	value := r.URL.Query().Get("value")
	if field == "" {
		writeError(w, http.StatusBadRequest, "field is required")
		return
	}
	writeJSON(w, http.StatusOK, funnel.StateFor(field, value))
}

func (h *FunnelHandler) brandOrDefault(id string) brands.Brand {
	if b, ok := h.registry.ByID(id); ok {
		return b
	}
	return h.registry.Default()
}

func decodeOptional(r *http.Request, v any) {
	if r.Body == nil {
		return
	}
	_ = json.NewDecoder(r.Body).Decode(v)
}
