package leads

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/safehaven/brandsite/internal/brands"
	"github.com/safehaven/brandsite/pkg/logging"
)

// Notifier is told about every stored lead. The handler invokes it on its
// own goroutine, so a slow transport never delays the intake response.
type Notifier interface {
	LeadCreated(ctx context.Context, lead *Lead)
}

// Handler handles HTTP requests for leads
type Handler struct {
	repo     Repository
	registry *brands.Registry
	notifier Notifier
	logger   *logging.Logger
}

// NewHandler creates a new leads handler. notifier may be nil.
func NewHandler(repo Repository, registry *brands.Registry, notifier Notifier, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:     repo,
		registry: registry,
		notifier: notifier,
		logger:   logger.Component("leads"),
	}
}

type intakeResponse struct {
	Success   bool            `json:"success"`
	LeadID    string          `json:"leadId"`
	Message   string          `json:"message"`
	NextSteps intakeNextSteps `json:"nextSteps"`
}

type intakeNextSteps struct {
	AssignedTo    string `json:"assignedTo"`
	ContactWindow string `json:"contactWindow"`
	CallbackPhone string `json:"callbackPhone"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// CreateLead handles POST /lead requests
func (h *Handler) CreateLead(w http.ResponseWriter, r *http.Request) {
	var req CreateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode lead request", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}

	lead, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case ErrInvalidName, ErrMissingContact, ErrMissingBrand:
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		default:
			h.logger.Error("failed to store lead", "error", err, "brand", req.Brand)
			writeJSON(w, http.StatusInternalServerError, errorResponse{
				Error: "Failed to process your request. Please try again or call us directly.",
			})
		}
		return
	}

	if h.notifier != nil {
		// Notification rides outside the request path; the email send must
		// survive the response closing the request context.
		go h.notifier.LeadCreated(context.WithoutCancel(r.Context()), lead)
	}

	brand, _ := h.registry.ByID(lead.Brand)
	h.logger.Info("lead created", "lead_id", lead.PublicID, "brand", lead.Brand, "service_type", lead.ServiceType)

	writeJSON(w, http.StatusOK, intakeResponse{
		Success: true,
		LeadID:  lead.PublicID,
		Message: "Thank you! Your request has been received.",
		NextSteps: intakeNextSteps{
			AssignedTo:    "Local Sales Team",
			ContactWindow: "24 hours",
			CallbackPhone: brand.Phone,
		},
	})
}

// ListLeadsResponse is the response for listing leads
type ListLeadsResponse struct {
	Leads  []*Lead `json:"leads"`
	Count  int     `json:"count"`
	Offset int     `json:"offset"`
	Limit  int     `json:"limit"`
}

// ListLeads handles GET /admin/brands/{brandID}/leads requests
func (h *Handler) ListLeads(w http.ResponseWriter, r *http.Request) {
	brandID := chi.URLParam(r, "brandID")
	if _, ok := h.registry.ByID(brandID); !ok {
		http.Error(w, "unknown brand", http.StatusNotFound)
		return
	}

	filter := ListLeadsFilter{
		Limit:  50,
		Offset: 0,
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit <= 100 {
			filter.Limit = limit
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			filter.Offset = offset
		}
	}
	if st := r.URL.Query().Get("service_type"); st != "" {
		filter.ServiceType = st
	}

	found, err := h.repo.ListByBrand(r.Context(), brandID, filter)
	if err != nil {
		h.logger.Error("failed to list leads", "error", err, "brand", brandID)
		http.Error(w, "failed to list leads", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, ListLeadsResponse{
		Leads:  found,
		Count:  len(found),
		Offset: filter.Offset,
		Limit:  filter.Limit,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
