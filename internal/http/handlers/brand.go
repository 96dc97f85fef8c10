package handlers

import (
	"net/http"

	"github.com/safehaven/brandsite/internal/brands"
	"github.com/safehaven/brandsite/internal/navigation"
	"github.com/safehaven/brandsite/internal/observability/metrics"
	"github.com/safehaven/brandsite/pkg/logging"
)

// BrandHandler serves brand identity lookups.
type BrandHandler struct {
	registry *brands.Registry
	nav      *navigation.Resolver
	metrics  *metrics.SiteMetrics
	logger   *logging.Logger
}

// NewBrandHandler creates the handler. metrics may be nil.
func NewBrandHandler(registry *brands.Registry, nav *navigation.Resolver, m *metrics.SiteMetrics, logger *logging.Logger) *BrandHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &BrandHandler{
		registry: registry,
		nav:      nav,
		metrics:  m,
		logger:   logger.Component("brands"),
	}
}

type brandSummary struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Phone  string   `json:"phone"`
	States []string `json:"states"`
}

type zipLookupResponse struct {
	Zip      string       `json:"zip"`
	Brand    brandSummary `json:"brand"`
	Redirect string       `json:"redirect"`
}

// ZipLookup handles GET /zip-lookup?zip= requests. Anything shorter than
// two characters cannot select a region and is rejected.
func (h *BrandHandler) ZipLookup(w http.ResponseWriter, r *http.Request) {
	zip := r.URL.Query().Get("zip")
	if len(zip) < 2 {
		writeError(w, http.StatusBadRequest, "Valid ZIP code required")
		return
	}

	brand := h.registry.ResolveZip(zip)
	h.metrics.ObserveResolution(brand.ID, "zip")

	writeJSON(w, http.StatusOK, zipLookupResponse{
		Zip: zip,
		Brand: brandSummary{
			ID:     brand.ID,
			Name:   brand.Name,
			Phone:  brand.Phone,
			States: brand.States,
		},
		Redirect: h.nav.BrandPath(brand),
	})
}

// ListBrands handles GET /brands requests.
func (h *BrandHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"brands":  h.registry.All(),
		"default": h.registry.Default().ID,
	})
}
