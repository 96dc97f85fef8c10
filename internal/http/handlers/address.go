package handlers

import (
	"errors"
	"net/http"

	"github.com/safehaven/brandsite/internal/providers"
	"github.com/safehaven/brandsite/pkg/logging"
)

// AddressHandler serves address autocomplete for the funnel's address step.
type AddressHandler struct {
	provider providers.AddressProvider
	logger   *logging.Logger
}

// NewAddressHandler creates the handler.
func NewAddressHandler(provider providers.AddressProvider, logger *logging.Logger) *AddressHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AddressHandler{provider: provider, logger: logger.Component("address")}
}

// Suggest handles GET /address/suggest?input= requests. Short input yields
// an empty list, not an error.
func (h *AddressHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	input := r.URL.Query().Get("input")
	suggestions, err := h.provider.Suggest(r.Context(), input)
	if err != nil {
		h.logger.Error("address suggest failed", "error", err)
		writeError(w, http.StatusBadGateway, "address lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}

// Details handles GET /address/details?placeId= requests. The returned
// postal code lets the client auto-fill the funnel's zip field.
func (h *AddressHandler) Details(w http.ResponseWriter, r *http.Request) {
	placeID := r.URL.Query().Get("placeId")
	if placeID == "" {
		writeError(w, http.StatusBadRequest, "placeId is required")
		return
	}

	details, err := h.provider.Details(r.Context(), placeID)
	if errors.Is(err, providers.ErrPlaceNotFound) {
		writeError(w, http.StatusNotFound, "place not found")
		return
	}
	if err != nil {
		h.logger.Error("address details failed", "error", err, "place_id", placeID)
		writeError(w, http.StatusBadGateway, "address lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, details)
}
