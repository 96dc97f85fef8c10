package handlers

import (
	"net/http"

	"github.com/safehaven/brandsite/internal/providers"
	"github.com/safehaven/brandsite/pkg/logging"
)

// WeatherHandler serves the local-conditions snippet for brand pages.
type WeatherHandler struct {
	provider providers.WeatherProvider
	logger   *logging.Logger
}

// NewWeatherHandler creates the handler.
func NewWeatherHandler(provider providers.WeatherProvider, logger *logging.Logger) *WeatherHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &WeatherHandler{provider: provider, logger: logger.Component("weather")}
}

// ByZip handles GET /weather?zip= requests.
func (h *WeatherHandler) ByZip(w http.ResponseWriter, r *http.Request) {
	zip := r.URL.Query().Get("zip")
	if len(zip) < 2 {
		writeError(w, http.StatusBadRequest, "Valid ZIP code required")
		return
	}

	report, err := h.provider.WeatherByZip(r.Context(), zip)
	if err != nil {
		h.logger.Error("weather lookup failed", "error", err, "zip", zip)
		writeError(w, http.StatusBadGateway, "weather lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, report)
}
