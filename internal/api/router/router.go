// Package router assembles the HTTP API.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/safehaven/brandsite/internal/http/handlers"
	httpmiddleware "github.com/safehaven/brandsite/internal/http/middleware"
	"github.com/safehaven/brandsite/internal/leads"
	"github.com/safehaven/brandsite/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	BrandHandler       *handlers.BrandHandler
	LocationHandler    *handlers.LocationHandler
	FunnelHandler      *handlers.FunnelHandler
	AddressHandler     *handlers.AddressHandler
	WeatherHandler     *handlers.WeatherHandler
	TrackHandler       *handlers.TrackHandler
	LeadsHandler       *leads.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// Requests/sec and burst applied to lead intake, 0 disables limiting.
	IntakeRateLimit float64
	IntakeBurst     int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}
	r.Use(httpmiddleware.Session)

	r.Get("/health", handlers.Health)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	if cfg.BrandHandler != nil {
		r.Get("/zip-lookup", cfg.BrandHandler.ZipLookup)
		r.Get("/brands", cfg.BrandHandler.ListBrands)
	}

	if cfg.LocationHandler != nil {
		r.Route("/detect-location", func(r chi.Router) {
			r.Post("/", cfg.LocationHandler.DetectLocation)
			r.Post("/dismiss", cfg.LocationHandler.DismissPrompt)
			r.Get("/prompt", cfg.LocationHandler.PromptState)
		})
	}

	if cfg.FunnelHandler != nil {
		r.Route("/funnel", func(r chi.Router) {
			r.Get("/", cfg.FunnelHandler.GetDraft)
			r.Get("/field-state", cfg.FunnelHandler.FieldState)
			r.Put("/field", cfg.FunnelHandler.UpdateField)
			r.Post("/advance", cfg.FunnelHandler.Advance)
			r.Post("/back", cfg.FunnelHandler.Back)
			r.Post("/reset", cfg.FunnelHandler.Reset)
			r.Post("/submit", cfg.FunnelHandler.Submit)
		})
	}

	if cfg.AddressHandler != nil {
		r.Route("/address", func(r chi.Router) {
			r.Get("/suggest", cfg.AddressHandler.Suggest)
			r.Get("/details", cfg.AddressHandler.Details)
		})
	}

	if cfg.WeatherHandler != nil {
		r.Get("/weather", cfg.WeatherHandler.ByZip)
	}

	if cfg.TrackHandler != nil {
		r.Route("/track", func(r chi.Router) {
			r.Post("/page-view", cfg.TrackHandler.PageView)
			r.Post("/phone-click", cfg.TrackHandler.PhoneClick)
		})
	}

	if cfg.LeadsHandler != nil {
		if cfg.IntakeRateLimit > 0 {
			r.With(httpmiddleware.RateLimit(cfg.IntakeRateLimit, cfg.IntakeBurst)).
				Post("/lead", cfg.LeadsHandler.CreateLead)
		} else {
			r.Post("/lead", cfg.LeadsHandler.CreateLead)
		}
		r.Get("/admin/brands/{brandID}/leads", cfg.LeadsHandler.ListLeads)
	}

	return r
}
