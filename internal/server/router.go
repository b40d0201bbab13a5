package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/agentstation/storefront/internal/server/middleware"
	"github.com/agentstation/storefront/internal/server/response"
	"github.com/agentstation/storefront/pkg/constants"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	r := chi.NewRouter()
	s.applyMiddleware(r)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		response.NotFound(w, "Not found", "No route for "+req.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		response.MethodNotAllowed(w, req.Method)
	})

	h := s.handlers

	// Favicon handler (return 204 No Content to avoid 404 logs)
	r.Get("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.Get(constants.HealthPath, h.HandleHealth)
	r.Get("/products.json", h.HandleProducts)

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.HandleProducts)
		r.Post("/cart", h.HandleCart)
		r.Post("/receipt", h.HandleReceipt)
		r.Get("/receipts", h.HandleListReceipts)
	})

	return r
}

// applyMiddleware installs the middleware chain, outermost first.
func (s *Server) applyMiddleware(r chi.Router) {
	cfg := s.config

	// Request IDs, recovery, and logging are always enabled
	r.Use(chimw.RequestID)
	r.Use(middleware.Recovery(s.logger))
	r.Use(middleware.Logger(s.logger))

	if cfg.CORSEnabled {
		corsConfig := middleware.DefaultCORSConfig()
		if len(cfg.CORSOrigins) > 0 {
			corsConfig.AllowedOrigins = cfg.CORSOrigins
			corsConfig.AllowAll = false
		} else {
			corsConfig.AllowAll = true
		}
		r.Use(middleware.CORS(corsConfig))
	}

	if cfg.AuthEnabled {
		authConfig := middleware.DefaultAuthConfig()
		authConfig.Enabled = true
		authConfig.APIKey = cfg.APIKey
		authConfig.HeaderName = cfg.AuthHeader
		r.Use(middleware.Auth(authConfig, s.logger))
	}

	if cfg.RateLimit > 0 {
		s.limiter = middleware.NewRateLimiter(cfg.RateLimit, s.logger)
		r.Use(middleware.RateLimit(s.limiter))
	}
}
