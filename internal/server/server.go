// Package server provides the storefront dev backend: a small HTTP service
// that serves the product catalog and accepts cart and receipt submissions.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/storefront/internal/server/cache"
	"github.com/agentstation/storefront/internal/server/handlers"
	"github.com/agentstation/storefront/internal/server/middleware"
	"github.com/agentstation/storefront/pkg/constants"
	"github.com/agentstation/storefront/pkg/errors"
	"github.com/agentstation/storefront/pkg/logging"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	cache       *cache.Cache
	submissions *handlers.Submissions
	handlers    *handlers.Handlers
	limiter     *middleware.RateLimiter
	logger      *zerolog.Logger
	config      Config
	startTime   time.Time

	once    sync.Once
	handler http.Handler
}

// New creates a new server instance with the given configuration.
func New(cfg Config, logger *zerolog.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.AuthEnabled && cfg.APIKey == "" {
		return nil, errors.NewConfigError("server", "auth is enabled but no API key is set", nil)
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return nil, errors.NewConfigError("server", fmt.Sprintf("invalid port %d", cfg.Port), nil)
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = constants.CatalogCacheTTL
	}
	if cfg.AuthHeader == "" {
		cfg.AuthHeader = DefaultConfig().AuthHeader
	}

	source := handlers.StaticCatalog(handlers.DemoCatalog())
	if cfg.SeedFile != "" {
		source = handlers.FileCatalog(cfg.SeedFile)
	}

	c := cache.New(cfg.CacheTTL, cfg.CacheTTL*2)
	subs := handlers.NewSubmissions()

	s := &Server{
		cache:       c,
		submissions: subs,
		handlers:    handlers.New(c, source, subs, logger),
		logger:      logger,
		config:      cfg,
		startTime:   time.Now(),
	}

	logger.Debug().
		Str("seed_file", cfg.SeedFile).
		Bool("auth", cfg.AuthEnabled).
		Int("rate_limit", cfg.RateLimit).
		Msg("Server instance created")

	return s, nil
}

// Addr returns the host:port the server listens on.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	s.once.Do(func() {
		s.handler = s.setupRouter()
	})
	return s.handler
}

// HTTPServer returns an http.Server bound to Addr with the configured
// timeouts.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := s.HTTPServer()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", srv.Addr).Msg("Storefront dev backend listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		s.Shutdown()
		if ok {
			return errors.WrapIO("listen", srv.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	s.logger.Info().Msg("Shutting down server")
	err := srv.Shutdown(shutdownCtx)
	s.Shutdown()
	if err != nil {
		s.logger.Warn().Err(err).Msg("Graceful shutdown did not complete")
		return err
	}
	s.logger.Info().Msg("Server stopped")
	return nil
}

// Shutdown stops background work owned by the server.
func (s *Server) Shutdown() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}

// Cache returns the server's cache instance.
func (s *Server) Cache() *cache.Cache {
	return s.cache
}

// Submissions returns the carts and receipts posted so far.
func (s *Server) Submissions() *handlers.Submissions {
	return s.submissions
}

// StartTime returns the server start time for uptime calculations.
func (s *Server) StartTime() time.Time {
	return s.startTime
}
