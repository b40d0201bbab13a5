package server

import (
	"time"

	"github.com/agentstation/storefront/pkg/constants"
)

// Config holds server configuration.
type Config struct {
	// Server settings
	Host string
	Port int

	// SeedFile is a JSON product list served as the catalog. Empty uses the
	// built-in demo catalog.
	SeedFile string

	// CORS settings
	CORSEnabled bool
	CORSOrigins []string

	// Authentication settings
	AuthEnabled bool
	AuthHeader  string
	APIKey      string

	// Performance settings
	RateLimit int // Requests per minute per IP (0 to disable)
	CacheTTL  time.Duration

	// HTTP timeouts
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:         "localhost",
		Port:         8080,
		CORSEnabled:  true,
		CORSOrigins:  []string{},
		AuthEnabled:  false,
		AuthHeader:   "X-API-Key",
		RateLimit:    0,
		CacheTTL:     constants.CatalogCacheTTL,
		ReadTimeout:  constants.ServerReadTimeout,
		WriteTimeout: constants.ServerWriteTimeout,
		IdleTimeout:  constants.ServerIdleTimeout,
	}
}
