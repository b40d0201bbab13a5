// Package constants provides shared constants used throughout the storefront
// codebase: endpoint paths, storage keys, timeouts and file permissions.
package constants

import "time"

// Endpoint paths served by the storefront backend.
const (
	// ProductsPath is the primary catalog endpoint
	ProductsPath = "/api/products"

	// ProductsFallbackPath is the static catalog resource tried when ProductsPath fails
	ProductsFallbackPath = "./products.json"

	// CartPath accepts a JSON array of cart entries
	CartPath = "/api/cart"

	// ReceiptPath accepts a JSON receipt
	ReceiptPath = "/api/receipt"

	// HealthPath reports backend liveness
	HealthPath = "/health"
)

// Storage constants
const (
	// CartKey is the versioned key the cart is persisted under
	CartKey = "simple_store_cart_v1"

	// RedisKeyPrefix namespaces storefront keys in a shared redis
	RedisKeyPrefix = "storefront:"

	// StateDirName is the directory under the user config dir holding local state
	StateDirName = "storefront"
)

// Timeout constants
const (
	// DefaultHTTPTimeout is the client timeout for backend requests; zero
	// leaves net/http without a client timeout
	DefaultHTTPTimeout time.Duration = 0

	// ServerReadTimeout is the dev backend read timeout
	ServerReadTimeout = 10 * time.Second

	// ServerWriteTimeout is the dev backend write timeout
	ServerWriteTimeout = 10 * time.Second

	// ServerIdleTimeout is the dev backend keep-alive timeout
	ServerIdleTimeout = 120 * time.Second

	// ShutdownTimeout bounds graceful shutdown of the CLI and dev backend
	ShutdownTimeout = 5 * time.Second

	// CatalogCacheTTL is how long the dev backend caches the encoded catalog
	CatalogCacheTTL = 5 * time.Minute
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644

	// SecureFilePermissions is for state that may hold a user's cart (rw-------)
	SecureFilePermissions = 0600
)

// Limit constants
const (
	// MaxResponseBodySize caps how much of a failed response body is read for error text
	MaxResponseBodySize = 1 << 20

	// MaxPayloadSize caps successful response bodies such as the catalog
	MaxPayloadSize = 64 << 20

	// MaxRequestBodySize caps request bodies accepted by the dev backend
	MaxRequestBodySize = 1 << 20
)
