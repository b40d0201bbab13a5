// Package appcontext provides the shared application context interface
// used by all commands. Commands accept this interface rather than the
// concrete App type so they can be tested with Mock.
package appcontext

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/agentstation/storefront"
	"github.com/agentstation/storefront/internal/server"
)

// Interface defines the application context interface that commands need.
type Interface interface {
	// Client returns the storefront client with the persisted cart already
	// restored, creating it lazily on first use.
	Client(ctx context.Context) (storefront.Client, error)

	// ServerConfig returns the dev backend configuration.
	ServerConfig() (server.Config, error)

	// Confirm asks the user a yes/no question.
	Confirm(message string) bool

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table, wide).
	OutputFormat() string

	// Stdout is where command output is written.
	Stdout() io.Writer

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
