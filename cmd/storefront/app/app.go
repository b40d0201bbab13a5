// Package app provides the application context and dependency management
// for the storefront CLI. It centralizes configuration, logging, and the
// lazily created storefront client.
package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/storefront"
	"github.com/agentstation/storefront/internal/appcontext"
	"github.com/agentstation/storefront/internal/server"
	"github.com/agentstation/storefront/pkg/errors"
	"github.com/agentstation/storefront/pkg/storage"
)

// Ensure App implements appcontext.Interface at compile time.
var _ appcontext.Interface = (*App)(nil)

// App represents the storefront application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger
	// customLogger keeps an injected logger across flag parsing
	customLogger bool

	stdin  *bufio.Reader
	stdout io.Writer
	stderr io.Writer

	// Client instance (lazy-initialized, singleton)
	mu     sync.Mutex
	client storefront.Client
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		stdin:   bufio.NewReader(os.Stdin),
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Stdout is where command output is written.
func (a *App) Stdout() io.Writer {
	return a.stdout
}

// ServerConfig returns the dev backend configuration.
func (a *App) ServerConfig() (server.Config, error) {
	return a.config.ServerConfig()
}

// Client returns the storefront client, creating it and restoring the cart
// on first use.
func (a *App) Client(ctx context.Context) (storefront.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.client != nil {
		return a.client, nil
	}

	backend, err := storage.Open(a.config.StorageConfig())
	if err != nil {
		return nil, errors.WrapResource("open", "storage", a.config.Storage, err)
	}

	opts, err := a.config.ClientOptions()
	if err != nil {
		_ = backend.Close()
		return nil, err
	}
	opts = append(opts, storefront.WithStorage(backend), storefront.WithLogger(a.logger))

	client, err := storefront.New(opts...)
	if err != nil {
		_ = backend.Close()
		return nil, errors.WrapResource("create", "client", "", err)
	}
	client.Open(ctx)

	a.client = client
	return client, nil
}

// Confirm asks a yes/no question on the terminal. Only "y" or "yes" counts
// as yes; end of input counts as no. With AssumeYes the question is printed
// and answered yes without reading.
func (a *App) Confirm(message string) bool {
	if a.config.AssumeYes {
		fmt.Fprintf(a.stderr, "%s [y/N]: y\n", message)
		return true
	}

	fmt.Fprintf(a.stderr, "%s [y/N]: ", message)
	line, err := a.stdin.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(a.stderr)
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// Shutdown releases the client's storage backend.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.client == nil {
		return nil
	}
	err := a.client.Close()
	a.client = nil
	return err
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		a.customLogger = true
		return nil
	}
}

// WithClient sets a custom storefront client (useful for testing).
func WithClient(client storefront.Client) Option {
	return func(a *App) error {
		a.client = client
		return nil
	}
}

// WithIO replaces the terminal streams.
func WithIO(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(a *App) error {
		if stdin != nil {
			a.stdin = bufio.NewReader(stdin)
		}
		if stdout != nil {
			a.stdout = stdout
		}
		if stderr != nil {
			a.stderr = stderr
		}
		return nil
	}
}
