package appcontext

import (
	"bytes"
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/agentstation/storefront"
	"github.com/agentstation/storefront/internal/server"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	ClientFunc       func(ctx context.Context) (storefront.Client, error)
	ServerConfigFunc func() (server.Config, error)
	ConfirmFunc      func(message string) bool
	LoggerFunc       func() *zerolog.Logger
	Format           string

	// Out collects command output when set; otherwise a private buffer is used.
	Out *bytes.Buffer

	// Prompts records every question passed to Confirm.
	Prompts []string
}

// Client returns a client using the mock function or an error-free nil.
func (m *Mock) Client(ctx context.Context) (storefront.Client, error) {
	if m.ClientFunc != nil {
		return m.ClientFunc(ctx)
	}
	return nil, nil
}

// ServerConfig returns the mock server config or server.DefaultConfig.
func (m *Mock) ServerConfig() (server.Config, error) {
	if m.ServerConfigFunc != nil {
		return m.ServerConfigFunc()
	}
	return server.DefaultConfig(), nil
}

// Confirm records the prompt and answers with the mock function or false.
func (m *Mock) Confirm(message string) bool {
	m.Prompts = append(m.Prompts, message)
	if m.ConfirmFunc != nil {
		return m.ConfirmFunc(message)
	}
	return false
}

// Logger returns a logger using the mock function or a nop logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns Format.
func (m *Mock) OutputFormat() string {
	return m.Format
}

// Stdout returns Out, creating it on first use.
func (m *Mock) Stdout() io.Writer {
	if m.Out == nil {
		m.Out = &bytes.Buffer{}
	}
	return m.Out
}

// Version returns "test".
func (m *Mock) Version() string { return "test" }

// Commit returns "test".
func (m *Mock) Commit() string { return "test" }

// Date returns "test".
func (m *Mock) Date() string { return "test" }

// BuiltBy returns "test".
func (m *Mock) BuiltBy() string { return "test" }

// Ensure Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
