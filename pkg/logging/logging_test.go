package logging_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/storefront/pkg/logging"
)

func restoreDefault(t *testing.T) {
	t.Helper()
	original := *logging.Default()
	level := zerolog.GlobalLevel()
	t.Cleanup(func() {
		logging.SetDefault(original)
		zerolog.SetGlobalLevel(level)
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg := logging.DefaultConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "auto", cfg.Format)
	assert.Equal(t, "stderr", cfg.Output)
	assert.False(t, cfg.AddCaller)
}

func TestConfigureWritesToFile(t *testing.T) {
	restoreDefault(t)

	path := filepath.Join(t.TempDir(), "storefront.log")
	logging.Configure(&logging.Config{
		Level:  "warn",
		Format: "json",
		Output: path,
	})

	logging.Info().Msg("info message")
	logging.Warn().Msg("warn message")
	logging.Error().Msg("error message")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	output := string(content)
	assert.NotContains(t, output, "info message")
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")
}

func TestConsoleFormat(t *testing.T) {
	restoreDefault(t)

	path := filepath.Join(t.TempDir(), "console.log")
	logger := logging.NewLoggerFromConfig(&logging.Config{
		Level:   "info",
		Format:  "console",
		Output:  path,
		NoColor: true,
	})
	logger.Info().Str("key", "value").Msg("console test")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "console test")
	assert.Contains(t, string(content), "INF")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"debug":   zerolog.DebugLevel,
		"":        zerolog.InfoLevel,
		"WARNING": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, logging.ParseLevel(in))
		})
	}
}

func TestSetDefault(t *testing.T) {
	restoreDefault(t)

	var buf bytes.Buffer
	logging.SetDefault(zerolog.New(&buf).Level(zerolog.InfoLevel))
	logging.Info().Msg("through default")
	logging.Err(assert.AnError).Msg("with error")

	assert.Contains(t, buf.String(), "through default")
	assert.Contains(t, buf.String(), assert.AnError.Error())
}

func TestContextLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), tl.Logger)
	ctx = logging.WithRequestID(ctx, "req-123")
	ctx = logging.WithOperation(ctx, "checkout")
	ctx = logging.WithEndpoint(ctx, "/api/receipt")

	logging.FromContext(ctx).Info().Msg("submitting")

	assert.Equal(t, "req-123", logging.RequestID(ctx))
	assert.True(t, tl.Contains(`"request_id":"req-123"`))
	assert.True(t, tl.Contains(`"operation":"checkout"`))
	assert.True(t, tl.Contains(`"endpoint":"/api/receipt"`))
	assert.Len(t, tl.Lines(), 1)
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.Equal(t, logging.Default(), logging.FromContext(context.Background()))
	assert.Empty(t, logging.RequestID(context.Background()))
}
