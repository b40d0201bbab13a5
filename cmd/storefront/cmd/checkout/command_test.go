package checkout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/storefront"
	"github.com/agentstation/storefront/internal/appcontext"
	"github.com/agentstation/storefront/internal/server"
	"github.com/agentstation/storefront/pkg/catalog"
	"github.com/agentstation/storefront/pkg/logging"
)

func setup(t *testing.T, baseURL string) (*appcontext.Mock, storefront.Client, string) {
	t.Helper()
	dir := t.TempDir()

	client, err := storefront.New(
		storefront.WithBaseURL(baseURL),
		storefront.WithDownloadDir(dir),
		storefront.WithLogger(&logging.Nop),
	)
	require.NoError(t, err)

	app := &appcontext.Mock{
		Format: "json",
		ClientFunc: func(context.Context) (storefront.Client, error) {
			return client, nil
		},
	}
	return app, client, dir
}

func addItem(client storefront.Client) {
	client.Cart().Add(context.Background(), catalog.Product{
		ID: 1, Name: "Notebook", Category: "Stationery", Price: decimal.RequireFromString("4.99"),
	})
}

func run(t *testing.T, app *appcontext.Mock) map[string]any {
	t.Helper()
	cmd := NewCommand(app)
	cmd.SetArgs(nil)
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	var got map[string]any
	require.NoError(t, json.Unmarshal(app.Out.Bytes(), &got))
	return got
}

func receipts(t *testing.T, dir string) []string {
	t.Helper()
	files, err := filepath.Glob(filepath.Join(dir, "receipt-*.json"))
	require.NoError(t, err)
	return files
}

func TestCheckoutSaved(t *testing.T) {
	srv, err := server.New(server.DefaultConfig(), &logging.Nop)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	app, client, dir := setup(t, ts.URL+"/")
	addItem(client)

	got := run(t, app)
	assert.Equal(t, "success", got["level"])
	assert.Equal(t, storefront.MsgReceiptSaved, got["message"])
	assert.True(t, client.Cart().IsEmpty())
	assert.Len(t, receipts(t, dir), 1)
	assert.Len(t, srv.Submissions().Receipts(), 1)
	assert.Empty(t, app.Prompts)
}

func TestCheckoutEmptyCart(t *testing.T) {
	app, _, dir := setup(t, "http://127.0.0.1:1/")

	got := run(t, app)
	assert.Equal(t, "info", got["level"])
	assert.Equal(t, storefront.MsgEmptyCart, got["message"])
	assert.Empty(t, receipts(t, dir))
}

func TestCheckoutFallback(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "receipts disabled", http.StatusInternalServerError)
	}))
	t.Cleanup(backend.Close)

	t.Run("download", func(t *testing.T) {
		app, client, dir := setup(t, backend.URL+"/")
		addItem(client)
		app.ConfirmFunc = func(string) bool { return true }

		got := run(t, app)
		assert.Equal(t, "warning", got["level"])
		assert.Equal(t, storefront.MsgReceiptDownloaded, got["message"])
		assert.Contains(t, got["details"], "server: receipts disabled")
		assert.Equal(t, []string{storefront.ReceiptFallbackPrompt}, app.Prompts)
		assert.True(t, client.Cart().IsEmpty())
		assert.Len(t, receipts(t, dir), 1)
	})

	t.Run("decline", func(t *testing.T) {
		app, client, dir := setup(t, backend.URL+"/")
		addItem(client)

		got := run(t, app)
		assert.Equal(t, "error", got["level"])
		assert.Equal(t, storefront.MsgReceiptNotSaved, got["message"])
		assert.Equal(t, 1, client.Cart().Len())
		assert.Empty(t, receipts(t, dir))
	})
}
