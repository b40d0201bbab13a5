package remote

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/storefront/internal/transport"
	"github.com/agentstation/storefront/pkg/cart"
	"github.com/agentstation/storefront/pkg/logging"
	"github.com/agentstation/storefront/pkg/receipt"
)

// SyncClient submits carts and receipts. Submissions are not retried; the
// caller decides what to do on failure.
type SyncClient struct {
	client *transport.Client
	paths  Paths
	logger *zerolog.Logger
}

// NewSyncClient creates a sync client over client.
func NewSyncClient(client *transport.Client, opts ...Option) *SyncClient {
	o := applyOptions(opts)
	return &SyncClient{
		client: client,
		paths:  o.paths,
		logger: o.logger,
	}
}

// SubmitCart posts the cart entries and returns the response body text.
func (s *SyncClient) SubmitCart(ctx context.Context, entries []cart.Entry) (string, error) {
	if entries == nil {
		entries = []cart.Entry{}
	}
	return s.submit(ctx, s.paths.Cart, entries)
}

// SubmitReceipt posts the receipt and returns the response body text.
func (s *SyncClient) SubmitReceipt(ctx context.Context, r *receipt.Receipt) (string, error) {
	return s.submit(ctx, s.paths.Receipt, r)
}

func (s *SyncClient) submit(ctx context.Context, path string, body any) (string, error) {
	logger := s.logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}

	resp, err := s.client.PostJSON(ctx, path, body)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Submission failed")
		return "", err
	}
	if !transport.Success(resp) {
		err := transport.ResponseError(resp)
		logger.Warn().Err(err).Str("path", path).Msg("Submission rejected")
		return "", err
	}

	text, err := transport.ReadBody(resp)
	if err != nil {
		return "", err
	}
	logger.Debug().Str("path", path).Int("status", resp.StatusCode).Msg("Submission accepted")
	return string(text), nil
}
