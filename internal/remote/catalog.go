package remote

import (
	"context"
	"net/http"
	"slices"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/agentstation/storefront/internal/transport"
	"github.com/agentstation/storefront/pkg/catalog"
	"github.com/agentstation/storefront/pkg/logging"
)

// CatalogClient fetches the product catalog.
type CatalogClient struct {
	client *transport.Client
	paths  Paths
	logger *zerolog.Logger
	group  singleflight.Group
}

// NewCatalogClient creates a catalog client over client.
func NewCatalogClient(client *transport.Client, opts ...Option) *CatalogClient {
	o := applyOptions(opts)
	return &CatalogClient{
		client: client,
		paths:  o.paths,
		logger: o.logger,
	}
}

// FetchCatalog returns the products from the primary endpoint, bypassing
// caches. When the primary fails it tries the static fallback; if that fails
// too the primary's error is returned. Concurrent calls share one fetch; the
// shared fetch is not tied to any single caller's cancellation, and each
// caller stops waiting when its own ctx is done.
func (c *CatalogClient) FetchCatalog(ctx context.Context) ([]catalog.Product, error) {
	ch := c.group.DoChan("catalog", func() (any, error) {
		return c.fetch(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			c.log(ctx).Debug().Msg("Catalog fetch shared with concurrent caller")
		}
		return slices.Clone(res.Val.([]catalog.Product)), nil
	}
}

func (c *CatalogClient) fetch(ctx context.Context) ([]catalog.Product, error) {
	products, err := c.fetchFrom(ctx, c.paths.Products, http.Header{"Cache-Control": {"no-store"}})
	if err == nil {
		return products, nil
	}

	c.log(ctx).Warn().Err(err).
		Str("fallback", c.paths.ProductsFallback).
		Msg("Catalog fetch failed, trying fallback")

	products, fallbackErr := c.fetchFrom(ctx, c.paths.ProductsFallback, nil)
	if fallbackErr == nil {
		return products, nil
	}

	c.log(ctx).Error().Err(fallbackErr).Msg("Catalog fallback failed")
	return nil, err
}

func (c *CatalogClient) fetchFrom(ctx context.Context, path string, header http.Header) ([]catalog.Product, error) {
	resp, err := c.client.Get(ctx, path, header)
	if err != nil {
		return nil, err
	}
	if !transport.Success(resp) {
		return nil, transport.ResponseError(resp)
	}

	body, err := transport.ReadBody(resp)
	if err != nil {
		return nil, err
	}
	return catalog.Decode(body)
}

func (c *CatalogClient) log(ctx context.Context) *zerolog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return logging.FromContext(ctx)
}
