// Package storefront is a client for a small web shop backend. It lists the
// product catalog, keeps a shopping cart that survives restarts, and submits
// the cart or a checkout receipt, falling back to local files when the
// backend is unreachable.
//
// The client owns a single cart store, injected into whatever presents it.
// Cart mutations are persisted after every change and reported through typed
// change events.
//
// Example usage:
//
//	backend, _ := storage.Open(storage.Config{Kind: storage.KindFile})
//	sf, err := storefront.New(
//	    storefront.WithBaseURL("http://localhost:8080/"),
//	    storefront.WithStorage(backend),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sf.Close()
//
//	sf.Open(ctx)
//	products, err := sf.LoadCatalog(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = sf.AddProduct(ctx, products[0].ID)
//
//	outcome, err := sf.Checkout(ctx, func(msg string) bool { return true })
//	fmt.Println(outcome.Message)
package storefront

import (
	"context"
	"net/http"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/storefront/internal/remote"
	"github.com/agentstation/storefront/internal/transport"
	"github.com/agentstation/storefront/pkg/cart"
	"github.com/agentstation/storefront/pkg/catalog"
	"github.com/agentstation/storefront/pkg/errors"
	"github.com/agentstation/storefront/pkg/logging"
	"github.com/agentstation/storefront/pkg/storage"
)

// Compile-time interface check to ensure proper implementation.
var _ Client = (*client)(nil)

// Catalog provides access to the product catalog.
type Catalog interface {
	// LoadCatalog fetches the catalog, sorted by product id, and keeps it
	// as the current catalog.
	LoadCatalog(ctx context.Context) ([]catalog.Product, error)

	// Products returns a copy of the current catalog.
	Products() []catalog.Product

	// Search filters the current catalog by name or category.
	Search(query string) []catalog.Product

	// Product looks up a product in the current catalog.
	Product(id int) (catalog.Product, error)
}

// Cart provides access to the shopping cart.
type Cart interface {
	// Cart returns the cart store.
	Cart() *cart.Store

	// AddProduct adds one unit of a catalog product to the cart.
	AddProduct(ctx context.Context, id int) error
}

// Checkout submits the cart or a receipt to the backend.
type Checkout interface {
	Checkout(ctx context.Context, confirm ConfirmFunc) (*Outcome, error)
	SaveCart(ctx context.Context, confirm ConfirmFunc) (*Outcome, error)
	ExportCart() (string, error)
}

// Hooks provides event callback registration.
type Hooks interface {
	OnCartChange(hook cart.ChangeHook)
	OnCatalogLoaded(hook CatalogLoadedHook)
}

// Client is the storefront client.
type Client interface {
	Catalog
	Cart
	Checkout
	Hooks

	// Open restores the persisted cart.
	Open(ctx context.Context)

	// Close releases the storage backend.
	Close() error
}

// client is the internal implementation of the Client interface.
type client struct {
	options *options
	logger  *zerolog.Logger

	catalog *catalog.Catalog
	cart    *cart.Store

	catalogClient *remote.CatalogClient
	syncClient    *remote.SyncClient
	backend       storage.Backend

	// serializes checkout and save-cart workflows
	workflowMu sync.Mutex

	hooks *hooks
}

// New creates a Client with the given options.
func New(opts ...Option) (Client, error) {
	o, err := defaults().apply(opts...)
	if err != nil {
		return nil, err
	}

	logger := o.logger
	if logger == nil {
		logger = logging.Default()
	}

	hc := &http.Client{}
	if o.httpClient != nil {
		cp := *o.httpClient
		hc = &cp
	}
	transportOpts := []transport.Option{
		transport.WithHTTPClient(hc),
		transport.WithTimeout(o.timeout),
	}
	if o.apiKey != "" {
		transportOpts = append(transportOpts, transport.WithAuth(o.auth, o.apiKey))
	}
	tc, err := transport.New(o.baseURL, transportOpts...)
	if err != nil {
		return nil, err
	}

	remoteOpts := []remote.Option{remote.WithPaths(o.paths), remote.WithLogger(logger)}

	backend := o.backend
	if backend == nil {
		backend = storage.NewMemory()
	}

	c := &client{
		options:       o,
		logger:        logger,
		catalog:       catalog.New(),
		catalogClient: remote.NewCatalogClient(tc, remoteOpts...),
		syncClient:    remote.NewSyncClient(tc, remoteOpts...),
		backend:       backend,
		hooks:         newHooks(),
	}

	adapter := storage.NewAdapter(backend, storage.WithKey(o.cartKey), storage.WithLogger(logger))
	c.cart = cart.New(cart.WithPersister(adapter), cart.WithLogger(logger))

	return c, nil
}

// Open restores the persisted cart. Unreadable state leaves the cart empty.
func (c *client) Open(ctx context.Context) {
	c.cart.Load(ctx)
	c.logger.Debug().Int("entries", c.cart.Len()).Msg("Cart restored")
}

// Close releases the storage backend.
func (c *client) Close() error {
	if err := c.backend.Close(); err != nil {
		return errors.WrapResource("close", "storage", "", err)
	}
	return nil
}

// Cart returns the cart store.
func (c *client) Cart() *cart.Store {
	return c.cart
}

// AddProduct adds one unit of the catalog product with the given id.
func (c *client) AddProduct(ctx context.Context, id int) error {
	p, err := c.catalog.Get(id)
	if err != nil {
		return err
	}
	c.cart.Add(ctx, p)
	return nil
}
