package storage

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/storefront/pkg/cart"
	"github.com/agentstation/storefront/pkg/catalog"
	"github.com/agentstation/storefront/pkg/errors"
	"github.com/agentstation/storefront/pkg/logging"
)

// failingBackend fails every write.
type failingBackend struct {
	*Memory
}

func (failingBackend) Set(context.Context, string, string) error {
	return errors.New("quota exceeded")
}

func sampleEntries() []cart.Entry {
	return []cart.Entry{
		{Product: catalog.Product{ID: 2, Name: "Mug", Category: "Kitchen", Price: decimal.RequireFromString("8.25")}, Quantity: 2},
		{Product: catalog.Product{ID: 1, Name: "Pen", Category: "Stationery", Price: decimal.NewFromInt(1)}, Quantity: 1},
	}
}

func TestAdapterRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			a := NewAdapter(b)
			require.NoError(t, a.Save(ctx, sampleEntries()))

			loaded := a.Load(ctx)
			require.Len(t, loaded, 2)
			for i, want := range sampleEntries() {
				assert.Equal(t, want.Product.ID, loaded[i].Product.ID)
				assert.Equal(t, want.Quantity, loaded[i].Quantity)
				assert.True(t, want.Product.Price.Equal(loaded[i].Product.Price))
			}
		})
	}
}

func TestAdapterWireFormat(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	a := NewAdapter(m)
	require.NoError(t, a.Save(ctx, sampleEntries()[:1]))

	raw, err := m.Get(ctx, "simple_store_cart_v1")
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"product":{"Id":2,"Name":"Mug","Category":"Kitchen","Price":8.25},"quantity":2}]`,
		raw)
}

func TestAdapterLoadMissingIsEmpty(t *testing.T) {
	a := NewAdapter(NewMemory())
	entries := a.Load(context.Background())
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestAdapterLoadCorrupt(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"truncated json", `[{"product":{"Id":1`},
		{"not json", `hello`},
		{"object instead of list", `{"product":{}}`},
		{"wrong quantity type", `[{"product":{"Id":1},"quantity":"two"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			tl := logging.NewTestLogger(t)
			m := NewMemory()
			require.NoError(t, m.Set(ctx, "simple_store_cart_v1", tt.raw))

			a := NewAdapter(m, WithLogger(tl.Logger))
			entries := a.Load(ctx)
			assert.Empty(t, entries)
			assert.True(t, tl.Contains("Stored cart is corrupt"))
		})
	}
}

func TestAdapterLoadCorruptRedisValue(t *testing.T) {
	r, mr := setupTestRedis(t)
	require.NoError(t, mr.Set("storefront:simple_store_cart_v1", "[{broken"))

	entries := NewAdapter(r, WithLogger(&logging.Nop)).Load(context.Background())
	assert.Empty(t, entries)
}

func TestAdapterSaveFailure(t *testing.T) {
	a := NewAdapter(failingBackend{NewMemory()}, WithLogger(&logging.Nop))
	err := a.Save(context.Background(), sampleEntries())

	var ioErr *errors.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "write", ioErr.Operation)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestAdapterWithKey(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	a := NewAdapter(m, WithKey("custom_cart"))
	assert.Equal(t, "custom_cart", a.Key())

	require.NoError(t, a.Save(ctx, nil))
	raw, err := m.Get(ctx, "custom_cart")
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)

	require.NoError(t, a.Reset(ctx))
	_, err = m.Get(ctx, "custom_cart")
	assert.True(t, errors.IsNotFound(err))
}

func TestAdapterBacksStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	s := cart.New(cart.WithPersister(NewAdapter(m)))
	s.Add(ctx, sampleEntries()[0].Product)
	s.Add(ctx, sampleEntries()[0].Product)

	raw, err := m.Get(ctx, "simple_store_cart_v1")
	require.NoError(t, err)
	var stored []cart.Entry
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	require.Len(t, stored, 1)
	assert.Equal(t, 2, stored[0].Quantity)

	reloaded := cart.New(cart.WithPersister(NewAdapter(m)))
	reloaded.Load(ctx)
	assert.Equal(t, 1, reloaded.Len())
	assert.Equal(t, "16.5", reloaded.Total().String())
}
