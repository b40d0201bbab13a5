package catalog

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/storefront/pkg/errors"
)

func testProducts() []Product {
	return []Product{
		{ID: 3, Name: "Green Tea", Category: "Drinks", Price: decimal.RequireFromString("4.50")},
		{ID: 1, Name: "Notebook", Category: "Stationery", Price: decimal.NewFromInt(10)},
		{ID: 2, Name: "Espresso Beans", Category: "Coffee", Price: decimal.RequireFromString("12.99")},
	}
}

func TestDecode(t *testing.T) {
	t.Run("array payload", func(t *testing.T) {
		data := []byte(`[{"Id":1,"Name":"Notebook","Category":"Stationery","Price":10.5}]`)
		products, err := Decode(data)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, 1, products[0].ID)
		assert.Equal(t, "Notebook", products[0].Name)
		assert.True(t, products[0].Price.Equal(decimal.RequireFromString("10.5")))
	})

	t.Run("non-list payload yields empty catalog", func(t *testing.T) {
		products, err := Decode([]byte(`{"products":[]}`))
		require.NoError(t, err)
		assert.Empty(t, products)
		assert.NotNil(t, products)
	})

	t.Run("null payload yields empty catalog", func(t *testing.T) {
		products, err := Decode([]byte(`null`))
		require.NoError(t, err)
		assert.Empty(t, products)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := Decode([]byte(`<html>`))
		var parseErr *errors.ParseError
		assert.ErrorAs(t, err, &parseErr)
	})
}

func TestProductJSONUsesBackendNames(t *testing.T) {
	p := Product{ID: 7, Name: "Mug", Category: "Kitchen", Price: decimal.RequireFromString("8.25")}
	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Id":7,"Name":"Mug","Category":"Kitchen","Price":8.25}`, string(data))
}

func TestProductJSONLeavesDecimalDefaults(t *testing.T) {
	assert.False(t, decimal.MarshalJSONWithoutQuotes)

	data, err := json.Marshal(decimal.RequireFromString("8.25"))
	require.NoError(t, err)
	assert.Equal(t, `"8.25"`, string(data))

	data, err = json.Marshal(&Product{ID: 1, Price: decimal.RequireFromString("1.50")})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Price":1.5`)

	var back Product
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Price.Equal(decimal.RequireFromString("1.5")))
}

func TestProductValidate(t *testing.T) {
	assert.NoError(t, Product{Price: decimal.Zero}.Validate())
	assert.True(t, errors.IsValidationError(Product{Price: decimal.NewFromInt(-1)}.Validate()))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$35.00", FormatMoney(decimal.NewFromInt(35)))
	assert.Equal(t, "$4.50", FormatMoney(decimal.RequireFromString("4.5")))
}

func TestCatalogGet(t *testing.T) {
	c := New(testProducts()...)

	p, err := c.Get(2)
	require.NoError(t, err)
	assert.Equal(t, "Espresso Beans", p.Name)

	_, err = c.Get(99)
	assert.True(t, errors.IsNotFound(err))
}

func TestCatalogSearch(t *testing.T) {
	c := New(testProducts()...)

	tests := []struct {
		query string
		want  []int
	}{
		{"", []int{3, 1, 2}},
		{"  TEA ", []int{3}},
		{"coffee", []int{2}},
		{"e", []int{3, 1, 2}},
		{"nothing", []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			ids := []int{}
			for _, p := range c.Search(tt.query) {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestCatalogListIsCopy(t *testing.T) {
	c := New(testProducts()...)
	list := c.List()
	list[0].Name = "changed"

	p, err := c.Get(3)
	require.NoError(t, err)
	assert.Equal(t, "Green Tea", p.Name)
	assert.Equal(t, 3, c.Len())
}

func TestSortByID(t *testing.T) {
	products := testProducts()
	sorted := SortByID(products)

	assert.Equal(t, []int{1, 2, 3}, []int{sorted[0].ID, sorted[1].ID, sorted[2].ID})
	assert.Equal(t, 3, products[0].ID, "input must not be reordered")
}
