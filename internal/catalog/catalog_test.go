package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MiniShop/internal/catalog"
)

func TestCatalog_Lookups(t *testing.T) {
	ctx := context.Background()
	c := catalog.New(catalog.NewStore())

	apple, err := c.WeightProduct(ctx, "Apple")
	require.NoError(t, err)
	assert.Equal(t, "Green sweet apple : 11.3 per kg", apple.Info())

	nuts, err := c.WeightProduct(ctx, "Nuts")
	require.NoError(t, err)
	assert.Equal(t, "34.2", nuts.Cost().String())

	pencil, err := c.AmountProduct(ctx, "Pencil")
	require.NoError(t, err)
	assert.Equal(t, "Red pencil with rubber : 5.7 per one", pencil.Info())

	chair, err := c.AmountProduct(ctx, "Chair")
	require.NoError(t, err)
	assert.Equal(t, "75", chair.Cost().String())
}

func TestCatalog_UnknownProduct(t *testing.T) {
	ctx := context.Background()
	c := catalog.New(catalog.NewStore())

	_, err := c.WeightProduct(ctx, "Banana")
	assert.True(t, errors.Is(err, catalog.ErrProductNotFound), "err=%v", err)

	_, err = c.AmountProduct(ctx, "apple")
	assert.True(t, errors.Is(err, catalog.ErrProductNotFound), "lookup is case sensitive, err=%v", err)
}

func TestCatalog_WrongPricingKind(t *testing.T) {
	ctx := context.Background()
	c := catalog.New(catalog.NewStore())

	_, err := c.WeightProduct(ctx, "Pencil")
	assert.True(t, errors.Is(err, catalog.ErrProductNotFound))

	_, err = c.AmountProduct(ctx, "Apple")
	assert.True(t, errors.Is(err, catalog.ErrProductNotFound))
}

func TestCatalog_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	c := catalog.New(catalog.NewStore())

	a1, err := c.WeightProduct(ctx, "Apple")
	require.NoError(t, err)
	a2, err := c.WeightProduct(ctx, "Apple")
	require.NoError(t, err)

	assert.Equal(t, a1, a2)
	assert.Equal(t, a1.Info(), a2.Info())
}

func TestCatalog_ListSortedByName(t *testing.T) {
	c := catalog.New(catalog.NewStore())

	entries, err := c.List(context.Background())
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"Apple", "Chair", "Nuts", "Pencil"}, names)
}
