package catalog

import (
	"context"
	"errors"
	"fmt"
)

var ErrProductNotFound = errors.New("unknown product")

// Catalog hands out copies of the products in its store. It replaces a
// process-wide price base: build one at startup and pass it where needed.
type Catalog struct {
	store Store
}

func New(store Store) *Catalog {
	return &Catalog{store: store}
}

func (c *Catalog) Ping(ctx context.Context) error {
	return c.store.Ping(ctx)
}

func (c *Catalog) List(ctx context.Context) ([]Entry, error) {
	return c.store.ListSortedByName(ctx)
}

// Entry returns the raw entry for name, or ErrProductNotFound.
func (c *Catalog) Entry(ctx context.Context, name string) (Entry, error) {
	e, ok, err := c.store.Get(ctx, name)
	if err != nil {
		return Entry{}, err
	}
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrProductNotFound, name)
	}
	return e, nil
}

// WeightProduct looks up a product priced per kilogram.
func (c *Catalog) WeightProduct(ctx context.Context, name string) (WeightProduct, error) {
	e, err := c.entryOf(ctx, name, PerKg)
	if err != nil {
		return WeightProduct{}, err
	}
	return NewWeightProduct(NewProductInfo(e.Info), e.UnitPrice), nil
}

// AmountProduct looks up a product priced per piece.
func (c *Catalog) AmountProduct(ctx context.Context, name string) (AmountProduct, error) {
	e, err := c.entryOf(ctx, name, PerOne)
	if err != nil {
		return AmountProduct{}, err
	}
	return NewAmountProduct(NewProductInfo(e.Info), e.UnitPrice), nil
}

func (c *Catalog) entryOf(ctx context.Context, name string, pricing Pricing) (Entry, error) {
	e, err := c.Entry(ctx, name)
	if err != nil {
		return Entry{}, err
	}
	if e.Pricing != pricing {
		return Entry{}, fmt.Errorf("%w: %q is not priced by %s", ErrProductNotFound, name, pricing)
	}
	return e, nil
}
