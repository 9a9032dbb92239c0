package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"MiniShop/internal/catalog"
	"MiniShop/internal/client"
	"MiniShop/internal/order"
	"MiniShop/pkg/kit"
)

func main() {
	log := kit.NewLogger("demo", os.Getenv("LOG_LEVEL"))
	defer func() { _ = log.Sync() }()

	if err := run(context.Background(), os.Stdout, log); err != nil {
		log.Fatal("demo failed", zap.Error(err))
	}
}

// run builds an order from the default catalog and tries to pay for it with
// a client who earns in several currencies.
func run(ctx context.Context, w io.Writer, log *zap.Logger) error {
	cat := catalog.New(catalog.NewStore())
	o := order.New("o_demo", "c_demo")

	if _, err := fmt.Fprintln(w, o.Empty()); err != nil {
		return err
	}

	steps := []struct {
		name   string
		weight float64
		amount uint64
		kind   catalog.Pricing
	}{
		{name: "Apple", weight: 0.5, kind: catalog.PerKg},
		{name: "Pencil", amount: 2, kind: catalog.PerOne},
		{name: "Apple", weight: 2, kind: catalog.PerKg},
	}

	for _, s := range steps {
		p, err := position(ctx, cat, s.name, s.kind, s.weight, s.amount)
		if err != nil {
			return err
		}
		o.AddPosition(p)

		if err := o.WriteInfo(w); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	c := client.New("c_demo", "Ivan", client.Deps{Log: log})

	c.EarnRubles(10)
	if err := pay(ctx, w, c, o); err != nil {
		return err
	}
	c.EarnDollars(100)
	if err := pay(ctx, w, c, o); err != nil {
		return err
	}
	c.EarnBitcoins(1)
	return pay(ctx, w, c, o)
}

func position(ctx context.Context, cat *catalog.Catalog, name string, kind catalog.Pricing, weight float64, amount uint64) (order.Position, error) {
	if kind == catalog.PerKg {
		p, err := cat.WeightProduct(ctx, name)
		if err != nil {
			return nil, err
		}
		return order.NewWeightPosition(p, weight), nil
	}

	p, err := cat.AmountProduct(ctx, name)
	if err != nil {
		return nil, err
	}
	return order.NewAmountPosition(p, amount), nil
}

func pay(ctx context.Context, w io.Writer, c *client.Client, o *order.Order) error {
	var msg string

	err := c.PayAndReceiveOrder(ctx, o)
	switch {
	case err == nil:
		msg = "The order is received! The purchase is successful!"
	case errors.Is(err, order.ErrEmptyOrder):
		msg = "The order is empty!"
	case errors.Is(err, client.ErrInsufficientFunds):
		msg = "Not enough money to pay for order!"
	default:
		return err
	}

	_, err = fmt.Fprintf(w, "%s Remaining on ruble account: %s\n\n", msg, c.Balance())
	return err
}
