package client

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"MiniShop/internal/events"
	"MiniShop/internal/money"
	"MiniShop/internal/order"
)

type Deps struct {
	Log     *zap.Logger
	Events  events.Sink
	Metrics *Metrics
}

// Client is a buyer with a ruble balance.
type Client struct {
	ID   string
	Name string

	balance Balance
	deps    Deps
}

func New(id, name string, deps Deps) *Client {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.Events == nil {
		deps.Events = events.NopSink{}
	}
	return &Client{ID: id, Name: name, deps: deps}
}

func (c *Client) Balance() money.Amount { return c.balance.Amount() }

// The Earn* helpers take plain floats and panic on NaN or ±Inf, see
// money.FromFloat. Amounts outside money.CheckRange are ignored.
func (c *Client) EarnRubles(rubles float64)     { c.earn(money.RUB, money.FromFloat(rubles)) }
func (c *Client) EarnDollars(dollars float64)   { c.earn(money.USD, money.FromFloat(dollars)) }
func (c *Client) EarnEuros(euros float64)       { c.earn(money.EUR, money.FromFloat(euros)) }
func (c *Client) EarnBitcoins(bitcoins float64) { c.earn(money.BTC, money.FromFloat(bitcoins)) }

// Earn converts amount of currency to rubles and adds it to the balance.
// Amounts outside money.CheckRange are refused with money.ErrOutOfRange.
func (c *Client) Earn(currency money.Currency, amount money.Amount) error {
	if err := money.CheckRange(amount); err != nil {
		return err
	}
	rubles, err := money.ToRubles(currency, amount)
	if err != nil {
		return err
	}
	c.balance.Add(rubles)
	return nil
}

func (c *Client) earn(currency money.Currency, amount money.Amount) {
	if err := c.Earn(currency, amount); err != nil {
		c.deps.Log.Warn("earning refused", zap.String("client_id", c.ID), zap.Error(err))
	}
}

// PayAndReceiveOrder pays for o from the balance and empties o. It returns
// order.ErrEmptyOrder or ErrInsufficientFunds without changing anything when
// the payment cannot go through.
func (c *Client) PayAndReceiveOrder(ctx context.Context, o *order.Order) error {
	total, err := o.Checkout(&c.balance)
	remaining := c.balance.Amount()

	switch {
	case errors.Is(err, order.ErrEmptyOrder):
		c.deps.Metrics.payment(outcomeEmpty)
		c.deps.Log.Info("the order is empty",
			zap.String("client_id", c.ID),
			zap.String("order_id", o.ID),
			zap.Stringer("balance", remaining))
		return err
	case errors.Is(err, ErrInsufficientFunds):
		c.deps.Metrics.payment(outcomeInsufficient)
		c.deps.Log.Info("not enough money to pay for order",
			zap.String("client_id", c.ID),
			zap.String("order_id", o.ID),
			zap.Stringer("cost", o.Cost()),
			zap.Stringer("balance", remaining))
		return err
	case err != nil:
		return err
	}

	c.deps.Metrics.payment(outcomePaid)
	c.deps.Log.Info("the order is received",
		zap.String("client_id", c.ID),
		zap.String("order_id", o.ID),
		zap.Stringer("paid", total),
		zap.Stringer("balance", remaining))

	e := events.PaymentSucceeded(o.ID, c.ID, total, remaining)
	if err := c.deps.Events.Publish(ctx, e); err != nil {
		c.deps.Log.Warn("payment event not published", zap.Error(err), zap.String("event_id", e.EventID))
	}
	return nil
}
