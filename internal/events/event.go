package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"MiniShop/internal/money"
)

const TypePaymentSucceeded = "payment.succeeded"

type Event struct {
	EventID   string       `json:"event_id"`
	Type      string       `json:"type"`
	OrderID   string       `json:"order_id"`
	ClientID  string       `json:"client_id"`
	Amount    money.Amount `json:"amount"`
	Balance   money.Amount `json:"balance"`
	CreatedAt time.Time    `json:"created_at"`
}

func PaymentSucceeded(orderID, clientID string, amount, balance money.Amount) Event {
	return Event{
		EventID:   "e_" + uuid.NewString(),
		Type:      TypePaymentSucceeded,
		OrderID:   orderID,
		ClientID:  clientID,
		Amount:    amount,
		Balance:   balance,
		CreatedAt: time.Now().UTC(),
	}
}

type Sink interface {
	Publish(ctx context.Context, e Event) error
}

// NopSink drops every event. It is used when no broker is configured.
type NopSink struct{}

func (NopSink) Publish(context.Context, Event) error { return nil }
