package order

import (
	"context"
	"errors"
	"time"

	"MiniShop/internal/money"
)

var ErrNotFound = errors.New("order not found")

type Store interface {
	Create(ctx context.Context, o *Order) error
	Get(ctx context.Context, id string) (*Order, bool, error)
}

type PositionView struct {
	Info     string       `json:"info"`
	Quantity money.Amount `json:"quantity"`
	Cost     money.Amount `json:"cost"`
}

type View struct {
	ID        string         `json:"id"`
	ClientID  string         `json:"client_id"`
	Positions []PositionView `json:"positions"`
	Total     money.Amount   `json:"total"`
	Empty     bool           `json:"empty"`
	CreatedAt time.Time      `json:"created_at"`
}

// View renders a consistent snapshot of o.
func (o *Order) View() View {
	positions := o.Positions()

	v := View{
		ID:        o.ID,
		ClientID:  o.ClientID,
		Positions: make([]PositionView, 0, len(positions)),
		Total:     money.Zero,
		Empty:     len(positions) == 0,
		CreatedAt: o.CreatedAt,
	}
	for _, p := range positions {
		v.Positions = append(v.Positions, PositionView{
			Info:     p.Product().Info(),
			Quantity: p.Quantity(),
			Cost:     p.Cost(),
		})
		v.Total = v.Total.Add(p.Cost())
	}
	return v
}
