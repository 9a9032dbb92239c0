package order

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"MiniShop/internal/money"
)

var ErrEmptyOrder = errors.New("order is empty")

// Payer is charged by Checkout. Withdraw must leave its state unchanged when
// it returns an error.
type Payer interface {
	Withdraw(amount money.Amount) error
}

// Order is an ordered set of positions keyed by product info. It is safe
// for concurrent use.
type Order struct {
	ID        string
	ClientID  string
	CreatedAt time.Time

	mu        sync.Mutex
	positions []Position
}

func New(id, clientID string) *Order {
	return &Order{
		ID:        id,
		ClientID:  clientID,
		CreatedAt: time.Now().UTC(),
	}
}

// AddPosition appends p, or replaces in place the position whose product
// has the same info. Quantities are not summed.
func (o *Order) AddPosition(p Position) {
	key := p.Product().Info()

	o.mu.Lock()
	defer o.mu.Unlock()

	for i, existing := range o.positions {
		if existing.Product().Info() == key {
			o.positions[i] = p
			return
		}
	}
	o.positions = append(o.positions, p)
}

func (o *Order) Cost() money.Amount {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.costLocked()
}

func (o *Order) costLocked() money.Amount {
	sum := money.Zero
	for _, p := range o.positions {
		sum = sum.Add(p.Cost())
	}
	return sum
}

func (o *Order) Empty() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.positions) == 0
}

func (o *Order) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.positions)
}

// Positions returns a snapshot of the positions in insertion order.
func (o *Order) Positions() []Position {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]Position, len(o.positions))
	copy(out, o.positions)
	return out
}

// Checkout charges p the order total and empties the order. An empty order
// returns ErrEmptyOrder; a failed charge returns the payer's error. In both
// cases neither the order nor the payer change.
func (o *Order) Checkout(p Payer) (money.Amount, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.positions) == 0 {
		return money.Zero, ErrEmptyOrder
	}

	total := o.costLocked()
	if err := p.Withdraw(total); err != nil {
		return money.Zero, err
	}

	o.positions = nil
	return total, nil
}

// WriteInfo writes a human-readable listing of the order.
func (o *Order) WriteInfo(w io.Writer) error {
	positions := o.Positions()

	if len(positions) == 0 {
		_, err := fmt.Fprintln(w, "There are no positions in the order!")
		return err
	}

	total := money.Zero
	ew := &errWriter{w: w}
	ew.printf("Positions in the order:\n")
	ew.printf("-------------------------------\n")
	for _, p := range positions {
		ew.printf("%s\n", p.Product().Info())
		ew.printf("\tQuantity: %s\n", p.Quantity())
		ew.printf("\tCost: %s\n", p.Cost())
		total = total.Add(p.Cost())
	}
	ew.printf("Total cost: %s\n", total)
	ew.printf("--------------------------------\n")
	return ew.err
}

type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
