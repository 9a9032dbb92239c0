package client

import (
	"errors"
	"sync"

	"MiniShop/internal/money"
)

var ErrInsufficientFunds = errors.New("not enough money")

// Balance is a ruble account. The zero value is an empty balance.
type Balance struct {
	mu     sync.Mutex
	rubles money.Amount
}

func (b *Balance) Add(rubles money.Amount) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rubles = b.rubles.Add(rubles)
}

// Withdraw takes rubles off the balance if it covers them, see money.Covers.
// Otherwise the balance is left as is and ErrInsufficientFunds is returned.
func (b *Balance) Withdraw(rubles money.Amount) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !money.Covers(b.rubles, rubles) {
		return ErrInsufficientFunds
	}
	b.rubles = b.rubles.Sub(rubles)
	return nil
}

func (b *Balance) Amount() money.Amount {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rubles
}
