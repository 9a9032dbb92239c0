package catalog

import (
	"context"

	"MiniShop/internal/money"
)

type Pricing string

const (
	PerKg  Pricing = "weight"
	PerOne Pricing = "amount"
)

type Entry struct {
	Name      string       `json:"name"`
	Info      string       `json:"info"`
	Pricing   Pricing      `json:"pricing"`
	UnitPrice money.Amount `json:"unit_price"`
}

type Store interface {
	Ping(ctx context.Context) error
	ListSortedByName(ctx context.Context) ([]Entry, error)
	Get(ctx context.Context, name string) (Entry, bool, error)
}

// DefaultEntries is the fixed price list every store starts from.
func DefaultEntries() []Entry {
	return []Entry{
		{Name: "Apple", Info: "Green sweet apple", Pricing: PerKg, UnitPrice: money.FromFloat(11.3)},
		{Name: "Nuts", Info: "Macadamia nut", Pricing: PerKg, UnitPrice: money.FromFloat(34.2)},
		{Name: "Pencil", Info: "Red pencil with rubber", Pricing: PerOne, UnitPrice: money.FromFloat(5.7)},
		{Name: "Chair", Info: "Wooden chair with armrests", Pricing: PerOne, UnitPrice: money.FromInt(75)},
	}
}
