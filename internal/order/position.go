package order

import (
	"MiniShop/internal/catalog"
	"MiniShop/internal/money"
)

// Position is a line item: a product plus a quantity. A position owns its
// product copy.
type Position interface {
	Product() catalog.Product
	Cost() money.Amount
	Quantity() money.Amount
}

type WeightPosition struct {
	product catalog.WeightProduct
	weight  money.Amount
}

// NewWeightPosition does not validate weight; negative values are kept as is.
// NaN and ±Inf have no decimal form and panic, see money.FromFloat.
func NewWeightPosition(p catalog.WeightProduct, weight float64) WeightPosition {
	return WeightPosition{product: p, weight: money.FromFloat(weight)}
}

func (p WeightPosition) Product() catalog.Product { return p.product }
func (p WeightPosition) Quantity() money.Amount   { return p.weight }
func (p WeightPosition) Cost() money.Amount       { return p.weight.Mul(p.product.Cost()) }

type AmountPosition struct {
	product catalog.AmountProduct
	amount  uint64
}

func NewAmountPosition(p catalog.AmountProduct, amount uint64) AmountPosition {
	return AmountPosition{product: p, amount: amount}
}

func (p AmountPosition) Product() catalog.Product { return p.product }
func (p AmountPosition) Amount() uint64           { return p.amount }

func (p AmountPosition) Quantity() money.Amount {
	return money.FromInt(int64(p.amount))
}

func (p AmountPosition) Cost() money.Amount {
	return p.Quantity().Mul(p.product.Cost())
}
