package catalog

import "MiniShop/internal/money"

// ProductInfo is the immutable description of a product.
type ProductInfo struct {
	info string
}

func NewProductInfo(info string) ProductInfo {
	return ProductInfo{info: info}
}

func (p ProductInfo) Info() string { return p.info }

// Product is a priced catalog entry. Info is also the key orders use to
// detect a repeated product.
type Product interface {
	Cost() money.Amount
	Info() string
}

// WeightProduct is priced per kilogram.
type WeightProduct struct {
	info      ProductInfo
	costPerKg money.Amount
}

func NewWeightProduct(info ProductInfo, costPerKg money.Amount) WeightProduct {
	return WeightProduct{info: info, costPerKg: costPerKg}
}

func (p WeightProduct) Cost() money.Amount { return p.costPerKg }

func (p WeightProduct) Info() string {
	return p.info.Info() + " : " + p.costPerKg.String() + " per kg"
}

// AmountProduct is priced per piece.
type AmountProduct struct {
	info       ProductInfo
	costPerOne money.Amount
}

func NewAmountProduct(info ProductInfo, costPerOne money.Amount) AmountProduct {
	return AmountProduct{info: info, costPerOne: costPerOne}
}

func (p AmountProduct) Cost() money.Amount { return p.costPerOne }

func (p AmountProduct) Info() string {
	return p.info.Info() + " : " + p.costPerOne.String() + " per one"
}
