package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a sum of money or a quantity multiplied into one. All balances
// are kept in rubles.
type Amount = decimal.Decimal

type Currency string

const (
	RUB Currency = "RUB"
	USD Currency = "USD"
	EUR Currency = "EUR"
	BTC Currency = "BTC"
)

var (
	ErrUnknownCurrency = errors.New("unknown currency")
	ErrOutOfRange      = errors.New("amount out of range")
)

// Bounds of an amount accepted from outside the process.
const (
	MaxExponent = 9
	MaxDigits   = 18
)

// Fixed conversion rates to rubles. They are not configurable.
var (
	DollarRate  = decimal.NewFromInt(56)
	EuroRate    = decimal.NewFromInt(60)
	BitcoinRate = decimal.NewFromInt(56 * 21000)
)

// Tolerance is the largest difference at which a balance and a charge are
// treated as equal, so an exact-balance payment is never rejected.
var Tolerance = decimal.New(1, -9)

var Zero = decimal.Zero

// FromFloat panics on NaN and ±Inf, which have no decimal form.
func FromFloat(f float64) Amount { return decimal.NewFromFloat(f) }

func FromInt(n int64) Amount { return decimal.NewFromInt(n) }

func Rate(c Currency) (Amount, error) {
	switch Currency(strings.ToUpper(string(c))) {
	case RUB:
		return decimal.NewFromInt(1), nil
	case USD:
		return DollarRate, nil
	case EUR:
		return EuroRate, nil
	case BTC:
		return BitcoinRate, nil
	default:
		return Zero, fmt.Errorf("%w: %q", ErrUnknownCurrency, c)
	}
}

func ToRubles(c Currency, amount Amount) (Amount, error) {
	rate, err := Rate(c)
	if err != nil {
		return Zero, err
	}
	return amount.Mul(rate), nil
}

// Covers reports whether balance is enough to pay charge.
func Covers(balance, charge Amount) bool {
	return balance.GreaterThan(charge) || balance.Sub(charge).Abs().LessThan(Tolerance)
}

// CheckRange rejects amounts whose exponent or digit count exceed MaxExponent
// and MaxDigits. Arithmetic and rendering cost grow with both.
func CheckRange(a Amount) error {
	exp := a.Exponent()
	if exp > MaxExponent || exp < -MaxExponent || a.NumDigits() > MaxDigits {
		return fmt.Errorf("%w: exponent %d, %d digits", ErrOutOfRange, exp, a.NumDigits())
	}
	return nil
}
