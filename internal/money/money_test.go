package money_test

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MiniShop/internal/money"
)

func TestToRubles(t *testing.T) {
	cases := []struct {
		currency money.Currency
		amount   float64
		want     string
	}{
		{money.RUB, 10, "10"},
		{money.USD, 100, "5600"},
		{money.EUR, 2, "120"},
		{money.BTC, 1, "1176000"},
		{"usd", 1.5, "84"},
	}

	for _, tc := range cases {
		got, err := money.ToRubles(tc.currency, money.FromFloat(tc.amount))
		require.NoError(t, err, tc.currency)
		assert.Equal(t, tc.want, got.String(), tc.currency)
	}
}

func TestToRubles_UnknownCurrency(t *testing.T) {
	_, err := money.ToRubles("GBP", money.FromInt(1))
	if !errors.Is(err, money.ErrUnknownCurrency) {
		t.Fatalf("err=%v want ErrUnknownCurrency", err)
	}
}

func TestCovers(t *testing.T) {
	b := money.FromFloat(34)

	assert.True(t, money.Covers(b, money.FromFloat(33.99)))
	assert.True(t, money.Covers(b, money.FromFloat(34)))
	assert.True(t, money.Covers(b, b.Add(money.Tolerance.Div(money.FromInt(2)))))
	assert.False(t, money.Covers(b, money.FromFloat(34.01)))
	assert.False(t, money.Covers(money.Zero, money.FromFloat(0.5)))
}

func TestCheckRange(t *testing.T) {
	ok := []string{"0", "10", "0.5", "1176000", "0.000000001", "999999999999999999", "1e9"}
	for _, s := range ok {
		assert.NoError(t, money.CheckRange(decimal.RequireFromString(s)), s)
	}

	bad := []string{"1e10", "1e100000", "1e-10", "1e-100000", "1234567890123456789"}
	for _, s := range bad {
		assert.ErrorIs(t, money.CheckRange(decimal.RequireFromString(s)), money.ErrOutOfRange, s)
	}
}

func TestFromFloat_PanicsOnNonFinite(t *testing.T) {
	assert.Panics(t, func() { money.FromFloat(math.NaN()) })
	assert.Panics(t, func() { money.FromFloat(math.Inf(1)) })
}
