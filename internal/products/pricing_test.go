package products

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPartnerPriceRoundsToCents(t *testing.T) {
	cases := map[string]string{
		"100":    "95",
		"19.99":  "18.99",
		"0":      "0",
		"12.345": "11.73",
		"0.01":   "0.01",
	}
	for in, want := range cases {
		got := PartnerPrice(decimal.RequireFromString(in))
		assert.True(t, decimal.RequireFromString(want).Equal(got), "price %s: got %s want %s", in, got, want)
	}
}
