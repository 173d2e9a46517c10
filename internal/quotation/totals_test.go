package quotation_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/kleinsmith/orthobill/internal/quotation"
)

func items(totals ...string) []quotation.LineItem {
	out := make([]quotation.LineItem, len(totals))
	for i, s := range totals {
		out[i] = quotation.LineItem{Total: decimal.RequireFromString(s)}
	}

	return out
}

func TestComputeTotals_VATEnabled(t *testing.T) {
	got := quotation.ComputeTotals(items("65459.13", "5219.40"), true)

	assert.True(t, got.Subtotal.Equal(decimal.RequireFromString("70678.53")), "subtotal %s", got.Subtotal)
	assert.True(t, got.VATAmount.Equal(decimal.RequireFromString("10601.7795")), "vat %s", got.VATAmount)
	assert.True(t, got.Total.Equal(decimal.RequireFromString("81280.3095")), "total %s", got.Total)
}

func TestComputeTotals_VATDisabled(t *testing.T) {
	got := quotation.ComputeTotals(items("65459.13", "5219.40"), false)

	assert.True(t, got.VATAmount.IsZero())
	assert.True(t, got.Total.Equal(got.Subtotal))
}

func TestComputeTotals_Empty(t *testing.T) {
	got := quotation.ComputeTotals(nil, true)

	assert.True(t, got.Subtotal.IsZero())
	assert.True(t, got.VATAmount.IsZero())
	assert.True(t, got.Total.IsZero())
}

// Recomputing totals from the same items must always give the same exact
// values; no rounding error may creep in across repeated edits.
func TestComputeTotals_StableAcrossRecomputation(t *testing.T) {
	lineItems := items("0.10", "0.20", "0.30")

	first := quotation.ComputeTotals(lineItems, true)
	for i := 0; i < 100; i++ {
		again := quotation.ComputeTotals(lineItems, true)
		assert.True(t, again.Total.Equal(first.Total))
	}

	assert.True(t, first.Subtotal.Equal(decimal.RequireFromString("0.60")))
	assert.True(t, first.Total.Equal(decimal.RequireFromString("0.69")))
}
