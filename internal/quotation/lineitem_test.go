package quotation_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/kleinsmith/orthobill/internal/quotation"
)

func TestNewLineItem_ComputesTotal(t *testing.T) {
	item := quotation.NewLineItem(quotation.LineItemParams{
		ICD10Code:    "S78.1",
		Description:  "Prosthetic fitting: TransTibial Endoskeletal Prosthesis",
		Quantity:     2,
		SAOPACode:    "10502",
		PricePerUnit: decimal.RequireFromString("65459.13"),
	})

	assert.NotEmpty(t, item.ID)
	assert.Equal(t, 2, item.Quantity)
	assert.True(t, item.Total.Equal(decimal.RequireFromString("130918.26")), "got %s", item.Total)
}

func TestNewLineItem_CoercesInvalidInput(t *testing.T) {
	item := quotation.NewLineItem(quotation.LineItemParams{
		Quantity:     -3,
		PricePerUnit: decimal.RequireFromString("-10"),
	})

	assert.Equal(t, 1, item.Quantity)
	assert.True(t, item.PricePerUnit.IsZero())
	assert.True(t, item.Total.IsZero())
}

func TestLineItem_WithQuantity_RecomputesTotal(t *testing.T) {
	item := quotation.NewLineItem(quotation.LineItemParams{
		Quantity:     1,
		PricePerUnit: decimal.RequireFromString("5219.40"),
	})

	updated := item.WithQuantity(3)

	assert.Equal(t, 3, updated.Quantity)
	assert.True(t, updated.Total.Equal(decimal.RequireFromString("15658.20")), "got %s", updated.Total)
	// The original item is untouched.
	assert.Equal(t, 1, item.Quantity)
	assert.True(t, item.Total.Equal(decimal.RequireFromString("5219.40")))
}

func TestLineItem_WithPricePerUnit_RecomputesTotal(t *testing.T) {
	item := quotation.NewLineItem(quotation.LineItemParams{
		Quantity:     4,
		PricePerUnit: decimal.RequireFromString("100"),
	})

	updated := item.WithPricePerUnit(decimal.RequireFromString("250.50"))

	assert.True(t, updated.Total.Equal(decimal.RequireFromString("1002.00")), "got %s", updated.Total)

	// Negative price coerces to zero.
	zeroed := item.WithPricePerUnit(decimal.RequireFromString("-1"))
	assert.True(t, zeroed.PricePerUnit.IsZero())
	assert.True(t, zeroed.Total.IsZero())
}

func TestParseQuantity(t *testing.T) {
	assert.Equal(t, 5, quotation.ParseQuantity(" 5 "))
	assert.Equal(t, 1, quotation.ParseQuantity("abc"))
	assert.Equal(t, 1, quotation.ParseQuantity(""))
	assert.Equal(t, 1, quotation.ParseQuantity("0"))
	assert.Equal(t, 1, quotation.ParseQuantity("-2"))
}

func TestParsePrice(t *testing.T) {
	assert.True(t, quotation.ParsePrice("65459.13").Equal(decimal.RequireFromString("65459.13")))
	assert.True(t, quotation.ParsePrice("not a number").IsZero())
	assert.True(t, quotation.ParsePrice("").IsZero())
	assert.True(t, quotation.ParsePrice("-9.99").IsZero())
}
