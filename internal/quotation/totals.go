package quotation

import "github.com/shopspring/decimal"

// VATRate is the flat South African VAT rate applied when VAT is enabled.
var VATRate = decimal.NewFromInt(15).Div(decimal.NewFromInt(100))

// Totals aggregates a document's line items. Values are exact decimals;
// rounding to two places happens only at presentation, never here, so
// repeated recomputation cannot accumulate rounding error.
type Totals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	VATAmount decimal.Decimal `json:"vatAmount"`
	Total     decimal.Decimal `json:"total"`
}

// ComputeTotals sums the line totals and applies VAT when enabled.
func ComputeTotals(items []LineItem, vatEnabled bool) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Total)
	}

	vat := decimal.Zero
	if vatEnabled {
		vat = subtotal.Mul(VATRate)
	}

	return Totals{
		Subtotal:  subtotal,
		VATAmount: vat,
		Total:     subtotal.Add(vat),
	}
}
