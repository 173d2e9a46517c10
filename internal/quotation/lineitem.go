package quotation

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItemParams carries the editable fields of a line item. Total is
// never accepted from callers; it is always recomputed.
type LineItemParams struct {
	ICD10Code    string
	Description  string
	Quantity     int
	NAPPICode    string
	SAOPACode    string
	PricePerUnit decimal.Decimal
}

// NormalizeQuantity coerces a quantity to a positive integer. Anything
// below one becomes one, matching the form behaviour.
func NormalizeQuantity(q int) int {
	if q < 1 {
		return 1
	}

	return q
}

// NormalizePrice coerces a unit price to a non-negative amount.
func NormalizePrice(p decimal.Decimal) decimal.Decimal {
	if p.IsNegative() {
		return decimal.Zero
	}

	return p
}

// ParseQuantity parses free-form quantity input, coercing invalid or
// non-positive values to 1.
func ParseQuantity(s string) int {
	q, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 1
	}

	return NormalizeQuantity(q)
}

// ParsePrice parses free-form price input, coercing invalid or negative
// values to 0.
func ParsePrice(s string) decimal.Decimal {
	p, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}

	return NormalizePrice(p)
}

func lineTotal(quantity int, price decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}

// NewLineItem builds a line item from params, normalizing quantity and
// price and computing the total.
func NewLineItem(params LineItemParams) LineItem {
	quantity := NormalizeQuantity(params.Quantity)
	price := NormalizePrice(params.PricePerUnit)

	return LineItem{
		ID:           uuid.New(),
		ICD10Code:    params.ICD10Code,
		Description:  params.Description,
		Quantity:     quantity,
		NAPPICode:    params.NAPPICode,
		SAOPACode:    params.SAOPACode,
		PricePerUnit: price,
		Total:        lineTotal(quantity, price),
	}
}

// WithQuantity returns a copy with the quantity updated and the total
// recomputed.
func (li LineItem) WithQuantity(quantity int) LineItem {
	li.Quantity = NormalizeQuantity(quantity)
	li.Total = lineTotal(li.Quantity, li.PricePerUnit)

	return li
}

// WithPricePerUnit returns a copy with the unit price updated and the
// total recomputed.
func (li LineItem) WithPricePerUnit(price decimal.Decimal) LineItem {
	li.PricePerUnit = NormalizePrice(price)
	li.Total = lineTotal(li.Quantity, li.PricePerUnit)

	return li
}

// buildLineItems converts params into owned line items.
func buildLineItems(params []LineItemParams) []LineItem {
	items := make([]LineItem, len(params))
	for i, p := range params {
		items[i] = NewLineItem(p)
	}

	return items
}
