package view

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kleinsmith/orthobill/internal/document"
)

// FormatRand renders a monetary amount for table cells.
func FormatRand(d decimal.Decimal) string {
	return document.FormatRand(d)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
