// Package seed loads the demo dataset used for walkthroughs and the
// terminal client. It writes through the repositories directly so it can
// backdate documents; the services would stamp everything with now.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kleinsmith/orthobill/internal/invoice"
	"github.com/kleinsmith/orthobill/internal/quotation"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Demo populates the stores with a converted quotation, its partially
// paid invoice, an overdue invoice and a pending quotation awaiting
// approval.
func Demo(ctx context.Context, quotations quotation.Repository, invoices invoice.Repository) error {
	now := time.Now()

	prosthesis := quotation.NewLineItem(quotation.LineItemParams{
		ICD10Code:    "S78.1",
		Description:  "TransTibial Endoskeletal Prosthesis",
		Quantity:     1,
		SAOPACode:    "10502",
		PricePerUnit: dec("65459.13"),
	})
	liner := quotation.NewLineItem(quotation.LineItemParams{
		ICD10Code:    "S78.1",
		Description:  "Custom silicone liner with shuttle lock",
		Quantity:     1,
		SAOPACode:    "10556",
		PricePerUnit: dec("5219.40"),
	})

	items := []quotation.LineItem{prosthesis, liner}
	totals := quotation.ComputeTotals(items, true)

	converted := &quotation.Quotation{
		Date:         now.AddDate(0, 0, -25),
		ClaimantName: "Lucky Patrick Nkosi",
		Title:        "Below-knee prosthesis, right",
		LineItems:    items,
		Subtotal:     totals.Subtotal,
		VATAmount:    totals.VATAmount,
		Total:        totals.Total,
		VATEnabled:   true,
		Status:       quotation.StatusConverted,
		CreatedAt:    now.AddDate(0, 0, -25),
		UpdatedAt:    now.AddDate(0, 0, -20),
	}
	if err := quotations.CreateQuotation(ctx, converted); err != nil {
		return fmt.Errorf("seeding converted quotation: %w", err)
	}

	socket := quotation.NewLineItem(quotation.LineItemParams{
		ICD10Code:    "Z44.1",
		Description:  "Socket replacement and alignment",
		Quantity:     1,
		SAOPACode:    "10556",
		PricePerUnit: dec("18250.00"),
	})
	pendingTotals := quotation.ComputeTotals([]quotation.LineItem{socket}, true)

	pending := &quotation.Quotation{
		Date:         now.AddDate(0, 0, -3),
		ClaimantName: "Sarah van Wyk",
		Title:        "Socket replacement",
		LineItems:    []quotation.LineItem{socket},
		Subtotal:     pendingTotals.Subtotal,
		VATAmount:    pendingTotals.VATAmount,
		Total:        pendingTotals.Total,
		VATEnabled:   true,
		Status:       quotation.StatusPending,
		CreatedAt:    now.AddDate(0, 0, -3),
		UpdatedAt:    now.AddDate(0, 0, -2),
	}
	if err := quotations.CreateQuotation(ctx, pending); err != nil {
		return fmt.Errorf("seeding pending quotation: %w", err)
	}

	// Invoice issued from the converted quotation, 40k received so far.
	partiallyPaid := &invoice.Invoice{
		QuotationLinkNo: converted.LinkNo,
		Date:            now.AddDate(0, 0, -20),
		DueDate:         now.AddDate(0, 0, 10),
		ClaimantName:    converted.ClaimantName,
		Title:           converted.Title,
		LineItems:       append([]quotation.LineItem(nil), items...),
		Subtotal:        totals.Subtotal.Round(2),
		VATAmount:       totals.VATAmount.Round(2),
		Total:           totals.Total.Round(2),
		PaymentStatus:   invoice.StatusPartiallyPaid,
		AmountPaid:      dec("40000.00"),
		AmountDue:       totals.Total.Round(2).Sub(dec("40000.00")),
		CreatedAt:       now.AddDate(0, 0, -20),
		UpdatedAt:       now.AddDate(0, 0, -5),
	}
	if err := invoices.CreateInvoice(ctx, partiallyPaid); err != nil {
		return fmt.Errorf("seeding partially paid invoice: %w", err)
	}

	myoelectric := quotation.NewLineItem(quotation.LineItemParams{
		ICD10Code:    "S58.1",
		Description:  "Myoelectric forearm prosthesis",
		Quantity:     1,
		SAOPACode:    "10501",
		PricePerUnit: dec("125000.00"),
	})
	overdueTotals := quotation.ComputeTotals([]quotation.LineItem{myoelectric}, true)

	overdue := &invoice.Invoice{
		QuotationLinkNo: "4465640",
		Date:            now.AddDate(0, 0, -60),
		DueDate:         now.AddDate(0, 0, -30),
		ClaimantName:    "Jabulani Dlamini",
		Title:           "Myoelectric forearm prosthesis, left",
		LineItems:       []quotation.LineItem{myoelectric},
		Subtotal:        overdueTotals.Subtotal.Round(2),
		VATAmount:       overdueTotals.VATAmount.Round(2),
		Total:           overdueTotals.Total.Round(2),
		PaymentStatus:   invoice.StatusUnpaid,
		AmountPaid:      decimal.Zero,
		AmountDue:       overdueTotals.Total.Round(2),
		CreatedAt:       now.AddDate(0, 0, -60),
		UpdatedAt:       now.AddDate(0, 0, -60),
	}
	if err := invoices.CreateInvoice(ctx, overdue); err != nil {
		return fmt.Errorf("seeding overdue invoice: %w", err)
	}

	slog.Info("demo data loaded",
		"quotations", 2,
		"invoices", 2,
		"link_no", converted.LinkNo,
	)

	return nil
}
