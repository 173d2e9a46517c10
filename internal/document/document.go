// Package document builds printable views of quotations and invoices.
// A View is a read-only snapshot; rendering never reaches back into the
// stores.
package document

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kleinsmith/orthobill/internal/invoice"
	"github.com/kleinsmith/orthobill/internal/quotation"
)

// Practice identity printed on every document.
const (
	PracticeName   = "KLEINSMITH ORTHOPAEDICS"
	PracticeNumber = "PR No 0485209"
	PracticePhone  = "+27 12 111 0123"
	PracticeEmail  = "accounts@kleinsmithortho.co.za"
	PracticeAddr   = "Suite 204, Medforum Building, Pretoria, 0002"
)

// Banking details printed on invoices.
const (
	BankName    = "First National Bank"
	BankAccount = "628 4455 1290"
	BankBranch  = "250655"
)

// Type distinguishes the two printable document kinds.
type Type string

const (
	TypeQuotation Type = "quotation"
	TypeInvoice   Type = "invoice"
)

// View is the read-only snapshot handed to the renderer. DueDate,
// AmountPaid and AmountDue are only set for invoices.
type View struct {
	Type       Type
	Number     string
	LinkNo     string
	Date       time.Time
	DueDate    *time.Time
	Claimant   string
	Title      string
	LineItems  []quotation.LineItem
	Subtotal   decimal.Decimal
	VATAmount  decimal.Decimal
	Total      decimal.Decimal
	Status     string
	AmountPaid *decimal.Decimal
	AmountDue  *decimal.Decimal
}

// Watermarked reports whether the document prints the DRAFT watermark.
// Only quotations still in the approval flow carry it.
func (v View) Watermarked() bool {
	return v.Type == TypeQuotation &&
		(v.Status == string(quotation.StatusDraft) || v.Status == string(quotation.StatusPending))
}

// FromQuotation builds the printable view of a quotation.
func FromQuotation(q *quotation.Quotation) View {
	return View{
		Type:      TypeQuotation,
		Number:    q.LinkNo,
		LinkNo:    q.LinkNo,
		Date:      q.Date,
		Claimant:  q.ClaimantName,
		Title:     q.Title,
		LineItems: append([]quotation.LineItem(nil), q.LineItems...),
		Subtotal:  q.Subtotal,
		VATAmount: q.VATAmount,
		Total:     q.Total,
		Status:    string(q.Status),
	}
}

// FromInvoice builds the printable view of an invoice with its payment
// status derived as of now.
func FromInvoice(inv *invoice.Invoice, now time.Time) View {
	due := inv.DueDate
	paid := inv.AmountPaid
	owing := inv.AmountDue

	return View{
		Type:       TypeInvoice,
		Number:     inv.InvoiceNo,
		LinkNo:     inv.QuotationLinkNo,
		Date:       inv.Date,
		DueDate:    &due,
		Claimant:   inv.ClaimantName,
		Title:      inv.Title,
		LineItems:  append([]quotation.LineItem(nil), inv.LineItems...),
		Subtotal:   inv.Subtotal,
		VATAmount:  inv.VATAmount,
		Total:      inv.Total,
		Status:     string(inv.StatusAt(now)),
		AmountPaid: &paid,
		AmountDue:  &owing,
	}
}
