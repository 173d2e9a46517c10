// Package invoice tracks billable documents derived from approved
// quotations: payment application, due dates and reminders.
package invoice

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kleinsmith/orthobill/internal/quotation"
)

var (
	// ErrNotFound is returned when no invoice exists for the given id.
	ErrNotFound = errors.New("invoice not found")

	// ErrInvalidPayment is returned for a non-positive payment or one
	// exceeding the amount due. The invoice is left untouched.
	ErrInvalidPayment = errors.New("payment must be positive and no more than the amount due")

	// ErrAlreadyPaid is returned when a reminder is requested for a fully
	// paid invoice.
	ErrAlreadyPaid = errors.New("invoice is already paid")

	// ErrVersionConflict is returned when an update carries a stale
	// entity version.
	ErrVersionConflict = errors.New("invoice was modified concurrently")
)

// PaymentStatus is the payment state of an invoice. Overdue is derived on
// read, never stored; see StatusAt.
type PaymentStatus string

const (
	StatusUnpaid        PaymentStatus = "unpaid"
	StatusPartiallyPaid PaymentStatus = "partially-paid"
	StatusPaid          PaymentStatus = "paid"
	StatusOverdue       PaymentStatus = "overdue"
)

// Invoice is a billable document. Invariant: AmountPaid + AmountDue ==
// Total at all times; both are updated only through RecordPayment.
// Monetary fields are denominated in cents (rounded when the invoice is
// issued).
type Invoice struct {
	ID               uuid.UUID            `json:"id"`
	InvoiceNo        string               `json:"invoiceNo"`
	QuotationLinkNo  string               `json:"quotationLinkNo"`
	Date             time.Time            `json:"date"`
	DueDate          time.Time            `json:"dueDate"`
	ClaimantName     string               `json:"claimantName"`
	Title            string               `json:"title"`
	LineItems        []quotation.LineItem `json:"lineItems"`
	Subtotal         decimal.Decimal      `json:"subtotal"`
	VATAmount        decimal.Decimal      `json:"vatAmount"`
	Total            decimal.Decimal      `json:"total"`
	PaymentStatus    PaymentStatus        `json:"paymentStatus"`
	AmountPaid       decimal.Decimal      `json:"amountPaid"`
	AmountDue        decimal.Decimal      `json:"amountDue"`
	Version          int64                `json:"version"`
	CreatedAt        time.Time            `json:"createdAt"`
	UpdatedAt        time.Time            `json:"updatedAt"`
	LastReminderSent *time.Time           `json:"lastReminderSent,omitempty"`
}

// StatusAt derives the payment status as of now. An unpaid invoice past
// its due date reads as overdue. The stored status is never rewritten by
// the passage of time alone, so every display path must go through this.
func (inv *Invoice) StatusAt(now time.Time) PaymentStatus {
	if inv.PaymentStatus == StatusUnpaid && now.After(inv.DueDate) {
		return StatusOverdue
	}

	return inv.PaymentStatus
}

// DaysOverdue returns how many days past due the invoice is at now,
// rounded up, and never negative.
func (inv *Invoice) DaysOverdue(now time.Time) int {
	diff := now.Sub(inv.DueDate)
	if diff <= 0 {
		return 0
	}

	return int(math.Ceil(diff.Hours() / 24))
}

// Clone returns a deep copy so stores and collaborators never share the
// line-item slice.
func (inv *Invoice) Clone() *Invoice {
	out := *inv
	out.LineItems = append([]quotation.LineItem(nil), inv.LineItems...)

	if inv.LastReminderSent != nil {
		t := *inv.LastReminderSent
		out.LastReminderSent = &t
	}

	return &out
}
