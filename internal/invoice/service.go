package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kleinsmith/orthobill/internal/quotation"
)

// paymentTerm is how long after issue an invoice falls due.
const paymentTerm = 30 * 24 * time.Hour

//go:generate mockgen -source=service.go -destination=service_mock.go -package=invoice
type Repository interface {
	CreateInvoice(ctx context.Context, inv *Invoice) error
	GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)
	UpdateInvoice(ctx context.Context, inv *Invoice) error
	ListInvoices(ctx context.Context) ([]*Invoice, error)
}

// Notifier delivers payment reminders. Delivery is external and
// best-effort; the invoice only records when a reminder was last sent.
type Notifier interface {
	SendPaymentReminder(ctx context.Context, inv *Invoice) error
}

type Service struct {
	repo     Repository
	notifier Notifier
}

func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

type ListFilter struct {
	// PaymentStatus filters on the derived status as of now, so "overdue"
	// matches unpaid invoices past their due date.
	PaymentStatus *PaymentStatus
}

// CreateFromQuotation issues an invoice from an approved quotation's
// snapshot. Monetary amounts are rounded to cents here; a billable
// document is denominated in cents even though quotation totals are kept
// exact. The store assigns the id, invoice number and initial version.
func (s *Service) CreateFromQuotation(ctx context.Context, q *quotation.Quotation) error {
	now := time.Now()
	total := q.Total.Round(2)

	inv := &Invoice{
		QuotationLinkNo: q.LinkNo,
		Date:            now,
		DueDate:         now.Add(paymentTerm),
		ClaimantName:    q.ClaimantName,
		Title:           q.Title,
		LineItems:       append([]quotation.LineItem(nil), q.LineItems...),
		Subtotal:        q.Subtotal.Round(2),
		VATAmount:       q.VATAmount.Round(2),
		Total:           total,
		PaymentStatus:   StatusUnpaid,
		AmountPaid:      decimal.Zero,
		AmountDue:       total,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.CreateInvoice(ctx, inv); err != nil {
		return fmt.Errorf("creating invoice: %w", err)
	}

	return nil
}

// Get returns the invoice with its payment status derived as of now.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	inv, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	inv.PaymentStatus = inv.StatusAt(time.Now())

	return inv, nil
}

// List returns invoices with derived payment status, optionally filtered
// by it.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Invoice, error) {
	invs, err := s.repo.ListInvoices(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	var out []*Invoice

	for _, inv := range invs {
		inv.PaymentStatus = inv.StatusAt(now)

		if filter.PaymentStatus != nil && inv.PaymentStatus != *filter.PaymentStatus {
			continue
		}

		out = append(out, inv)
	}

	return out, nil
}

// RecordPayment applies a payment against the amount due. Amounts that are
// not positive, or exceed the amount due, are rejected with
// ErrInvalidPayment and leave the invoice unchanged.
func (s *Service) RecordPayment(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*Invoice, error) {
	inv, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	if !amount.IsPositive() || amount.GreaterThan(inv.AmountDue) {
		return nil, fmt.Errorf("amount %s against due %s: %w", amount, inv.AmountDue, ErrInvalidPayment)
	}

	inv.AmountPaid = inv.AmountPaid.Add(amount)
	inv.AmountDue = inv.Total.Sub(inv.AmountPaid)

	if inv.AmountDue.LessThanOrEqual(decimal.Zero) {
		inv.PaymentStatus = StatusPaid
	} else {
		inv.PaymentStatus = StatusPartiallyPaid
	}

	inv.UpdatedAt = time.Now()

	if err := s.repo.UpdateInvoice(ctx, inv); err != nil {
		return nil, fmt.Errorf("recording payment: %w", err)
	}

	return inv, nil
}

// SendReminder marks the invoice as reminded and hands it to the notifier.
// Fully paid invoices are rejected with ErrAlreadyPaid.
func (s *Service) SendReminder(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	inv, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if inv.StatusAt(now) == StatusPaid {
		return nil, ErrAlreadyPaid
	}

	inv.LastReminderSent = &now
	inv.UpdatedAt = now

	if err := s.repo.UpdateInvoice(ctx, inv); err != nil {
		return nil, fmt.Errorf("marking reminder: %w", err)
	}

	if err := s.notifier.SendPaymentReminder(ctx, inv.Clone()); err != nil {
		return nil, fmt.Errorf("sending reminder for %s: %w", inv.InvoiceNo, err)
	}

	inv.PaymentStatus = inv.StatusAt(now)

	return inv, nil
}
