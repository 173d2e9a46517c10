package invoice

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kleinsmith/orthobill/internal/invoice"
)

type invoiceResponse struct {
	ID               uuid.UUID             `json:"id"`
	InvoiceNo        string                `json:"invoiceNo"`
	QuotationLinkNo  string                `json:"quotationLinkNo"`
	Date             time.Time             `json:"date"`
	DueDate          time.Time             `json:"dueDate"`
	ClaimantName     string                `json:"claimantName"`
	Title            string                `json:"title,omitempty"`
	Subtotal         decimal.Decimal       `json:"subtotal"`
	VATAmount        decimal.Decimal       `json:"vatAmount"`
	Total            decimal.Decimal       `json:"total"`
	PaymentStatus    invoice.PaymentStatus `json:"paymentStatus"`
	AmountPaid       decimal.Decimal       `json:"amountPaid"`
	AmountDue        decimal.Decimal       `json:"amountDue"`
	DaysOverdue      int                   `json:"daysOverdue,omitempty"`
	Version          int64                 `json:"version"`
	CreatedAt        time.Time             `json:"createdAt"`
	UpdatedAt        time.Time             `json:"updatedAt"`
	LastReminderSent *time.Time            `json:"lastReminderSent,omitempty"`
}

func toResponse(inv *invoice.Invoice, now time.Time) invoiceResponse {
	resp := invoiceResponse{
		ID:               inv.ID,
		InvoiceNo:        inv.InvoiceNo,
		QuotationLinkNo:  inv.QuotationLinkNo,
		Date:             inv.Date,
		DueDate:          inv.DueDate,
		ClaimantName:     inv.ClaimantName,
		Title:            inv.Title,
		Subtotal:         inv.Subtotal,
		VATAmount:        inv.VATAmount,
		Total:            inv.Total,
		PaymentStatus:    inv.PaymentStatus,
		AmountPaid:       inv.AmountPaid,
		AmountDue:        inv.AmountDue,
		Version:          inv.Version,
		CreatedAt:        inv.CreatedAt,
		UpdatedAt:        inv.UpdatedAt,
		LastReminderSent: inv.LastReminderSent,
	}

	if inv.PaymentStatus == invoice.StatusOverdue {
		resp.DaysOverdue = inv.DaysOverdue(now)
	}

	return resp
}

func toResponseList(invs []*invoice.Invoice, now time.Time) []invoiceResponse {
	resp := make([]invoiceResponse, len(invs))
	for i, inv := range invs {
		resp[i] = toResponse(inv, now)
	}

	return resp
}
