package report

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/kleinsmith/orthobill/internal/invoice"
	"github.com/kleinsmith/orthobill/internal/quotation"
	"github.com/kleinsmith/orthobill/internal/report"
)

type Handler struct {
	quotations *quotation.Service
	invoices   *invoice.Service
}

func NewHandler(quotations *quotation.Service, invoices *invoice.Service) *Handler {
	return &Handler{quotations: quotations, invoices: invoices}
}

type dashboardResponse struct {
	Summary report.Summary                `json:"summary"`
	Funnel  []report.FunnelStage          `json:"funnel"`
	Payment map[invoice.PaymentStatus]int `json:"paymentDistribution"`
}

// Dashboard serves the card figures, funnel and payment distribution.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	quotations, invoices, err := h.load(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	now := time.Now()
	resp := dashboardResponse{
		Summary: report.Summarize(quotations, invoices, now),
		Funnel:  report.Funnel(quotations, invoices, now),
		Payment: report.PaymentDistribution(invoices, now),
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type analyticsResponse struct {
	Monthly    []report.MonthMetrics `json:"monthly"`
	TopCodes   []report.CodeUsage    `json:"topCodes"`
	Comparison report.Comparison     `json:"comparison"`
}

// Analytics compares the current calendar month against the previous
// one, alongside the monthly series and top clinical codes.
func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	quotations, invoices, err := h.load(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	now := time.Now()
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastMonth := thisMonth.AddDate(0, -1, 0)

	resp := analyticsResponse{
		Monthly:  report.MonthlySeries(quotations, invoices),
		TopCodes: report.TopCodes(quotations, 10),
		Comparison: report.Compare(
			report.MetricsFor(
				quotationsIn(quotations, thisMonth),
				invoicesIn(invoices, thisMonth),
			),
			report.MetricsFor(
				quotationsIn(quotations, lastMonth),
				invoicesIn(invoices, lastMonth),
			),
		),
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) load(r *http.Request) ([]*quotation.Quotation, []*invoice.Invoice, error) {
	quotations, err := h.quotations.List(r.Context(), quotation.ListFilter{})
	if err != nil {
		return nil, nil, err
	}

	invoices, err := h.invoices.List(r.Context(), invoice.ListFilter{})
	if err != nil {
		return nil, nil, err
	}

	return quotations, invoices, nil
}

func sameMonth(t, month time.Time) bool {
	return t.Year() == month.Year() && t.Month() == month.Month()
}

func quotationsIn(qs []*quotation.Quotation, month time.Time) []*quotation.Quotation {
	var out []*quotation.Quotation

	for _, q := range qs {
		if sameMonth(q.Date, month) {
			out = append(out, q)
		}
	}

	return out
}

func invoicesIn(invs []*invoice.Invoice, month time.Time) []*invoice.Invoice {
	var out []*invoice.Invoice

	for _, inv := range invs {
		if sameMonth(inv.Date, month) {
			out = append(out, inv)
		}
	}

	return out
}
