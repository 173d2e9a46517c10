// Package report derives dashboard and analytics figures from the
// quotation and invoice collections. Everything here is a pure read:
// nothing mutates the entities, and payment status is always derived as
// of the supplied time.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kleinsmith/orthobill/internal/invoice"
	"github.com/kleinsmith/orthobill/internal/quotation"
)

var hundred = decimal.NewFromInt(100)

// ConversionRate is the share of quotations currently in the approved
// state, as a percentage. Zero when there are no quotations. A converted
// quotation has moved past approved and no longer counts; the funnel is
// the place to see cumulative stage totals.
func ConversionRate(quotations []*quotation.Quotation) decimal.Decimal {
	if len(quotations) == 0 {
		return decimal.Zero
	}

	approved := 0

	for _, q := range quotations {
		if q.Status == quotation.StatusApproved {
			approved++
		}
	}

	return decimal.NewFromInt(int64(approved)).
		Div(decimal.NewFromInt(int64(len(quotations)))).
		Mul(hundred)
}

// PercentChange is the period-over-period change from previous to
// current, as a percentage. A zero previous value yields zero rather
// than a division error; the report shows a flat change when there is
// nothing to compare against.
func PercentChange(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		return decimal.Zero
	}

	return current.Sub(previous).Div(previous).Mul(hundred)
}

// FunnelStage is one step of the quotation funnel.
type FunnelStage struct {
	Name    string          `json:"name"`
	Count   int             `json:"count"`
	Percent decimal.Decimal `json:"percent"`
}

// Funnel builds the lifecycle funnel. Each stage counts quotations that
// reached at least that state, so counts never increase from one stage
// to the next; the final stage counts invoices settled in full.
// Percentages are relative to the first stage.
func Funnel(quotations []*quotation.Quotation, invoices []*invoice.Invoice, now time.Time) []FunnelStage {
	var submitted, approved, converted int

	for _, q := range quotations {
		switch q.Status {
		case quotation.StatusPending:
			submitted++
		case quotation.StatusApproved:
			submitted++
			approved++
		case quotation.StatusConverted:
			submitted++
			approved++
			converted++
		}
	}

	paid := 0

	for _, inv := range invoices {
		if inv.StatusAt(now) == invoice.StatusPaid {
			paid++
		}
	}

	stages := []FunnelStage{
		{Name: "Created", Count: len(quotations)},
		{Name: "Submitted", Count: submitted},
		{Name: "Approved", Count: approved},
		{Name: "Converted", Count: converted},
		{Name: "Fully paid", Count: paid},
	}

	base := decimal.NewFromInt(int64(stages[0].Count))
	for i := range stages {
		if base.IsZero() {
			stages[i].Percent = decimal.Zero
			continue
		}

		stages[i].Percent = decimal.NewFromInt(int64(stages[i].Count)).Div(base).Mul(hundred)
	}

	return stages
}

// Summary holds the dashboard card figures.
type Summary struct {
	QuotationCount int             `json:"quotationCount"`
	InvoiceCount   int             `json:"invoiceCount"`
	QuotedValue    decimal.Decimal `json:"quotedValue"`
	ApprovedValue  decimal.Decimal `json:"approvedValue"`
	Outstanding    decimal.Decimal `json:"outstanding"`
	Collected      decimal.Decimal `json:"collected"`
	OverdueCount   int             `json:"overdueCount"`
	ConversionRate decimal.Decimal `json:"conversionRate"`
}

// Summarize computes the dashboard figures as of now.
func Summarize(quotations []*quotation.Quotation, invoices []*invoice.Invoice, now time.Time) Summary {
	s := Summary{
		QuotationCount: len(quotations),
		InvoiceCount:   len(invoices),
		QuotedValue:    decimal.Zero,
		ApprovedValue:  decimal.Zero,
		Outstanding:    decimal.Zero,
		Collected:      decimal.Zero,
		ConversionRate: ConversionRate(quotations),
	}

	for _, q := range quotations {
		s.QuotedValue = s.QuotedValue.Add(q.Total)

		if q.Status == quotation.StatusApproved || q.Status == quotation.StatusConverted {
			s.ApprovedValue = s.ApprovedValue.Add(q.Total)
		}
	}

	for _, inv := range invoices {
		s.Outstanding = s.Outstanding.Add(inv.AmountDue)
		s.Collected = s.Collected.Add(inv.AmountPaid)

		if inv.StatusAt(now) == invoice.StatusOverdue {
			s.OverdueCount++
		}
	}

	return s
}

// MonthMetrics is one month of activity, keyed by the first day of the
// month in UTC.
type MonthMetrics struct {
	Month          time.Time       `json:"month"`
	QuotationCount int             `json:"quotationCount"`
	QuotedValue    decimal.Decimal `json:"quotedValue"`
	AverageQuote   decimal.Decimal `json:"averageQuote"`
	InvoiceCount   int             `json:"invoiceCount"`
	InvoicedValue  decimal.Decimal `json:"invoicedValue"`
}

func monthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthlySeries groups quotations and invoices by the month of their
// document date, ordered chronologically. Months with no activity are
// absent.
func MonthlySeries(quotations []*quotation.Quotation, invoices []*invoice.Invoice) []MonthMetrics {
	byMonth := make(map[time.Time]*MonthMetrics)

	metricsFor := func(t time.Time) *MonthMetrics {
		month := monthOf(t)

		m, ok := byMonth[month]
		if !ok {
			m = &MonthMetrics{
				Month:         month,
				QuotedValue:   decimal.Zero,
				AverageQuote:  decimal.Zero,
				InvoicedValue: decimal.Zero,
			}
			byMonth[month] = m
		}

		return m
	}

	for _, q := range quotations {
		m := metricsFor(q.Date)
		m.QuotationCount++
		m.QuotedValue = m.QuotedValue.Add(q.Total)
	}

	for _, inv := range invoices {
		m := metricsFor(inv.Date)
		m.InvoiceCount++
		m.InvoicedValue = m.InvoicedValue.Add(inv.Total)
	}

	out := make([]MonthMetrics, 0, len(byMonth))

	for _, m := range byMonth {
		if m.QuotationCount > 0 {
			m.AverageQuote = m.QuotedValue.Div(decimal.NewFromInt(int64(m.QuotationCount)))
		}

		out = append(out, *m)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Month.Before(out[j].Month)
	})

	return out
}

// CodeUsage aggregates line items by clinical code.
type CodeUsage struct {
	Code    string          `json:"code"`
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

// TopCodes returns the most used ICD-10 codes across all quotation line
// items, highest revenue first, at most limit entries. Line items with
// no code are skipped.
func TopCodes(quotations []*quotation.Quotation, limit int) []CodeUsage {
	byCode := make(map[string]*CodeUsage)

	for _, q := range quotations {
		for _, item := range q.LineItems {
			if item.ICD10Code == "" {
				continue
			}

			usage, ok := byCode[item.ICD10Code]
			if !ok {
				usage = &CodeUsage{Code: item.ICD10Code, Revenue: decimal.Zero}
				byCode[item.ICD10Code] = usage
			}

			usage.Count++
			usage.Revenue = usage.Revenue.Add(item.Total)
		}
	}

	out := make([]CodeUsage, 0, len(byCode))
	for _, usage := range byCode {
		out = append(out, *usage)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue.Equal(out[j].Revenue) {
			return out[i].Code < out[j].Code
		}

		return out[i].Revenue.GreaterThan(out[j].Revenue)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out
}

// PaymentDistribution counts invoices per derived payment status as of
// now. Every status appears in the result, including zero counts.
func PaymentDistribution(invoices []*invoice.Invoice, now time.Time) map[invoice.PaymentStatus]int {
	dist := map[invoice.PaymentStatus]int{
		invoice.StatusUnpaid:        0,
		invoice.StatusPartiallyPaid: 0,
		invoice.StatusPaid:          0,
		invoice.StatusOverdue:       0,
	}

	for _, inv := range invoices {
		dist[inv.StatusAt(now)]++
	}

	return dist
}

// PeriodMetrics is the comparable slice of activity within one period.
type PeriodMetrics struct {
	QuotationCount int             `json:"quotationCount"`
	QuotedValue    decimal.Decimal `json:"quotedValue"`
	InvoiceCount   int             `json:"invoiceCount"`
	InvoicedValue  decimal.Decimal `json:"invoicedValue"`
	Collected      decimal.Decimal `json:"collected"`
}

// MetricsFor computes period metrics over the given entities. Callers
// filter to the period before calling.
func MetricsFor(quotations []*quotation.Quotation, invoices []*invoice.Invoice) PeriodMetrics {
	m := PeriodMetrics{
		QuotedValue:   decimal.Zero,
		InvoicedValue: decimal.Zero,
		Collected:     decimal.Zero,
	}

	m.QuotationCount = len(quotations)
	for _, q := range quotations {
		m.QuotedValue = m.QuotedValue.Add(q.Total)
	}

	m.InvoiceCount = len(invoices)
	for _, inv := range invoices {
		m.InvoicedValue = m.InvoicedValue.Add(inv.Total)
		m.Collected = m.Collected.Add(inv.AmountPaid)
	}

	return m
}

// Comparison pairs two periods with their percent changes.
type Comparison struct {
	Current  PeriodMetrics `json:"current"`
	Previous PeriodMetrics `json:"previous"`

	QuotationCountChange decimal.Decimal `json:"quotationCountChange"`
	QuotedValueChange    decimal.Decimal `json:"quotedValueChange"`
	InvoicedValueChange  decimal.Decimal `json:"invoicedValueChange"`
	CollectedChange      decimal.Decimal `json:"collectedChange"`
}

// Compare computes period-over-period percent changes.
func Compare(current, previous PeriodMetrics) Comparison {
	return Comparison{
		Current:  current,
		Previous: previous,
		QuotationCountChange: PercentChange(
			decimal.NewFromInt(int64(current.QuotationCount)),
			decimal.NewFromInt(int64(previous.QuotationCount)),
		),
		QuotedValueChange:   PercentChange(current.QuotedValue, previous.QuotedValue),
		InvoicedValueChange: PercentChange(current.InvoicedValue, previous.InvoicedValue),
		CollectedChange:     PercentChange(current.Collected, previous.Collected),
	}
}
