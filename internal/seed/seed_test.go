package seed_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleinsmith/orthobill/internal/invoice"
	invoicestore "github.com/kleinsmith/orthobill/internal/invoice/store"
	"github.com/kleinsmith/orthobill/internal/quotation"
	quotationstore "github.com/kleinsmith/orthobill/internal/quotation/store"
	"github.com/kleinsmith/orthobill/internal/seed"
)

func TestDemo(t *testing.T) {
	ctx := context.Background()
	quotations := quotationstore.New()
	invoices := invoicestore.New()

	require.NoError(t, seed.Demo(ctx, quotations, invoices))

	qs, err := quotations.ListQuotations(ctx, quotation.ListFilter{})
	require.NoError(t, err)
	require.Len(t, qs, 2)

	assert.Equal(t, "4465651", qs[0].LinkNo)
	assert.Equal(t, quotation.StatusConverted, qs[0].Status)
	assert.True(t, qs[0].Total.Equal(decimal.RequireFromString("81280.3095")), "total %s", qs[0].Total)
	assert.Equal(t, quotation.StatusPending, qs[1].Status)

	invs, err := invoices.ListInvoices(ctx)
	require.NoError(t, err)
	require.Len(t, invs, 2)

	now := time.Now()

	var overdue, partiallyPaid int

	for _, inv := range invs {
		// Invariant holds for every seeded invoice.
		assert.True(t, inv.AmountPaid.Add(inv.AmountDue).Equal(inv.Total), "invoice %s", inv.InvoiceNo)

		switch inv.StatusAt(now) {
		case invoice.StatusOverdue:
			overdue++
			assert.Positive(t, inv.DaysOverdue(now))
		case invoice.StatusPartiallyPaid:
			partiallyPaid++
			assert.True(t, inv.AmountPaid.Equal(decimal.RequireFromString("40000.00")))
			assert.True(t, inv.AmountDue.Equal(decimal.RequireFromString("41280.31")), "due %s", inv.AmountDue)
		}
	}

	assert.Equal(t, 1, overdue)
	assert.Equal(t, 1, partiallyPaid)
}
