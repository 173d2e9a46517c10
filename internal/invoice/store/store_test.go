package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleinsmith/orthobill/internal/invoice"
	"github.com/kleinsmith/orthobill/internal/invoice/store"
)

func TestStore_CreateInvoice_NumbersPerYear(t *testing.T) {
	s := store.New()
	ctx := context.Background()

	in2024 := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	in2025 := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)

	first := &invoice.Invoice{Date: in2024}
	second := &invoice.Invoice{Date: in2024}
	third := &invoice.Invoice{Date: in2025}

	for _, inv := range []*invoice.Invoice{first, second, third} {
		require.NoError(t, s.CreateInvoice(ctx, inv))
	}

	assert.Equal(t, "INV-2024-001", first.InvoiceNo)
	assert.Equal(t, "INV-2024-002", second.InvoiceNo)
	// The sequence restarts for each calendar year.
	assert.Equal(t, "INV-2025-001", third.InvoiceNo)
	assert.EqualValues(t, 1, first.Version)
}

func TestStore_GetInvoice_ReturnsSnapshot(t *testing.T) {
	s := store.New()
	ctx := context.Background()

	inv := &invoice.Invoice{ClaimantName: "Lucky Patrick Nkosi", Date: time.Now()}
	require.NoError(t, s.CreateInvoice(ctx, inv))

	got, err := s.GetInvoice(ctx, inv.ID)
	require.NoError(t, err)

	got.ClaimantName = "changed"

	again, err := s.GetInvoice(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lucky Patrick Nkosi", again.ClaimantName)
}

func TestStore_GetInvoice_NotFound(t *testing.T) {
	s := store.New()

	_, err := s.GetInvoice(context.Background(), uuid.New())
	assert.ErrorIs(t, err, invoice.ErrNotFound)
}

func TestStore_UpdateInvoice_VersionConflict(t *testing.T) {
	s := store.New()
	ctx := context.Background()

	inv := &invoice.Invoice{Date: time.Now()}
	require.NoError(t, s.CreateInvoice(ctx, inv))

	current, err := s.GetInvoice(ctx, inv.ID)
	require.NoError(t, err)

	stale, err := s.GetInvoice(ctx, inv.ID)
	require.NoError(t, err)

	current.Title = "first writer"
	require.NoError(t, s.UpdateInvoice(ctx, current))
	assert.EqualValues(t, 2, current.Version)

	stale.Title = "second writer"
	err = s.UpdateInvoice(ctx, stale)
	assert.ErrorIs(t, err, invoice.ErrVersionConflict)
}

func TestStore_ListInvoices_Ordered(t *testing.T) {
	s := store.New()
	ctx := context.Background()

	base := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, s.CreateInvoice(ctx, &invoice.Invoice{
			Date:      base,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	all, err := s.ListInvoices(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	assert.Equal(t, "INV-2024-001", all[0].InvoiceNo)
	assert.Equal(t, "INV-2024-002", all[1].InvoiceNo)
	assert.Equal(t, "INV-2024-003", all[2].InvoiceNo)
}
