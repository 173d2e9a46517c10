package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleinsmith/orthobill/internal/quotation"
	"github.com/kleinsmith/orthobill/internal/quotation/store"
)

func TestStore_CreateQuotation_AssignsSequentialLinkNumbers(t *testing.T) {
	s := store.New()
	ctx := context.Background()

	first := &quotation.Quotation{ClaimantName: "A", Status: quotation.StatusDraft}
	second := &quotation.Quotation{ClaimantName: "B", Status: quotation.StatusDraft}

	require.NoError(t, s.CreateQuotation(ctx, first))
	require.NoError(t, s.CreateQuotation(ctx, second))

	assert.Equal(t, "4465651", first.LinkNo)
	assert.Equal(t, "4465652", second.LinkNo)
	assert.NotEqual(t, first.ID, second.ID)
	assert.EqualValues(t, 1, first.Version)
}

func TestStore_GetQuotation_ReturnsSnapshot(t *testing.T) {
	s := store.New()
	ctx := context.Background()

	q := &quotation.Quotation{
		ClaimantName: "Lucky Patrick Nkosi",
		Status:       quotation.StatusDraft,
		LineItems:    []quotation.LineItem{{Description: "liner", Quantity: 1}},
	}
	require.NoError(t, s.CreateQuotation(ctx, q))

	got, err := s.GetQuotation(ctx, q.ID)
	require.NoError(t, err)

	// Mutating the snapshot must not leak into the store.
	got.ClaimantName = "changed"
	got.LineItems[0].Description = "changed"

	again, err := s.GetQuotation(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lucky Patrick Nkosi", again.ClaimantName)
	assert.Equal(t, "liner", again.LineItems[0].Description)
}

func TestStore_GetQuotation_NotFound(t *testing.T) {
	s := store.New()

	q := &quotation.Quotation{Status: quotation.StatusDraft}
	require.NoError(t, s.CreateQuotation(context.Background(), q))
	require.NoError(t, s.DeleteQuotation(context.Background(), q.ID))

	_, err := s.GetQuotation(context.Background(), q.ID)
	assert.ErrorIs(t, err, quotation.ErrNotFound)
}

func TestStore_UpdateQuotation_VersionConflict(t *testing.T) {
	s := store.New()
	ctx := context.Background()

	q := &quotation.Quotation{Status: quotation.StatusDraft}
	require.NoError(t, s.CreateQuotation(ctx, q))

	current, err := s.GetQuotation(ctx, q.ID)
	require.NoError(t, err)

	stale, err := s.GetQuotation(ctx, q.ID)
	require.NoError(t, err)

	current.Title = "first writer"
	require.NoError(t, s.UpdateQuotation(ctx, current))
	assert.EqualValues(t, 2, current.Version)

	stale.Title = "second writer"
	err = s.UpdateQuotation(ctx, stale)
	assert.ErrorIs(t, err, quotation.ErrVersionConflict)

	got, err := s.GetQuotation(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "first writer", got.Title)
}

func TestStore_DeleteQuotation_NotFound(t *testing.T) {
	s := store.New()

	q := &quotation.Quotation{Status: quotation.StatusDraft}
	require.NoError(t, s.CreateQuotation(context.Background(), q))
	require.NoError(t, s.DeleteQuotation(context.Background(), q.ID))

	err := s.DeleteQuotation(context.Background(), q.ID)
	assert.ErrorIs(t, err, quotation.ErrNotFound)
}

func TestStore_ListQuotations_FiltersByStatus(t *testing.T) {
	s := store.New()
	ctx := context.Background()

	draft := &quotation.Quotation{ClaimantName: "A", Status: quotation.StatusDraft}
	pending := &quotation.Quotation{ClaimantName: "B", Status: quotation.StatusPending}
	approved := &quotation.Quotation{ClaimantName: "C", Status: quotation.StatusApproved}

	for _, q := range []*quotation.Quotation{draft, pending, approved} {
		require.NoError(t, s.CreateQuotation(ctx, q))
	}

	all, err := s.ListQuotations(ctx, quotation.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	status := quotation.StatusPending
	onlyPending, err := s.ListQuotations(ctx, quotation.ListFilter{Status: &status})
	require.NoError(t, err)
	require.Len(t, onlyPending, 1)
	assert.Equal(t, "B", onlyPending[0].ClaimantName)
}

func TestStore_ListQuotations_OrderedByCreation(t *testing.T) {
	s := store.New()
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C"} {
		require.NoError(t, s.CreateQuotation(ctx, &quotation.Quotation{
			ClaimantName: name,
			Status:       quotation.StatusDraft,
		}))
	}

	all, err := s.ListQuotations(ctx, quotation.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)

	// CreatedAt may collide within the test; LinkNo breaks the tie in
	// creation order either way.
	assert.Equal(t, "4465651", all[0].LinkNo)
	assert.Equal(t, "4465652", all[1].LinkNo)
	assert.Equal(t, "4465653", all[2].LinkNo)
}
