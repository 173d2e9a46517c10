package quotation

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T) (*Service, *MockRepository, *MockInvoiceCreator) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := NewMockRepository(ctrl)
	invoices := NewMockInvoiceCreator(ctrl)

	return NewService(repo, invoices), repo, invoices
}

func TestService_Create(t *testing.T) {
	svc, repo, _ := newTestService(t)

	repo.EXPECT().
		CreateQuotation(gomock.Any(), gomock.Any()).
		Return(nil)

	q, err := svc.Create(context.Background(), CreateParams{
		ClaimantName: "Lucky Patrick Nkosi",
		Title:        "Prosthetic fitting",
		LineItems: []LineItemParams{
			{Description: "TransTibial Endoskeletal Prosthesis", Quantity: 1, PricePerUnit: decimal.RequireFromString("65459.13")},
			{Description: "Silicone liner", Quantity: 1, PricePerUnit: decimal.RequireFromString("5219.40")},
		},
		VATEnabled: true,
	})
	require.NoError(t, err)

	assert.Equal(t, StatusDraft, q.Status)
	assert.False(t, q.Date.IsZero())
	assert.Len(t, q.LineItems, 2)
	assert.True(t, q.Subtotal.Equal(decimal.RequireFromString("70678.53")), "subtotal %s", q.Subtotal)
	assert.True(t, q.Total.Equal(decimal.RequireFromString("81280.3095")), "total %s", q.Total)
}

func TestService_Create_RepositoryError(t *testing.T) {
	svc, repo, _ := newTestService(t)

	repo.EXPECT().
		CreateQuotation(gomock.Any(), gomock.Any()).
		Return(errors.New("store full"))

	_, err := svc.Create(context.Background(), CreateParams{ClaimantName: "X"})
	assert.ErrorContains(t, err, "creating quotation")
}

func TestService_Update_RecomputesTotals(t *testing.T) {
	svc, repo, _ := newTestService(t)

	id := uuid.New()
	repo.EXPECT().
		GetQuotation(gomock.Any(), id).
		Return(&Quotation{ID: id, Status: StatusDraft, VATEnabled: true}, nil)

	var saved *Quotation
	repo.EXPECT().
		UpdateQuotation(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q *Quotation) error {
			saved = q
			return nil
		})

	q, err := svc.Update(context.Background(), id, UpdateParams{
		LineItems: []LineItemParams{
			{Description: "Follow-up consult", Quantity: 2, PricePerUnit: decimal.RequireFromString("450.00")},
		},
	})
	require.NoError(t, err)

	require.NotNil(t, saved)
	assert.True(t, q.Subtotal.Equal(decimal.RequireFromString("900.00")), "subtotal %s", q.Subtotal)
	assert.True(t, q.VATAmount.Equal(decimal.RequireFromString("135.00")), "vat %s", q.VATAmount)
	assert.True(t, q.Total.Equal(decimal.RequireFromString("1035.00")), "total %s", q.Total)
}

func TestService_Update_Locked(t *testing.T) {
	for _, status := range []Status{StatusApproved, StatusConverted} {
		t.Run(string(status), func(t *testing.T) {
			svc, repo, _ := newTestService(t)

			id := uuid.New()
			repo.EXPECT().
				GetQuotation(gomock.Any(), id).
				Return(&Quotation{ID: id, Status: status}, nil)
			// No UpdateQuotation call: the edit is rejected before any
			// mutation reaches the store.

			name := "changed"
			_, err := svc.Update(context.Background(), id, UpdateParams{ClaimantName: &name})
			assert.ErrorIs(t, err, ErrLocked)
		})
	}
}

func TestService_Update_NotFound(t *testing.T) {
	svc, repo, _ := newTestService(t)

	id := uuid.New()
	repo.EXPECT().
		GetQuotation(gomock.Any(), id).
		Return(nil, ErrNotFound)

	_, err := svc.Update(context.Background(), id, UpdateParams{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		apply   func(*Service, context.Context, uuid.UUID) (*Quotation, error)
		want    Status
		wantErr error
	}{
		{
			name:  "submit draft",
			from:  StatusDraft,
			apply: (*Service).Submit,
			want:  StatusPending,
		},
		{
			name:  "approve pending",
			from:  StatusPending,
			apply: (*Service).Approve,
			want:  StatusApproved,
		},
		{
			name:  "return pending to draft",
			from:  StatusPending,
			apply: (*Service).ReturnToDraft,
			want:  StatusDraft,
		},
		{
			name:    "approve draft rejected",
			from:    StatusDraft,
			apply:   (*Service).Approve,
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "submit approved rejected",
			from:    StatusApproved,
			apply:   (*Service).Submit,
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "return converted to draft rejected",
			from:    StatusConverted,
			apply:   (*Service).ReturnToDraft,
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "submit converted rejected",
			from:    StatusConverted,
			apply:   (*Service).Submit,
			wantErr: ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newTestService(t)

			id := uuid.New()
			repo.EXPECT().
				GetQuotation(gomock.Any(), id).
				Return(&Quotation{ID: id, Status: tt.from}, nil)

			if tt.wantErr == nil {
				repo.EXPECT().
					UpdateQuotation(gomock.Any(), gomock.Any()).
					Return(nil)
			}

			q, err := tt.apply(svc, context.Background(), id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, q.Status)
		})
	}
}

func TestService_Convert(t *testing.T) {
	svc, repo, invoices := newTestService(t)

	id := uuid.New()
	repo.EXPECT().
		GetQuotation(gomock.Any(), id).
		Return(&Quotation{
			ID:           id,
			LinkNo:       "4465651",
			ClaimantName: "Lucky Patrick Nkosi",
			Status:       StatusApproved,
		}, nil)

	invoices.EXPECT().
		CreateFromQuotation(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q *Quotation) error {
			// The collaborator sees the quotation before the status flips.
			assert.Equal(t, StatusApproved, q.Status)
			assert.Equal(t, "4465651", q.LinkNo)
			return nil
		})

	repo.EXPECT().
		UpdateQuotation(gomock.Any(), gomock.Any()).
		Return(nil)

	q, err := svc.Convert(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, StatusConverted, q.Status)
}

func TestService_Convert_NotApproved(t *testing.T) {
	for _, status := range []Status{StatusDraft, StatusPending, StatusConverted} {
		t.Run(string(status), func(t *testing.T) {
			svc, repo, _ := newTestService(t)

			id := uuid.New()
			repo.EXPECT().
				GetQuotation(gomock.Any(), id).
				Return(&Quotation{ID: id, Status: status}, nil)

			_, err := svc.Convert(context.Background(), id)
			assert.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}

func TestService_Convert_InvoiceCreationFails(t *testing.T) {
	svc, repo, invoices := newTestService(t)

	id := uuid.New()
	repo.EXPECT().
		GetQuotation(gomock.Any(), id).
		Return(&Quotation{ID: id, LinkNo: "4465652", Status: StatusApproved}, nil)

	invoices.EXPECT().
		CreateFromQuotation(gomock.Any(), gomock.Any()).
		Return(errors.New("duplicate invoice"))
	// The transition is not committed: no UpdateQuotation expectation.

	_, err := svc.Convert(context.Background(), id)
	assert.ErrorContains(t, err, "creating invoice from quotation 4465652")
}

func TestService_Delete(t *testing.T) {
	svc, repo, _ := newTestService(t)

	id := uuid.New()
	repo.EXPECT().
		DeleteQuotation(gomock.Any(), id).
		Return(nil)

	assert.NoError(t, svc.Delete(context.Background(), id))
}
