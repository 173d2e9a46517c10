package quotation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=quotation
type Repository interface {
	CreateQuotation(ctx context.Context, q *Quotation) error
	GetQuotation(ctx context.Context, id uuid.UUID) (*Quotation, error)
	UpdateQuotation(ctx context.Context, q *Quotation) error
	DeleteQuotation(ctx context.Context, id uuid.UUID) error
	ListQuotations(ctx context.Context, filter ListFilter) ([]*Quotation, error)
}

// InvoiceCreator is the conversion collaborator. Converting an approved
// quotation hands a snapshot to it so an invoice can be issued from the
// claimant, title and line items.
type InvoiceCreator interface {
	CreateFromQuotation(ctx context.Context, q *Quotation) error
}

type Service struct {
	repo     Repository
	invoices InvoiceCreator
}

func NewService(repo Repository, invoices InvoiceCreator) *Service {
	return &Service{repo: repo, invoices: invoices}
}

type CreateParams struct {
	Date         time.Time
	ClaimantName string
	Title        string
	LineItems    []LineItemParams
	VATEnabled   bool
}

type UpdateParams struct {
	Date         *time.Time
	ClaimantName *string
	Title        *string
	// LineItems replaces the whole item list when non-nil; the form always
	// submits the full list.
	LineItems  []LineItemParams
	VATEnabled *bool
}

type ListFilter struct {
	Status *Status
}

// Create builds a new draft quotation. The store assigns the id, the link
// number and the initial version.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Quotation, error) {
	now := time.Now()

	date := params.Date
	if date.IsZero() {
		date = now
	}

	items := buildLineItems(params.LineItems)
	totals := ComputeTotals(items, params.VATEnabled)

	q := &Quotation{
		Date:         date,
		ClaimantName: params.ClaimantName,
		Title:        params.Title,
		LineItems:    items,
		Subtotal:     totals.Subtotal,
		VATAmount:    totals.VATAmount,
		Total:        totals.Total,
		VATEnabled:   params.VATEnabled,
		Status:       StatusDraft,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.CreateQuotation(ctx, q); err != nil {
		return nil, fmt.Errorf("creating quotation: %w", err)
	}

	return q, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Quotation, error) {
	return s.repo.GetQuotation(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Quotation, error) {
	return s.repo.ListQuotations(ctx, filter)
}

// Update applies field and line-item edits. Edits are rejected with
// ErrLocked once the quotation is approved or converted; nothing is
// mutated in that case. Totals are recomputed from the resulting items.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Quotation, error) {
	q, err := s.repo.GetQuotation(ctx, id)
	if err != nil {
		return nil, err
	}

	if q.Locked() {
		return nil, ErrLocked
	}

	if params.Date != nil {
		q.Date = *params.Date
	}

	if params.ClaimantName != nil {
		q.ClaimantName = *params.ClaimantName
	}

	if params.Title != nil {
		q.Title = *params.Title
	}

	if params.LineItems != nil {
		q.LineItems = buildLineItems(params.LineItems)
	}

	if params.VATEnabled != nil {
		q.VATEnabled = *params.VATEnabled
	}

	totals := ComputeTotals(q.LineItems, q.VATEnabled)
	q.Subtotal = totals.Subtotal
	q.VATAmount = totals.VATAmount
	q.Total = totals.Total
	q.UpdatedAt = time.Now()

	if err := s.repo.UpdateQuotation(ctx, q); err != nil {
		return nil, fmt.Errorf("updating quotation: %w", err)
	}

	return q, nil
}

// Delete removes a quotation in any state. Approved and converted
// quotations are not guarded the way edits are; DESIGN.md tracks the
// open question of whether they should be.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteQuotation(ctx, id)
}

// Submit moves a draft to pending approval.
func (s *Service) Submit(ctx context.Context, id uuid.UUID) (*Quotation, error) {
	return s.transition(ctx, id, StatusPending)
}

// Approve accepts a pending quotation.
func (s *Service) Approve(ctx context.Context, id uuid.UUID) (*Quotation, error) {
	return s.transition(ctx, id, StatusApproved)
}

// ReturnToDraft sends a pending quotation back for rework.
func (s *Service) ReturnToDraft(ctx context.Context, id uuid.UUID) (*Quotation, error) {
	return s.transition(ctx, id, StatusDraft)
}

// Convert moves an approved quotation to converted and has the invoice
// collaborator issue an invoice from its snapshot. The transition is not
// committed if invoice creation fails.
func (s *Service) Convert(ctx context.Context, id uuid.UUID) (*Quotation, error) {
	q, err := s.repo.GetQuotation(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanTransition(q.Status, StatusConverted) {
		return nil, fmt.Errorf("%s -> %s: %w", q.Status, StatusConverted, ErrInvalidTransition)
	}

	if err := s.invoices.CreateFromQuotation(ctx, q.Clone()); err != nil {
		return nil, fmt.Errorf("creating invoice from quotation %s: %w", q.LinkNo, err)
	}

	q.Status = StatusConverted
	q.UpdatedAt = time.Now()

	if err := s.repo.UpdateQuotation(ctx, q); err != nil {
		return nil, fmt.Errorf("converting quotation: %w", err)
	}

	return q, nil
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, to Status) (*Quotation, error) {
	q, err := s.repo.GetQuotation(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanTransition(q.Status, to) {
		return nil, fmt.Errorf("%s -> %s: %w", q.Status, to, ErrInvalidTransition)
	}

	q.Status = to
	q.UpdatedAt = time.Now()

	if err := s.repo.UpdateQuotation(ctx, q); err != nil {
		return nil, fmt.Errorf("updating quotation status: %w", err)
	}

	return q, nil
}
