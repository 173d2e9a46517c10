// Package quotation holds the quotation domain model: priced line items,
// document totals and the approval lifecycle.
package quotation

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when no quotation exists for the given id.
	ErrNotFound = errors.New("quotation not found")

	// ErrLocked is returned when a quotation's fields or line items are
	// edited after approval or conversion.
	ErrLocked = errors.New("quotation is approved or converted and can no longer be edited")

	// ErrInvalidTransition is returned for a lifecycle transition the
	// state machine does not allow.
	ErrInvalidTransition = errors.New("invalid quotation status transition")

	// ErrVersionConflict is returned when an update carries a stale
	// entity version.
	ErrVersionConflict = errors.New("quotation was modified concurrently")
)

// Status is the lifecycle state of a quotation.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusConverted Status = "converted"
)

// allowedTransitions is the full transition relation. Conversion is the
// only way out of approved; pending may fall back to draft for rework.
var allowedTransitions = map[Status][]Status{
	StatusDraft:    {StatusPending},
	StatusPending:  {StatusApproved, StatusDraft},
	StatusApproved: {StatusConverted},
}

// CanTransition reports whether the state machine allows from → to.
func CanTransition(from, to Status) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}

	return false
}

// LineItem is one priced entry within a quotation or invoice. Total is
// derived and must never be set directly; use the With* setters or
// NewLineItem so it stays consistent with Quantity × PricePerUnit.
type LineItem struct {
	ID           uuid.UUID       `json:"id"`
	ICD10Code    string          `json:"icd10Code"`
	Description  string          `json:"description"`
	Quantity     int             `json:"quantity"`
	NAPPICode    string          `json:"nappiCode"`
	SAOPACode    string          `json:"saopaCode"`
	PricePerUnit decimal.Decimal `json:"pricePerUnit"`
	Total        decimal.Decimal `json:"total"`
}

// Quotation is a priced proposal awaiting approval. It owns its line items
// exclusively; totals are recomputed from them on every edit.
type Quotation struct {
	ID           uuid.UUID       `json:"id"`
	LinkNo       string          `json:"linkNo"`
	Date         time.Time       `json:"date"`
	ClaimantName string          `json:"claimantName"`
	Title        string          `json:"title"`
	LineItems    []LineItem      `json:"lineItems"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	VATAmount    decimal.Decimal `json:"vatAmount"`
	Total        decimal.Decimal `json:"total"`
	VATEnabled   bool            `json:"vatEnabled"`
	Status       Status          `json:"status"`
	Version      int64           `json:"version"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// Locked reports whether field and line-item edits are rejected.
func (q *Quotation) Locked() bool {
	return q.Status == StatusApproved || q.Status == StatusConverted
}

// Clone returns a deep copy, so stores can hand out snapshots without
// sharing the line-item slice.
func (q *Quotation) Clone() *Quotation {
	out := *q
	out.LineItems = append([]LineItem(nil), q.LineItems...)

	return &out
}
