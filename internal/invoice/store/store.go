// Package store provides the in-memory invoice repository.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/kleinsmith/orthobill/internal/invoice"
)

type Store struct {
	mu    sync.Mutex
	items map[uuid.UUID]*invoice.Invoice
	// seq numbers invoices per calendar year: INV-<year>-<NNN>.
	seq map[int]int
}

func New() *Store {
	return &Store{
		items: make(map[uuid.UUID]*invoice.Invoice),
		seq:   make(map[int]int),
	}
}

// CreateInvoice assigns the id, the per-year invoice number and the
// initial version, then stores a private copy.
func (s *Store) CreateInvoice(_ context.Context, inv *invoice.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	year := inv.Date.Year()
	s.seq[year]++

	inv.ID = uuid.New()
	inv.InvoiceNo = fmt.Sprintf("INV-%d-%03d", year, s.seq[year])
	inv.Version = 1

	s.items[inv.ID] = inv.Clone()

	return nil
}

func (s *Store) GetInvoice(_ context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.items[id]
	if !ok {
		return nil, invoice.ErrNotFound
	}

	return inv.Clone(), nil
}

// UpdateInvoice replaces the stored entity if the caller's version is
// current.
func (s *Store) UpdateInvoice(_ context.Context, inv *invoice.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.items[inv.ID]
	if !ok {
		return invoice.ErrNotFound
	}

	if existing.Version != inv.Version {
		return invoice.ErrVersionConflict
	}

	inv.Version++
	s.items[inv.ID] = inv.Clone()

	return nil
}

// ListInvoices returns snapshots ordered by creation time, oldest first.
func (s *Store) ListInvoices(_ context.Context) ([]*invoice.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*invoice.Invoice, 0, len(s.items))
	for _, inv := range s.items {
		out = append(out, inv.Clone())
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].InvoiceNo < out[j].InvoiceNo
		}

		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}
