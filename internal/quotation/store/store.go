// Package store provides the in-memory quotation repository. All entity
// state is session-owned; there is deliberately no database behind it.
package store

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/kleinsmith/orthobill/internal/quotation"
)

// firstLinkNo seeds the externally visible link number sequence.
const firstLinkNo = 4465651

type Store struct {
	mu       sync.Mutex
	items    map[uuid.UUID]*quotation.Quotation
	nextLink int64
}

func New() *Store {
	return &Store{
		items:    make(map[uuid.UUID]*quotation.Quotation),
		nextLink: firstLinkNo,
	}
}

// CreateQuotation assigns the id, link number and initial version, then
// stores a private copy.
func (s *Store) CreateQuotation(_ context.Context, q *quotation.Quotation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	q.ID = uuid.New()
	q.LinkNo = strconv.FormatInt(s.nextLink, 10)
	q.Version = 1
	s.nextLink++

	s.items[q.ID] = q.Clone()

	return nil
}

func (s *Store) GetQuotation(_ context.Context, id uuid.UUID) (*quotation.Quotation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.items[id]
	if !ok {
		return nil, quotation.ErrNotFound
	}

	return q.Clone(), nil
}

// UpdateQuotation replaces the stored entity if the caller's version is
// current, enforcing one writer at a time per entity.
func (s *Store) UpdateQuotation(_ context.Context, q *quotation.Quotation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.items[q.ID]
	if !ok {
		return quotation.ErrNotFound
	}

	if existing.Version != q.Version {
		return quotation.ErrVersionConflict
	}

	q.Version++
	s.items[q.ID] = q.Clone()

	return nil
}

func (s *Store) DeleteQuotation(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return quotation.ErrNotFound
	}

	delete(s.items, id)

	return nil
}

// ListQuotations returns snapshots ordered by creation time, oldest first.
func (s *Store) ListQuotations(_ context.Context, filter quotation.ListFilter) ([]*quotation.Quotation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*quotation.Quotation

	for _, q := range s.items {
		if filter.Status != nil && q.Status != *filter.Status {
			continue
		}

		out = append(out, q.Clone())
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].LinkNo < out[j].LinkNo
		}

		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}
