// Package memory provides an in-memory bills store for development and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"bollette/internal/bills"
	"bollette/internal/core"
)

type Store struct {
	mu    sync.Mutex
	items []core.Bill
	now   func() time.Time
}

// Ensure interface conformance
var _ bills.Store = (*Store)(nil)

func New(seed []core.Bill) *Store {
	s := &Store{now: time.Now}
	s.items = append(s.items, seed...)
	return s
}

// WithClock overrides the timestamp source. Tests use it for fixed times.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// ListBills returns a copy of the collection.
func (s *Store) ListBills(_ context.Context) ([]core.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Bill, len(s.items))
	copy(out, s.items)
	return out, nil
}

// CreateBill assigns an id and timestamps, mirroring the backend contract.
func (s *Store) CreateBill(_ context.Context, b core.Bill) (core.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now().UTC()
	b.ID = uuid.NewString()
	b.CreatedAt = now
	b.UpdatedAt = now
	s.items = append(s.items, b)
	return b, nil
}

// UpdateBill replaces the stored record wholesale by id.
func (s *Store) UpdateBill(_ context.Context, b core.Bill) (core.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.items {
		if existing.ID == b.ID {
			b.CreatedAt = existing.CreatedAt
			b.UpdatedAt = s.now().UTC()
			s.items[i] = b
			return b, nil
		}
	}
	return core.Bill{}, bills.ErrNotFound
}

func (s *Store) DeleteBill(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.items {
		if existing.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return bills.ErrNotFound
}
