// Package expenses holds the unscoped legacy expense list.
package expenses

import (
	"context"
	"sync"

	"expensetracker/internal/core"
)

// Store is the legacy expense persistence. The server receives one at
// construction so tests can start from an empty list.
type Store interface {
	List(ctx context.Context) ([]core.Expense, error)
	Append(ctx context.Context, e core.Expense) (core.Expense, error)
}

// MemoryStore keeps expenses for the lifetime of the process.
type MemoryStore struct {
	mu    sync.Mutex
	items []core.Expense
}

func NewMemoryStore(seed ...core.Expense) *MemoryStore {
	s := &MemoryStore{}
	for _, e := range seed {
		e.ID = int64(len(s.items) + 1)
		s.items = append(s.items, e)
	}
	return s
}

// List returns a copy of the stored expenses in insertion order.
func (s *MemoryStore) List(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Expense(nil), s.items...), nil
}

// Append validates e and stores it with id count+1.
func (s *MemoryStore) Append(_ context.Context, e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = int64(len(s.items) + 1)
	s.items = append(s.items, e)
	return e, nil
}
