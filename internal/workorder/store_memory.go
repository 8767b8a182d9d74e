package workorder

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"parapet/pkg/platform/sentinel"
)

// InMemoryStore keeps work orders in a map for tests and zero-config runs.
type InMemoryStore struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]WorkOrder
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{orders: make(map[uuid.UUID]WorkOrder)}
}

func (s *InMemoryStore) Create(_ context.Context, w *WorkOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.orders[w.ID]; exists {
		return sentinel.ErrConflict
	}
	s.orders[w.ID] = *w
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, id uuid.UUID) (*WorkOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.orders[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &w, nil
}

func (s *InMemoryStore) Update(_ context.Context, w *WorkOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[w.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.orders[w.ID] = *w
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.orders, id)
	return nil
}

func (s *InMemoryStore) ListByProperty(_ context.Context, propertyID uuid.UUID) ([]*WorkOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*WorkOrder
	for _, w := range s.orders {
		if w.PropertyID == propertyID {
			cp := w
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}
