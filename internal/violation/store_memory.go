package violation

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"parapet/pkg/platform/sentinel"
)

// InMemoryStore keeps violations in a map for tests and zero-config runs.
type InMemoryStore struct {
	mu         sync.RWMutex
	violations map[uuid.UUID]Violation
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{violations: make(map[uuid.UUID]Violation)}
}

func (s *InMemoryStore) Create(_ context.Context, v *Violation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.violations[v.ID]; exists {
		return sentinel.ErrConflict
	}
	s.violations[v.ID] = *v
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, id uuid.UUID) (*Violation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.violations[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &v, nil
}

func (s *InMemoryStore) Update(_ context.Context, v *Violation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.violations[v.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.violations[v.ID] = *v
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.violations[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.violations, id)
	return nil
}

func (s *InMemoryStore) ListByProperty(_ context.Context, propertyID uuid.UUID) ([]*Violation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Violation
	for _, v := range s.violations {
		if v.PropertyID == propertyID {
			cp := v
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
