package portfolio

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"parapet/pkg/platform/sentinel"
)

// InMemoryStore keeps portfolios in a map for tests and zero-config runs.
type InMemoryStore struct {
	mu         sync.RWMutex
	portfolios map[uuid.UUID]Portfolio
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{portfolios: make(map[uuid.UUID]Portfolio)}
}

func (s *InMemoryStore) Create(_ context.Context, p *Portfolio) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.portfolios[p.ID]; exists {
		return sentinel.ErrConflict
	}
	s.portfolios[p.ID] = *p
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, id uuid.UUID) (*Portfolio, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.portfolios[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &p, nil
}

func (s *InMemoryStore) Update(_ context.Context, p *Portfolio) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.portfolios[p.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.portfolios[p.ID] = *p
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.portfolios[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.portfolios, id)
	return nil
}

func (s *InMemoryStore) List(_ context.Context) ([]*Portfolio, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Portfolio, 0, len(s.portfolios))
	for _, p := range s.portfolios {
		cp := p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}
