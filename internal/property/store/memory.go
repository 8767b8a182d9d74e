package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"parapet/internal/property/models"
	"parapet/pkg/platform/sentinel"
)

// InMemoryStore keeps properties in a map for tests and zero-config runs.
type InMemoryStore struct {
	mu         sync.RWMutex
	properties map[uuid.UUID]models.Property
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{properties: make(map[uuid.UUID]models.Property)}
}

func (s *InMemoryStore) Create(_ context.Context, p *models.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.properties[p.ID]; exists {
		return sentinel.ErrConflict
	}
	s.properties[p.ID] = *p
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, id uuid.UUID) (*models.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.properties[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &p, nil
}

func (s *InMemoryStore) Update(_ context.Context, p *models.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.properties[p.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.properties[p.ID] = *p
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.properties[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.properties, id)
	return nil
}

func (s *InMemoryStore) List(_ context.Context, portfolioID *uuid.UUID) ([]*models.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Property
	for _, p := range s.properties {
		if portfolioID != nil && (p.PortfolioID == nil || *p.PortfolioID != *portfolioID) {
			continue
		}
		cp := p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Address < out[j].Address })
	return out, nil
}
