package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"parapet/internal/permit/models"
	"parapet/pkg/platform/sentinel"
)

// InMemoryStore keeps applications in a map. Unit tests and zero-config runs
// use it in place of PostgreSQL.
type InMemoryStore struct {
	mu   sync.RWMutex
	apps map[uuid.UUID]models.Application
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{apps: make(map[uuid.UUID]models.Application)}
}

func (s *InMemoryStore) Create(_ context.Context, app *models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.apps[app.ID]; exists {
		return sentinel.ErrConflict
	}
	s.apps[app.ID] = *app
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, id uuid.UUID) (*models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	app, ok := s.apps[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &app, nil
}

func (s *InMemoryStore) Update(_ context.Context, app *models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.apps[app.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.apps[app.ID] = *app
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.apps[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.apps, id)
	return nil
}

// ListByProperty returns applications ordered by creation time then ID so
// downstream classification sees a deterministic input order.
func (s *InMemoryStore) ListByProperty(_ context.Context, propertyID uuid.UUID) ([]*models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Application
	for _, app := range s.apps {
		if app.PropertyID == propertyID {
			a := app
			out = append(out, &a)
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
