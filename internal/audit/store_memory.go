package audit

import (
	"context"
	"sync"
)

// InMemoryStore keeps events in memory. Zero-config runs and unit tests use
// it in place of PostgreSQL.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// List returns the newest events first, optionally filtered by entity.
func (s *InMemoryStore) List(_ context.Context, entity string, limit int) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Event, 0, limit)
	for i := len(s.events) - 1; i >= 0; i-- {
		if entity != "" && s.events[i].Entity != entity {
			continue
		}
		out = append(out, s.events[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}
