package audit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisherSyncMode(t *testing.T) {
	store := NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	err := pub.Emit(context.Background(), Event{
		Entity:   "property",
		EntityID: "p-1",
		Action:   ActionCreated,
	})
	require.NoError(t, err)

	events, err := pub.List(context.Background(), "property", 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, ActionCreated, events[0].Action)
	assert.NotZero(t, events[0].ID)
	assert.False(t, events[0].Timestamp.IsZero())
}

func TestPublisherAsyncMode(t *testing.T) {
	store := NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(10))

	for i := 0; i < 5; i++ {
		err := pub.Emit(context.Background(), Event{
			Entity:   "workorder",
			EntityID: "w-1",
			Action:   ActionUpdated,
		})
		require.NoError(t, err)
	}

	// Close drains the buffer before returning.
	pub.Close()

	events, err := store.List(context.Background(), "workorder", 0)
	require.NoError(t, err)
	assert.Len(t, events, 5)
}

func TestPublisherSinkReceivesEvents(t *testing.T) {
	store := NewInMemoryStore()
	sink := &recordingSink{}
	pub := NewPublisher(store, WithSink(sink))
	defer pub.Close()

	err := pub.Emit(context.Background(), Event{Entity: "vendor", Action: ActionDeleted})
	require.NoError(t, err)

	assert.Equal(t, 1, sink.count())
}

func TestNilPublisherIsSafe(t *testing.T) {
	var pub *Publisher
	require.NoError(t, pub.Emit(context.Background(), Event{Entity: "tax"}))
	pub.Close()
}

func TestInMemoryStoreListFilters(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()
	for _, entity := range []string{"property", "vendor", "property"} {
		require.NoError(t, store.Append(ctx, Event{Entity: entity, Timestamp: time.Now()}))
	}

	events, err := store.List(ctx, "property", 0)
	require.NoError(t, err)
	assert.Len(t, events, 2)

	limited, err := store.List(ctx, "", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) Publish(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}
