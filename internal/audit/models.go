// Package audit records who changed what. Services emit events on every
// mutation; sinks fan them out to the store and, when configured, Kafka.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Action describes the kind of mutation an event records.
type Action string

const (
	ActionCreated    Action = "created"
	ActionUpdated    Action = "updated"
	ActionDeleted    Action = "deleted"
	ActionTransition Action = "status_transition"
	ActionSummarized Action = "summary_generated"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Entity    string    `json:"entity"`
	EntityID  string    `json:"entity_id"`
	Action    Action    `json:"action"`
	// RequestID correlates the event with the HTTP request that caused it.
	RequestID string `json:"request_id,omitempty"`
	Detail    string `json:"detail,omitempty"`
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	List(ctx context.Context, entity string, limit int) ([]Event, error)
}
