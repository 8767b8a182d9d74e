package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Sink receives every published event in addition to the store. Used for the
// optional Kafka pipeline.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// Publisher is the single entry point services use to emit audit events.
// In sync mode events go straight to the store; with an async buffer a worker
// drains them in the background so hot paths never block on audit IO.
type Publisher struct {
	store  Store
	sink   Sink
	logger *slog.Logger

	inbox  chan Event
	done   chan struct{}
	cancel context.CancelFunc
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithAsyncBuffer switches the publisher to async mode with the given buffer
// size. Emit drops events (with a log line) when the buffer is full rather
// than blocking a request.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		p.inbox = make(chan Event, size)
	}
}

// WithSink attaches an additional event sink, e.g. Kafka.
func WithSink(sink Sink) Option {
	return func(p *Publisher) {
		p.sink = sink
	}
}

// WithLogger sets the logger for drop/failure reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// NewPublisher wires a publisher over a store. Pass WithAsyncBuffer to run
// the drain worker.
func NewPublisher(store Store, opts ...Option) *Publisher {
	p := &Publisher{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	if p.inbox != nil {
		ctx, cancel := context.WithCancel(context.Background())
		p.cancel = cancel
		p.done = make(chan struct{})
		go p.drain(ctx)
	}
	return p
}

// Emit publishes one event. Nil publishers are safe so wiring stays optional.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if p == nil {
		return nil
	}
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	if p.inbox != nil {
		select {
		case p.inbox <- event:
		default:
			p.logger.Warn("audit buffer full, dropping event",
				"entity", event.Entity, "action", string(event.Action))
		}
		return nil
	}
	return p.deliver(ctx, event)
}

// List exposes the store's listing for the admin endpoint.
func (p *Publisher) List(ctx context.Context, entity string, limit int) ([]Event, error) {
	return p.store.List(ctx, entity, limit)
}

// Close stops the drain worker and waits for the buffer to empty.
func (p *Publisher) Close() {
	if p == nil || p.inbox == nil {
		return
	}
	close(p.inbox)
	<-p.done
	p.cancel()
}

func (p *Publisher) drain(ctx context.Context) {
	defer close(p.done)
	for event := range p.inbox {
		if err := p.deliver(ctx, event); err != nil {
			p.logger.Error("audit delivery failed", "error", err)
		}
	}
}

func (p *Publisher) deliver(ctx context.Context, event Event) error {
	if err := p.store.Append(ctx, event); err != nil {
		return err
	}
	if p.sink != nil {
		// Sink failures are logged, not propagated: the store copy is the
		// source of truth.
		if err := p.sink.Publish(ctx, event); err != nil {
			p.logger.Warn("audit sink publish failed", "error", err)
		}
	}
	return nil
}
