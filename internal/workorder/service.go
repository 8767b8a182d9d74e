package workorder

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"parapet/internal/audit"
	"parapet/internal/platform/metrics"
	dErrors "parapet/pkg/domain-errors"
	"parapet/pkg/platform/sentinel"
)

// Service owns the work order lifecycle. Transitions are guarded by the
// model; the service's job is fetch, guard, persist, audit.
type Service struct {
	store   Store
	auditor *audit.Publisher
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewService(store Store, auditor *audit.Publisher, m *metrics.Metrics) *Service {
	return &Service{store: store, auditor: auditor, metrics: m, now: time.Now}
}

func (s *Service) Create(ctx context.Context, w *WorkOrder) (*WorkOrder, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	w.ID = uuid.New()
	now := s.now().UTC()
	w.CreatedAt = now
	w.UpdatedAt = now

	if err := s.store.Create(ctx, w); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "work order already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create work order")
	}

	s.metrics.IncrementCreated("work_order")
	_ = s.auditor.Emit(ctx, audit.Event{
		Entity: "work_order", EntityID: w.ID.String(), Action: audit.ActionCreated,
	})
	return w, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*WorkOrder, error) {
	w, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return w, nil
}

func (s *Service) Update(ctx context.Context, w *WorkOrder) (*WorkOrder, error) {
	if w.ID == uuid.Nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "id is required")
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}

	// Status moves only through Transition; an Update keeps the stored one.
	current, err := s.store.Get(ctx, w.ID)
	if err != nil {
		return nil, translate(err)
	}
	w.Status = current.Status
	w.CompletedAt = current.CompletedAt
	w.CreatedAt = current.CreatedAt
	w.UpdatedAt = s.now().UTC()

	if err := s.store.Update(ctx, w); err != nil {
		return nil, translate(err)
	}
	_ = s.auditor.Emit(ctx, audit.Event{
		Entity: "work_order", EntityID: w.ID.String(), Action: audit.ActionUpdated,
	})
	return w, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return translate(err)
	}
	_ = s.auditor.Emit(ctx, audit.Event{
		Entity: "work_order", EntityID: id.String(), Action: audit.ActionDeleted,
	})
	return nil
}

func (s *Service) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*WorkOrder, error) {
	orders, err := s.store.ListByProperty(ctx, propertyID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list work orders")
	}
	return orders, nil
}

// Transition moves a work order through its lifecycle. Invalid moves are
// rejected before anything is written.
func (s *Service) Transition(ctx context.Context, id uuid.UUID, target Status) (*WorkOrder, error) {
	w, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	if err := w.CanTransition(target); err != nil {
		return nil, err
	}
	from := w.Status
	w.ApplyTransition(target, s.now().UTC())

	if err := s.store.Update(ctx, w); err != nil {
		return nil, translate(err)
	}
	_ = s.auditor.Emit(ctx, audit.Event{
		Entity:   "work_order",
		EntityID: w.ID.String(),
		Action:   audit.ActionTransition,
		Detail:   string(from) + " -> " + string(target),
	})
	return w, nil
}

func translate(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "work order not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "storage failure")
}
