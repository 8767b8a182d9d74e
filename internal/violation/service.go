package violation

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

// Service owns the violation lifecycle and the per-property search view.
type Service struct {
	store   Store
	auditor *audit.Publisher
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewService(store Store, auditor *audit.Publisher, m *metrics.Metrics) *Service {
	return &Service{store: store, auditor: auditor, metrics: m, now: time.Now}
}

func (s *Service) Create(ctx context.Context, v *Violation) (*Violation, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	v.ID = uuid.New()
	now := s.now().UTC()
	v.CreatedAt = now
	v.UpdatedAt = now

	if err := s.store.Create(ctx, v); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "violation already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create violation")
	}

	s.metrics.IncrementCreated("violation")
	_ = s.auditor.Emit(ctx, audit.Event{
		Entity: "violation", EntityID: v.ID.String(), Action: audit.ActionCreated,
	})
	return v, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Violation, error) {
	v, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return v, nil
}

func (s *Service) Update(ctx context.Context, v *Violation) (*Violation, error) {
	if v.ID == uuid.Nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "id is required")
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	v.UpdatedAt = s.now().UTC()

	if err := s.store.Update(ctx, v); err != nil {
		return nil, translate(err)
	}
	_ = s.auditor.Emit(ctx, audit.Event{
		Entity: "violation", EntityID: v.ID.String(), Action: audit.ActionUpdated,
	})
	return v, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return translate(err)
	}
	_ = s.auditor.Emit(ctx, audit.Event{
		Entity: "violation", EntityID: id.String(), Action: audit.ActionDeleted,
	})
	return nil
}

// SearchByProperty loads a property's violations and applies the caller's
// filter, dedupe, and sort in one pass.
func (s *Service) SearchByProperty(ctx context.Context, propertyID uuid.UUID, q Query) (*SearchResult, error) {
	violations, err := s.store.ListByProperty(ctx, propertyID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list violations")
	}
	res := Search(violations, q)
	return &res, nil
}

func translate(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "violation not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "storage failure")
}
