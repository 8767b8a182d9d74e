package tax

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

// Service owns tax record lifecycle and the per-property balance rollup.
type Service struct {
	store   Store
	auditor *audit.Publisher
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewService(store Store, auditor *audit.Publisher, m *metrics.Metrics) *Service {
	return &Service{store: store, auditor: auditor, metrics: m, now: time.Now}
}

func (s *Service) Create(ctx context.Context, r *Record) (*Record, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	r.ID = uuid.New()
	now := s.now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now

	if err := s.store.Create(ctx, r); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "tax record already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create tax record")
	}

	s.metrics.IncrementCreated("tax_record")
	_ = s.auditor.Emit(ctx, audit.Event{
		Entity: "tax_record", EntityID: r.ID.String(), Action: audit.ActionCreated,
	})
	return r, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	r, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return r, nil
}

func (s *Service) Update(ctx context.Context, r *Record) (*Record, error) {
	if r.ID == uuid.Nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "id is required")
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	r.UpdatedAt = s.now().UTC()

	if err := s.store.Update(ctx, r); err != nil {
		return nil, translate(err)
	}
	_ = s.auditor.Emit(ctx, audit.Event{
		Entity: "tax_record", EntityID: r.ID.String(), Action: audit.ActionUpdated,
	})
	return r, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return translate(err)
	}
	_ = s.auditor.Emit(ctx, audit.Event{
		Entity: "tax_record", EntityID: id.String(), Action: audit.ActionDeleted,
	})
	return nil
}

// RollupByProperty loads a property's tax records and derives the balance
// summary.
func (s *Service) RollupByProperty(ctx context.Context, propertyID uuid.UUID) (*Rollup, error) {
	records, err := s.store.ListByProperty(ctx, propertyID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list tax records")
	}
	ro := BuildRollup(records, s.now().UTC())
	return &ro, nil
}

func translate(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "tax record not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "storage failure")
}
