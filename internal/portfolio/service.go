package portfolio

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

// Service owns portfolio lifecycle.
type Service struct {
	store   Store
	auditor *audit.Publisher
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewService(store Store, auditor *audit.Publisher, m *metrics.Metrics) *Service {
	return &Service{store: store, auditor: auditor, metrics: m, now: time.Now}
}

func (s *Service) Create(ctx context.Context, p *Portfolio) (*Portfolio, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.ID = uuid.New()
	now := s.now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.store.Create(ctx, p); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "portfolio already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create portfolio")
	}

	s.metrics.IncrementCreated("portfolio")
	_ = s.auditor.Emit(ctx, audit.Event{
		Entity: "portfolio", EntityID: p.ID.String(), Action: audit.ActionCreated,
	})
	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Portfolio, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, p *Portfolio) (*Portfolio, error) {
	if p.ID == uuid.Nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "id is required")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.UpdatedAt = s.now().UTC()

	if err := s.store.Update(ctx, p); err != nil {
		return nil, translate(err)
	}
	_ = s.auditor.Emit(ctx, audit.Event{
		Entity: "portfolio", EntityID: p.ID.String(), Action: audit.ActionUpdated,
	})
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return translate(err)
	}
	_ = s.auditor.Emit(ctx, audit.Event{
		Entity: "portfolio", EntityID: id.String(), Action: audit.ActionDeleted,
	})
	return nil
}

func (s *Service) List(ctx context.Context) ([]*Portfolio, error) {
	portfolios, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list portfolios")
	}
	return portfolios, nil
}

func translate(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "portfolio not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "storage failure")
}
