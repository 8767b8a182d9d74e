package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"parapet/internal/audit"
	"parapet/internal/platform/metrics"
	"parapet/internal/property/models"
	dErrors "parapet/pkg/domain-errors"
	"parapet/pkg/platform/sentinel"
)

type Store interface {
	Create(ctx context.Context, p *models.Property) error
	Get(ctx context.Context, id uuid.UUID) (*models.Property, error)
	Update(ctx context.Context, p *models.Property) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, portfolioID *uuid.UUID) ([]*models.Property, error)
}

// Service owns the property lifecycle. Validation lives on the model; the
// service adds IDs, timestamps, audit, and error translation.
type Service struct {
	store   Store
	auditor *audit.Publisher
	metrics *metrics.Metrics
	now     func() time.Time
}

func New(store Store, auditor *audit.Publisher, m *metrics.Metrics) *Service {
	return &Service{store: store, auditor: auditor, metrics: m, now: time.Now}
}

func (s *Service) Create(ctx context.Context, p *models.Property) (*models.Property, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.ID = uuid.New()
	now := s.now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.store.Create(ctx, p); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "property already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create property")
	}

	s.metrics.IncrementCreated("property")
	_ = s.auditor.Emit(ctx, audit.Event{
		Entity: "property", EntityID: p.ID.String(), Action: audit.ActionCreated,
	})
	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, p *models.Property) (*models.Property, error) {
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
		Entity: "property", EntityID: p.ID.String(), Action: audit.ActionUpdated,
	})
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return translate(err)
	}
	_ = s.auditor.Emit(ctx, audit.Event{
		Entity: "property", EntityID: id.String(), Action: audit.ActionDeleted,
	})
	return nil
}

func (s *Service) List(ctx context.Context, portfolioID *uuid.UUID) ([]*models.Property, error) {
	properties, err := s.store.List(ctx, portfolioID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list properties")
	}
	return properties, nil
}

func translate(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "property not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "storage failure")
}
