package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"parapet/internal/audit"
	"parapet/internal/permit/classify"
	"parapet/internal/permit/models"
	"parapet/internal/platform/metrics"
	dErrors "parapet/pkg/domain-errors"
	"parapet/pkg/platform/sentinel"
)

type Store interface {
	Create(ctx context.Context, app *models.Application) error
	Get(ctx context.Context, id uuid.UUID) (*models.Application, error)
	Update(ctx context.Context, app *models.Application) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*models.Application, error)
}

// Service owns permit application lifecycle and the classified display view.
// The classifier itself is stateless; this service's only job around it is
// fetching records and threading the caller's filter state through.
type Service struct {
	store   Store
	auditor *audit.Publisher
	metrics *metrics.Metrics
	now     func() time.Time
}

func New(store Store, auditor *audit.Publisher, m *metrics.Metrics) *Service {
	return &Service{store: store, auditor: auditor, metrics: m, now: time.Now}
}

func (s *Service) Create(ctx context.Context, app *models.Application) (*models.Application, error) {
	if err := app.Validate(); err != nil {
		return nil, err
	}
	app.ID = uuid.New()
	now := s.now().UTC()
	app.CreatedAt = now
	app.UpdatedAt = now

	if err := s.store.Create(ctx, app); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "application already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create application")
	}

	s.metrics.IncrementCreated("application")
	_ = s.auditor.Emit(ctx, audit.Event{
		Entity: "application", EntityID: app.ID.String(), Action: audit.ActionCreated,
	})
	return app, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	app, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, translate(err, "application")
	}
	return app, nil
}

func (s *Service) Update(ctx context.Context, app *models.Application) (*models.Application, error) {
	if app.ID == uuid.Nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "id is required")
	}
	if err := app.Validate(); err != nil {
		return nil, err
	}
	app.UpdatedAt = s.now().UTC()

	if err := s.store.Update(ctx, app); err != nil {
		return nil, translate(err, "application")
	}
	_ = s.auditor.Emit(ctx, audit.Event{
		Entity: "application", EntityID: app.ID.String(), Action: audit.ActionUpdated,
	})
	return app, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return translate(err, "application")
	}
	_ = s.auditor.Emit(ctx, audit.Event{
		Entity: "application", EntityID: id.String(), Action: audit.ActionDeleted,
	})
	return nil
}

func (s *Service) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*models.Application, error) {
	apps, err := s.store.ListByProperty(ctx, propertyID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list applications")
	}
	return apps, nil
}

func translate(err error, entity string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, entity+" not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "storage failure")
}

// Filters is the caller-owned filter state for the classified view. The
// zero value hides completed applications, matching the dashboard default.
type Filters struct {
	Search        string
	Agencies      []string
	Statuses      []string
	ShowCompleted bool
}

func (f Filters) matches(app *models.Application) bool {
	decoded := classify.Decode(app.RawStatus, app.Source)

	if !f.ShowCompleted && classify.IsCompleted(decoded) {
		return false
	}
	if len(f.Agencies) > 0 && !containsFold(f.Agencies, app.Agency) {
		return false
	}
	if len(f.Statuses) > 0 && !containsFold(f.Statuses, decoded) {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(app.ApplicationNumber), q) &&
			!strings.Contains(strings.ToLower(app.Description), q) &&
			!strings.Contains(strings.ToLower(app.Applicant), q) {
			return false
		}
	}
	return true
}

func containsFold(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(s, needle) {
			return true
		}
	}
	return false
}

// DisplayRow is one top-level row of the classified view.
type DisplayRow struct {
	models.Application
	DecodedStatus  string          `json:"decoded_status"`
	StatusBucket   classify.Bucket `json:"status_bucket"`
	Active         bool            `json:"active"`
	RelatedFilings []RelatedRow    `json:"related_filings,omitempty"`
}

// RelatedRow is a nested family member of a displayed row.
type RelatedRow struct {
	models.Application
	DecodedStatus string          `json:"decoded_status"`
	StatusBucket  classify.Bucket `json:"status_bucket"`
	Active        bool            `json:"active"`
}

// DisplayResult is the response shape for the classified view.
type DisplayResult struct {
	Rows        []DisplayRow `json:"rows"`
	ActiveCount int          `json:"active_count"`
	TotalCount  int          `json:"total_count"`
}

// Classified fetches a property's applications, applies the caller's filters,
// and reconciles filing families into the flat display list. Everything is
// re-derived per call; there is no cached intermediate state.
func (s *Service) Classified(ctx context.Context, propertyID uuid.UUID, filters Filters) (*DisplayResult, error) {
	start := s.now()

	apps, err := s.store.ListByProperty(ctx, propertyID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list applications")
	}

	byID := make(map[string]*models.Application, len(apps))
	all := make([]classify.Record, 0, len(apps))
	var filtered []classify.Record
	for _, app := range apps {
		rec := app.ClassifyRecord()
		byID[rec.ID] = app
		all = append(all, rec)
		if filters.matches(app) {
			filtered = append(filtered, rec)
		}
	}

	res := classify.BuildDisplay(filtered, all)

	rows := make([]DisplayRow, 0, len(res.Display))
	for _, rec := range res.Display {
		app := byID[rec.ID]
		row := DisplayRow{
			Application:   *app,
			DecodedStatus: classify.Decode(app.RawStatus, app.Source),
			Active:        classify.IsActive(rec),
		}
		row.StatusBucket = classify.StyleBucket(row.DecodedStatus)
		for _, member := range res.Related[rec.ID] {
			related := byID[member.ID]
			decoded := classify.Decode(related.RawStatus, related.Source)
			row.RelatedFilings = append(row.RelatedFilings, RelatedRow{
				Application:   *related,
				DecodedStatus: decoded,
				StatusBucket:  classify.StyleBucket(decoded),
				Active:        classify.IsActive(member),
			})
		}
		rows = append(rows, row)
	}

	if s.metrics != nil {
		s.metrics.ClassificationRuns.Inc()
		s.metrics.ClassificationDuration.Observe(time.Since(start).Seconds())
	}

	return &DisplayResult{
		Rows:        rows,
		ActiveCount: res.ActiveCount,
		TotalCount:  res.TotalCount,
	}, nil
}
