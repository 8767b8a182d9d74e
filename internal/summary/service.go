package summary

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"parapet/internal/audit"
	permitservice "parapet/internal/permit/service"
	"parapet/internal/platform/metrics"
	propertymodels "parapet/internal/property/models"
	"parapet/internal/tax"
	"parapet/internal/violation"
	"parapet/internal/workorder"
	dErrors "parapet/pkg/domain-errors"
	"parapet/pkg/platform/circuit"
)

// PropertyReader fetches the property under summary.
type PropertyReader interface {
	Get(ctx context.Context, id uuid.UUID) (*propertymodels.Property, error)
}

// ViolationSearcher provides the deduplicated violation view.
type ViolationSearcher interface {
	SearchByProperty(ctx context.Context, propertyID uuid.UUID, q violation.Query) (*violation.SearchResult, error)
}

// PermitClassifier provides the reconciled filing view.
type PermitClassifier interface {
	Classified(ctx context.Context, propertyID uuid.UUID, filters permitservice.Filters) (*permitservice.DisplayResult, error)
}

// TaxRoller provides the tax balance rollup.
type TaxRoller interface {
	RollupByProperty(ctx context.Context, propertyID uuid.UUID) (*tax.Rollup, error)
}

// WorkOrderLister provides the property's work orders.
type WorkOrderLister interface {
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*workorder.WorkOrder, error)
}

// Result is the generated summary plus its provenance.
type Result struct {
	PropertyID  uuid.UUID `json:"property_id"`
	Summary     string    `json:"summary"`
	Model       string    `json:"model,omitempty"`
	Cached      bool      `json:"cached"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Service assembles the compliance digest and runs it through the provider,
// caching the result per property.
type Service struct {
	provider   Provider
	breaker    *circuit.Breaker
	cache      Cache
	ttl        time.Duration
	properties PropertyReader
	violations ViolationSearcher
	permits    PermitClassifier
	taxes      TaxRoller
	workorders WorkOrderLister
	auditor    *audit.Publisher
	metrics    *metrics.Metrics
	now        func() time.Time
}

func NewService(
	provider Provider,
	cache Cache,
	ttl time.Duration,
	properties PropertyReader,
	violations ViolationSearcher,
	permits PermitClassifier,
	taxes TaxRoller,
	workorders WorkOrderLister,
	auditor *audit.Publisher,
	m *metrics.Metrics,
) *Service {
	return &Service{
		provider:   provider,
		breaker:    circuit.New("summary-provider", circuit.WithFailureThreshold(5)),
		cache:      cache,
		ttl:        ttl,
		properties: properties,
		violations: violations,
		permits:    permits,
		taxes:      taxes,
		workorders: workorders,
		auditor:    auditor,
		metrics:    m,
		now:        time.Now,
	}
}

// Generate returns the property's compliance summary, serving from cache when
// a fresh one exists.
func (s *Service) Generate(ctx context.Context, propertyID uuid.UUID) (*Result, error) {
	if s.provider == nil {
		return nil, dErrors.New(dErrors.CodeUnavailable, "summary provider not configured")
	}

	key := cacheKey(propertyID)
	if s.cache != nil {
		cached, found, err := s.cache.Get(ctx, key)
		if err == nil && found {
			if s.metrics != nil {
				s.metrics.SummaryCacheHits.Inc()
			}
			return &Result{
				PropertyID:  propertyID,
				Summary:     cached,
				Cached:      true,
				GeneratedAt: s.now().UTC(),
			}, nil
		}
		// Cache failures degrade to a fresh generation.
		if s.metrics != nil {
			s.metrics.SummaryCacheMisses.Inc()
		}
	}

	// An open breaker gets one cheap availability probe before failing fast.
	if s.breaker.IsOpen() {
		if !s.provider.IsAvailable(ctx) {
			return nil, dErrors.New(dErrors.CodeUnavailable, "summary provider unavailable")
		}
		s.breaker.RecordSuccess()
	}

	digest, err := s.buildDigest(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{Digest: *digest})
	if err != nil {
		s.breaker.RecordFailure()
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "summary generation failed")
	}
	s.breaker.RecordSuccess()

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, resp.Summary, s.ttl)
	}
	_ = s.auditor.Emit(ctx, audit.Event{
		Entity: "property", EntityID: propertyID.String(), Action: audit.ActionSummarized,
	})

	return &Result{
		PropertyID:  propertyID,
		Summary:     resp.Summary,
		Model:       resp.Model,
		GeneratedAt: s.now().UTC(),
	}, nil
}

// buildDigest fans out the four reads concurrently; the property fetch also
// serves as the existence check.
func (s *Service) buildDigest(ctx context.Context, propertyID uuid.UUID) (*Digest, error) {
	var (
		prop    *propertymodels.Property
		search  *violation.SearchResult
		display *permitservice.DisplayResult
		rollup  *tax.Rollup
		orders  []*workorder.WorkOrder
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		prop, err = s.properties.Get(gctx, propertyID)
		return err
	})
	g.Go(func() error {
		var err error
		search, err = s.violations.SearchByProperty(gctx, propertyID, violation.Query{})
		return err
	})
	g.Go(func() error {
		var err error
		display, err = s.permits.Classified(gctx, propertyID, permitservice.Filters{ShowCompleted: true})
		return err
	})
	g.Go(func() error {
		var err error
		rollup, err = s.taxes.RollupByProperty(gctx, propertyID)
		return err
	})
	g.Go(func() error {
		var err error
		orders, err = s.workorders.ListByProperty(gctx, propertyID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d := Digest{
		Address:         prop.Address,
		Borough:         prop.Borough,
		Units:           prop.Units,
		OpenViolations:  search.OpenCount,
		TotalViolations: search.TotalCount,
		ActivePermits:   display.ActiveCount,
		TotalPermits:    display.TotalCount,
		TaxOutstanding:  rollup.TotalOutstanding,
		TaxOverdueCount: rollup.OverdueCount,
	}
	for _, v := range search.Violations {
		if !v.IsOpen() {
			continue
		}
		d.ViolationSample = append(d.ViolationSample,
			v.Agency+" "+v.ViolationNumber+" ("+string(v.Status)+"): "+v.Description)
	}
	for _, row := range display.Rows {
		if !row.Active {
			continue
		}
		d.PermitSample = append(d.PermitSample,
			row.ApplicationNumber+" ("+row.DecodedStatus+")")
	}
	for _, o := range orders {
		if !o.Status.IsTerminal() {
			d.OpenWorkOrders++
		}
	}
	return &d, nil
}

func cacheKey(propertyID uuid.UUID) string {
	return "summary:" + propertyID.String()
}
