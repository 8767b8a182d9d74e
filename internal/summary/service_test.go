package summary

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"parapet/internal/audit"
	permitservice "parapet/internal/permit/service"
	propertymodels "parapet/internal/property/models"
	"parapet/internal/tax"
	"parapet/internal/violation"
	"parapet/internal/workorder"
	dErrors "parapet/pkg/domain-errors"
)

type stubProvider struct {
	response  string
	lastReq   SummarizeRequest
	calls     int
	available bool
	err       error
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Summarize(_ context.Context, req SummarizeRequest) (*SummarizeResponse, error) {
	p.calls++
	p.lastReq = req
	if p.err != nil {
		return nil, p.err
	}
	return &SummarizeResponse{Summary: p.response, Model: "stub-1"}, nil
}

func (p *stubProvider) IsAvailable(context.Context) bool { return p.available }

type fakeCache struct {
	entries map[string]string
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]string)}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := c.entries[key]
	return v, ok, nil
}

func (c *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.sets++
	c.entries[key] = value
	return nil
}

type fixtures struct {
	property *propertymodels.Property
	search   violation.SearchResult
	display  permitservice.DisplayResult
	rollup   tax.Rollup
	orders   []*workorder.WorkOrder
}

func (f *fixtures) Get(_ context.Context, _ uuid.UUID) (*propertymodels.Property, error) {
	if f.property == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "property not found")
	}
	return f.property, nil
}

func (f *fixtures) SearchByProperty(_ context.Context, _ uuid.UUID, _ violation.Query) (*violation.SearchResult, error) {
	return &f.search, nil
}

func (f *fixtures) Classified(_ context.Context, _ uuid.UUID, _ permitservice.Filters) (*permitservice.DisplayResult, error) {
	return &f.display, nil
}

func (f *fixtures) RollupByProperty(_ context.Context, _ uuid.UUID) (*tax.Rollup, error) {
	return &f.rollup, nil
}

func (f *fixtures) ListByProperty(_ context.Context, _ uuid.UUID) ([]*workorder.WorkOrder, error) {
	return f.orders, nil
}

type SummaryServiceSuite struct {
	suite.Suite
	provider   *stubProvider
	cache      *fakeCache
	fixtures   *fixtures
	service    *Service
	propertyID uuid.UUID
}

func TestSummaryServiceSuite(t *testing.T) {
	suite.Run(t, new(SummaryServiceSuite))
}

func (s *SummaryServiceSuite) SetupTest() {
	s.provider = &stubProvider{response: "All clear.", available: true}
	s.cache = newFakeCache()
	s.propertyID = uuid.New()
	s.fixtures = &fixtures{
		property: &propertymodels.Property{
			ID:      s.propertyID,
			Address: "123 Mott St",
			Borough: "Manhattan",
			Units:   8,
		},
		search:  violation.SearchResult{OpenCount: 2, TotalCount: 5},
		display: permitservice.DisplayResult{ActiveCount: 1, TotalCount: 3},
		rollup:  tax.Rollup{TotalOutstanding: 125000, OverdueCount: 1},
		orders: []*workorder.WorkOrder{
			{Status: workorder.StatusOpen},
			{Status: workorder.StatusDone},
		},
	}
	s.service = NewService(
		s.provider, s.cache, time.Minute,
		s.fixtures, s.fixtures, s.fixtures, s.fixtures, s.fixtures,
		audit.NewPublisher(audit.NewInMemoryStore()), nil,
	)
}

func (s *SummaryServiceSuite) TestGenerate() {
	s.Run("builds digest from all sources", func() {
		res, err := s.service.Generate(context.Background(), s.propertyID)
		s.Require().NoError(err)
		s.Equal("All clear.", res.Summary)
		s.False(res.Cached)
		s.Equal("stub-1", res.Model)

		d := s.provider.lastReq.Digest
		s.Equal("123 Mott St", d.Address)
		s.Equal(2, d.OpenViolations)
		s.Equal(5, d.TotalViolations)
		s.Equal(1, d.ActivePermits)
		s.Equal(int64(125000), d.TaxOutstanding)
		s.Equal(1, d.OpenWorkOrders)
	})

	s.Run("second call hits the cache", func() {
		_, err := s.service.Generate(context.Background(), s.propertyID)
		s.Require().NoError(err)

		res, err := s.service.Generate(context.Background(), s.propertyID)
		s.Require().NoError(err)
		s.True(res.Cached)
		s.Equal(1, s.provider.calls)
	})
}

func (s *SummaryServiceSuite) TestGenerateMissingProperty() {
	s.fixtures.property = nil
	_, err := s.service.Generate(context.Background(), s.propertyID)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	s.Zero(s.provider.calls, "provider must not run without a property")
}

func (s *SummaryServiceSuite) TestGenerateProviderFailure() {
	s.provider.err = errors.New("rate limited")
	_, err := s.service.Generate(context.Background(), s.propertyID)
	s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	s.Zero(s.cache.sets, "failed generations must not be cached")
}

func (s *SummaryServiceSuite) TestBreakerFailsFastAfterRepeatedErrors() {
	s.provider.err = errors.New("rate limited")
	s.provider.available = false

	for i := 0; i < 5; i++ {
		_, err := s.service.Generate(context.Background(), s.propertyID)
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	}
	s.Equal(5, s.provider.calls)

	// Circuit is open and the provider is down: no further Summarize calls.
	_, err := s.service.Generate(context.Background(), s.propertyID)
	s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	s.Equal(5, s.provider.calls)

	// Provider recovers; the availability probe closes the circuit.
	s.provider.available = true
	s.provider.err = nil
	res, err := s.service.Generate(context.Background(), s.propertyID)
	s.Require().NoError(err)
	s.Equal("All clear.", res.Summary)
}

func (s *SummaryServiceSuite) TestGenerateWithoutProvider() {
	svc := NewService(
		nil, s.cache, time.Minute,
		s.fixtures, s.fixtures, s.fixtures, s.fixtures, s.fixtures,
		audit.NewPublisher(audit.NewInMemoryStore()), nil,
	)
	_, err := svc.Generate(context.Background(), s.propertyID)
	s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
}

func (s *SummaryServiceSuite) TestGenerateWithoutCache() {
	svc := NewService(
		s.provider, nil, time.Minute,
		s.fixtures, s.fixtures, s.fixtures, s.fixtures, s.fixtures,
		audit.NewPublisher(audit.NewInMemoryStore()), nil,
	)
	res, err := svc.Generate(context.Background(), s.propertyID)
	s.Require().NoError(err)
	s.False(res.Cached)
}
