//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"parapet/internal/permit/classify"
	"parapet/internal/permit/models"
	"parapet/internal/permit/store"
	"parapet/pkg/platform/sentinel"
	"parapet/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres   *containers.PostgresContainer
	store      *store.PostgresStore
	propertyID uuid.UUID
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.postgres.TruncateTables(ctx, "applications", "properties"))

	s.propertyID = uuid.New()
	now := time.Now().UTC()
	_, err := s.postgres.DB.ExecContext(ctx, `
		INSERT INTO properties (id, address, borough, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		s.propertyID, "1 Test St", "Brooklyn", now, now)
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) newApplication(number string) *models.Application {
	now := time.Now().UTC().Truncate(time.Microsecond)
	filed := now.AddDate(0, -1, 0)
	return &models.Application{
		ID:                uuid.New(),
		PropertyID:        s.propertyID,
		ApplicationNumber: number,
		Source:            classify.SourceLegacyLedger,
		RawStatus:         "Q",
		Agency:            "DOB",
		FilingDate:        &filed,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func (s *PostgresStoreSuite) TestCreateAndGet() {
	ctx := context.Background()
	app := s.newApplication("B00020213-I1-EL")
	s.Require().NoError(s.store.Create(ctx, app))

	got, err := s.store.Get(ctx, app.ID)
	s.Require().NoError(err)
	s.Equal(app.ApplicationNumber, got.ApplicationNumber)
	s.Equal(classify.SourceLegacyLedger, got.Source)
	s.Require().NotNil(got.FilingDate)
	s.True(app.FilingDate.Equal(*got.FilingDate))
}

func (s *PostgresStoreSuite) TestGetMissing() {
	_, err := s.store.Get(context.Background(), uuid.New())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestUpdate() {
	ctx := context.Background()
	app := s.newApplication("B00020213-I1-EL")
	s.Require().NoError(s.store.Create(ctx, app))

	app.RawStatus = "X"
	app.UpdatedAt = time.Now().UTC()
	s.Require().NoError(s.store.Update(ctx, app))

	got, err := s.store.Get(ctx, app.ID)
	s.Require().NoError(err)
	s.Equal("X", got.RawStatus)

	s.Run("missing row not found", func() {
		missing := s.newApplication("B99999999")
		s.ErrorIs(s.store.Update(ctx, missing), sentinel.ErrNotFound)
	})
}

func (s *PostgresStoreSuite) TestDelete() {
	ctx := context.Background()
	app := s.newApplication("B00020213-I1-EL")
	s.Require().NoError(s.store.Create(ctx, app))

	s.Require().NoError(s.store.Delete(ctx, app.ID))
	s.ErrorIs(s.store.Delete(ctx, app.ID), sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestListByPropertyOrder() {
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Microsecond)
	for i, number := range []string{"B1", "B2", "B3"} {
		app := s.newApplication(number)
		app.CreatedAt = base.Add(time.Duration(i) * time.Second)
		app.UpdatedAt = app.CreatedAt
		s.Require().NoError(s.store.Create(ctx, app))
	}

	apps, err := s.store.ListByProperty(ctx, s.propertyID)
	s.Require().NoError(err)
	s.Require().Len(apps, 3)
	// Insertion order by created_at, so classification input is stable.
	s.Equal("B1", apps[0].ApplicationNumber)
	s.Equal("B3", apps[2].ApplicationNumber)

	s.Run("other property is empty", func() {
		apps, err := s.store.ListByProperty(ctx, uuid.New())
		s.Require().NoError(err)
		s.Empty(apps)
	})
}
