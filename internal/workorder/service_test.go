package workorder

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"parapet/internal/audit"
	dErrors "parapet/pkg/domain-errors"
)

type WorkOrderServiceSuite struct {
	suite.Suite
	auditStore *audit.InMemoryStore
	service    *Service
	propertyID uuid.UUID
}

func TestWorkOrderServiceSuite(t *testing.T) {
	suite.Run(t, new(WorkOrderServiceSuite))
}

func (s *WorkOrderServiceSuite) SetupTest() {
	s.auditStore = audit.NewInMemoryStore()
	s.service = NewService(NewInMemoryStore(), audit.NewPublisher(s.auditStore), nil)
	s.propertyID = uuid.New()
}

func (s *WorkOrderServiceSuite) seed(title string) *WorkOrder {
	w, err := s.service.Create(context.Background(), &WorkOrder{
		PropertyID: s.propertyID,
		Title:      title,
	})
	s.Require().NoError(err)
	return w
}

func (s *WorkOrderServiceSuite) TestCreate() {
	s.Run("defaults to open", func() {
		w := s.seed("repair boiler")
		s.Equal(StatusOpen, w.Status)
		s.NotEqual(uuid.Nil, w.ID)
	})

	s.Run("rejects missing title", func() {
		_, err := s.service.Create(context.Background(), &WorkOrder{PropertyID: s.propertyID})
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	s.Run("rejects unknown status", func() {
		_, err := s.service.Create(context.Background(), &WorkOrder{
			PropertyID: s.propertyID, Title: "x", Status: "paused",
		})
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func (s *WorkOrderServiceSuite) TestTransition() {
	s.Run("open to in_progress to done", func() {
		w := s.seed("replace smoke detectors")

		w, err := s.service.Transition(context.Background(), w.ID, StatusInProgress)
		s.Require().NoError(err)
		s.Equal(StatusInProgress, w.Status)

		w, err = s.service.Transition(context.Background(), w.ID, StatusDone)
		s.Require().NoError(err)
		s.Equal(StatusDone, w.Status)
		s.NotNil(w.CompletedAt)
	})

	s.Run("cancel from open", func() {
		w := s.seed("inspect facade")
		w, err := s.service.Transition(context.Background(), w.ID, StatusCancelled)
		s.Require().NoError(err)
		s.Equal(StatusCancelled, w.Status)
		s.Nil(w.CompletedAt)
	})

	s.Run("rejects skipping in_progress", func() {
		w := s.seed("repoint brick")
		_, err := s.service.Transition(context.Background(), w.ID, StatusDone)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("rejects moves out of a terminal state", func() {
		w := s.seed("clear sidewalk shed")
		_, err := s.service.Transition(context.Background(), w.ID, StatusCancelled)
		s.Require().NoError(err)

		_, err = s.service.Transition(context.Background(), w.ID, StatusInProgress)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("records an audit trail entry", func() {
		w := s.seed("swap water heater")
		_, err := s.service.Transition(context.Background(), w.ID, StatusInProgress)
		s.Require().NoError(err)

		events, err := s.auditStore.List(context.Background(), "work_order", 0)
		s.Require().NoError(err)

		var found bool
		for _, e := range events {
			if e.EntityID == w.ID.String() && e.Action == audit.ActionTransition {
				found = true
				s.Equal("open -> in_progress", e.Detail)
			}
		}
		s.True(found, "expected a status_transition audit event")
	})
}

func (s *WorkOrderServiceSuite) TestUpdateKeepsStatus() {
	w := s.seed("patch roof")
	_, err := s.service.Transition(context.Background(), w.ID, StatusInProgress)
	s.Require().NoError(err)

	w.Title = "patch roof membrane"
	w.Status = StatusOpen // client-supplied status must not bypass the lifecycle
	updated, err := s.service.Update(context.Background(), w)
	s.Require().NoError(err)
	s.Equal(StatusInProgress, updated.Status)
	s.Equal("patch roof membrane", updated.Title)
}

func (s *WorkOrderServiceSuite) TestGetMissing() {
	_, err := s.service.Get(context.Background(), uuid.New())
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}
