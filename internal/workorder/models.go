// Package workorder tracks remediation work against properties, usually
// opened off the back of a violation, and enforces its status lifecycle.
package workorder

import (
	"strings"
	"time"

	"github.com/google/uuid"

	dErrors "parapet/pkg/domain-errors"
)

// Status is the work order lifecycle state.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
	StatusCancelled  Status = "cancelled"
)

// validTransitions encodes the lifecycle: open -> in_progress -> done,
// with cancellation allowed from any non-terminal state.
var validTransitions = map[Status][]Status{
	StatusOpen:       {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusDone, StatusCancelled},
}

// CanTransitionTo reports whether the lifecycle allows moving to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

var validStatuses = map[Status]bool{
	StatusOpen:       true,
	StatusInProgress: true,
	StatusDone:       true,
	StatusCancelled:  true,
}

// WorkOrder mirrors the work_orders table.
type WorkOrder struct {
	ID          uuid.UUID  `json:"id"`
	PropertyID  uuid.UUID  `json:"property_id"`
	ViolationID *uuid.UUID `json:"violation_id,omitempty"`
	VendorID    *uuid.UUID `json:"vendor_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      Status     `json:"status"`
	Cost        int64      `json:"cost_cents,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (w *WorkOrder) Validate() error {
	if w.PropertyID == uuid.Nil {
		return dErrors.New(dErrors.CodeBadRequest, "property_id is required")
	}
	if strings.TrimSpace(w.Title) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "title is required")
	}
	if w.Status == "" {
		w.Status = StatusOpen
	}
	if !validStatuses[w.Status] {
		return dErrors.New(dErrors.CodeBadRequest, "unknown status: "+string(w.Status))
	}
	return nil
}

// CanTransition checks if the work order may move to target.
// Returns nil if the transition is valid, or an error if not allowed.
func (w *WorkOrder) CanTransition(target Status) error {
	if !validStatuses[target] {
		return dErrors.New(dErrors.CodeBadRequest, "unknown status: "+string(target))
	}
	if !w.Status.CanTransitionTo(target) {
		return dErrors.New(dErrors.CodeInvariantViolation,
			"cannot transition from "+string(w.Status)+" to "+string(target))
	}
	return nil
}

// ApplyTransition moves the work order to target.
// Must only be called after CanTransition returns nil.
func (w *WorkOrder) ApplyTransition(target Status, now time.Time) {
	w.Status = target
	w.UpdatedAt = now
	if target == StatusDone {
		w.CompletedAt = &now
	}
}
