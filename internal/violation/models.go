// Package violation tracks agency violations issued against properties and
// provides the filtered, deduplicated list view the dashboard renders.
package violation

import (
	"strings"
	"time"

	"github.com/google/uuid"

	dErrors "parapet/pkg/domain-errors"
)

// Status is the lifecycle of a violation record.
type Status string

const (
	StatusOpen      Status = "open"
	StatusCertified Status = "certified"
	StatusDismissed Status = "dismissed"
	StatusResolved  Status = "resolved"
)

// Violation mirrors the violations table. Class semantics are agency-specific
// (HPD classes A/B/C, ECB severity tiers) and stored verbatim.
type Violation struct {
	ID              uuid.UUID  `json:"id"`
	PropertyID      uuid.UUID  `json:"property_id"`
	ViolationNumber string     `json:"violation_number"`
	Agency          string     `json:"agency"`
	Class           string     `json:"class,omitempty"`
	Status          Status     `json:"status"`
	Description     string     `json:"description,omitempty"`
	IssuedDate      *time.Time `json:"issued_date,omitempty"`
	InspectionDate  *time.Time `json:"inspection_date,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

var validStatuses = map[Status]bool{
	StatusOpen:      true,
	StatusCertified: true,
	StatusDismissed: true,
	StatusResolved:  true,
}

// IsOpen reports whether the violation still needs attention.
func (v *Violation) IsOpen() bool {
	return v.Status == StatusOpen || v.Status == StatusCertified
}

func (v *Violation) Validate() error {
	if v.PropertyID == uuid.Nil {
		return dErrors.New(dErrors.CodeBadRequest, "property_id is required")
	}
	if strings.TrimSpace(v.ViolationNumber) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "violation_number is required")
	}
	if strings.TrimSpace(v.Agency) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "agency is required")
	}
	if !validStatuses[v.Status] {
		return dErrors.New(dErrors.CodeBadRequest, "unknown status: "+string(v.Status))
	}
	return nil
}
