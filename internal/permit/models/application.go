package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"parapet/internal/permit/classify"
	dErrors "parapet/pkg/domain-errors"
)

// Application mirrors the applications table. RawStatus and Source are only
// meaningful together; decoding happens on read through the classify package,
// never at rest.
//
// Invariants:
//   - PropertyID, ApplicationNumber, and Source are required
//   - Source is one of the known filing tracks
//   - Descriptive fields are opaque passengers: the classifier never reads them
type Application struct {
	ID                uuid.UUID       `json:"id"`
	PropertyID        uuid.UUID       `json:"property_id"`
	ApplicationNumber string          `json:"application_number"`
	Source            classify.Source `json:"source"`
	RawStatus         string          `json:"raw_status"`
	Agency            string          `json:"agency,omitempty"`
	WorkType          string          `json:"work_type,omitempty"`
	Description       string          `json:"description,omitempty"`
	Applicant         string          `json:"applicant,omitempty"`
	EstimatedCost     int64           `json:"estimated_cost_cents,omitempty"`
	FilingDate        *time.Time      `json:"filing_date,omitempty"`
	ApprovalDate      *time.Time      `json:"approval_date,omitempty"`
	ExpirationDate    *time.Time      `json:"expiration_date,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// Validate enforces presence and enum checks before a write.
func (a *Application) Validate() error {
	if a.PropertyID == uuid.Nil {
		return dErrors.New(dErrors.CodeBadRequest, "property_id is required")
	}
	if strings.TrimSpace(a.ApplicationNumber) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "application_number is required")
	}
	switch a.Source {
	case classify.SourceLegacyLedger, classify.SourceModernFiling:
	default:
		return dErrors.New(dErrors.CodeBadRequest, "unknown source: "+string(a.Source))
	}
	return nil
}

// ClassifyRecord projects the application onto the classifier's input shape.
func (a *Application) ClassifyRecord() classify.Record {
	return classify.Record{
		ID:         a.ID.String(),
		Number:     a.ApplicationNumber,
		Source:     a.Source,
		RawStatus:  a.RawStatus,
		FilingDate: a.FilingDate,
	}
}
