package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	dErrors "parapet/pkg/domain-errors"
)

// Property mirrors the properties table. BIN, block, and lot are the city's
// identifiers; they are stored verbatim and never validated against the
// address (address lookup is an external collaborator).
type Property struct {
	ID          uuid.UUID  `json:"id"`
	Address     string     `json:"address"`
	Borough     string     `json:"borough"`
	Block       string     `json:"block,omitempty"`
	Lot         string     `json:"lot,omitempty"`
	BIN         string     `json:"bin,omitempty"`
	Units       int        `json:"units,omitempty"`
	PortfolioID *uuid.UUID `json:"portfolio_id,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

var boroughs = map[string]bool{
	"manhattan":     true,
	"brooklyn":      true,
	"queens":        true,
	"bronx":         true,
	"staten island": true,
}

// Validate enforces presence checks before a write.
func (p *Property) Validate() error {
	if strings.TrimSpace(p.Address) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "address is required")
	}
	if !boroughs[strings.ToLower(strings.TrimSpace(p.Borough))] {
		return dErrors.New(dErrors.CodeBadRequest, "unknown borough: "+p.Borough)
	}
	if p.Units < 0 {
		return dErrors.New(dErrors.CodeBadRequest, "units must not be negative")
	}
	return nil
}
