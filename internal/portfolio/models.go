// Package portfolio groups properties under a named owner or management
// entity.
package portfolio

import (
	"strings"
	"time"

	"github.com/google/uuid"

	dErrors "parapet/pkg/domain-errors"
)

// Portfolio mirrors the portfolios table.
type Portfolio struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *Portfolio) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "name is required")
	}
	return nil
}
