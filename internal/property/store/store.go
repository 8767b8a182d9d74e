package store

import (
	"context"

	"github.com/google/uuid"

	"parapet/internal/property/models"
)

// Store persists properties. Implementations return sentinel errors for
// infrastructure facts; services translate them into domain errors.
type Store interface {
	Create(ctx context.Context, p *models.Property) error
	Get(ctx context.Context, id uuid.UUID) (*models.Property, error)
	Update(ctx context.Context, p *models.Property) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns all properties, or only those in the given portfolio when
	// portfolioID is non-nil.
	List(ctx context.Context, portfolioID *uuid.UUID) ([]*models.Property, error)
}
