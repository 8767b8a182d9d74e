package store

import (
	"context"

	"github.com/google/uuid"

	"parapet/internal/permit/models"
)

// Store persists permit applications. Implementations return sentinel errors
// (pkg/platform/sentinel) for infrastructure facts; services translate them.
type Store interface {
	Create(ctx context.Context, app *models.Application) error
	Get(ctx context.Context, id uuid.UUID) (*models.Application, error)
	Update(ctx context.Context, app *models.Application) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*models.Application, error)
}
