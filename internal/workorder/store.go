package workorder

import (
	"context"

	"github.com/google/uuid"
)

// Store persists work orders. Implementations return sentinel errors for
// infrastructure facts.
type Store interface {
	Create(ctx context.Context, w *WorkOrder) error
	Get(ctx context.Context, id uuid.UUID) (*WorkOrder, error)
	Update(ctx context.Context, w *WorkOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*WorkOrder, error)
}
