package violation

import (
	"context"

	"github.com/google/uuid"
)

// Store persists violations. Implementations return sentinel errors for
// infrastructure facts.
type Store interface {
	Create(ctx context.Context, v *Violation) error
	Get(ctx context.Context, id uuid.UUID) (*Violation, error)
	Update(ctx context.Context, v *Violation) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*Violation, error)
}
