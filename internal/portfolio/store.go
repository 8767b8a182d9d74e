package portfolio

import (
	"context"

	"github.com/google/uuid"
)

// Store persists portfolios.
type Store interface {
	Create(ctx context.Context, p *Portfolio) error
	Get(ctx context.Context, id uuid.UUID) (*Portfolio, error)
	Update(ctx context.Context, p *Portfolio) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*Portfolio, error)
}
