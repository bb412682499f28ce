package author

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the data access contract for author profiles.
type Repository interface {
	Create(ctx context.Context, a *Author) (*Author, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Author, error)
	List(ctx context.Context) ([]Author, error)
	Update(ctx context.Context, a *Author) (*Author, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Statistics(ctx context.Context) ([]Statistics, error)
}
