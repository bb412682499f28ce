package author

import (
	"context"

	"github.com/google/uuid"
)

// Service is the business logic contract for author profiles.
type Service interface {
	List(ctx context.Context) ([]Author, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Author, error)
	// Update is restricted to the owning identity.
	Update(ctx context.Context, actorID, id uuid.UUID, req *UpdateAuthorRequest) (*Author, error)
	// DeleteCascade removes the author's posts first, then the author row.
	// The two steps are not atomic; a failure in between leaves orphaned
	// posts. Superuser only.
	DeleteCascade(ctx context.Context, id uuid.UUID) error
	Statistics(ctx context.Context) ([]Statistics, error)
}
