package user

import (
	"context"

	"github.com/google/uuid"
)

// Service is the business logic contract for identity operations.
type Service interface {
	// Register creates the user and its 1:1 author profile in the same call.
	Register(ctx context.Context, req RegisterRequest) (*LoginResponse, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Refresh(ctx context.Context, req RefreshTokenRequest) (*LoginResponse, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*UserDTO, error)
}
