package category

import (
	"context"

	"blog-backend/internal/domains/post"
)

// Service is the business logic contract for categories.
type Service interface {
	List(ctx context.Context) ([]Category, error)
	Create(ctx context.Context, req *CreateCategoryRequest) (*Category, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)
	PostsBySlug(ctx context.Context, slug string) ([]post.Post, error)
}
