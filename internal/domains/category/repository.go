package category

import (
	"context"

	"blog-backend/internal/domains/post"
)

// Repository is the data access contract for categories.
type Repository interface {
	Create(ctx context.Context, c *Category) (*Category, error)
	List(ctx context.Context) ([]Category, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)
	// PostsBySlug returns the published posts assigned to the category,
	// newest first.
	PostsBySlug(ctx context.Context, slug string) ([]post.Post, error)
}
