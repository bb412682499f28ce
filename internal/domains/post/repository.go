package post

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository is the gateway contract for the posts record set plus the two
// remote procedures the hosted store exposes.
type Repository interface {
	Create(ctx context.Context, p *Post) (*Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Post, error)
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	// ListVisible returns published posts with a real slug, newest first.
	// The visibility filter is applied server-side here and re-checked
	// client-side by the service (belt and suspenders).
	ListVisible(ctx context.Context) ([]Post, error)
	// ListByAuthor includes the author's drafts.
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]Post, error)
	Update(ctx context.Context, p *Post) (*Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteByAuthor removes every post owned by authorID and reports how
	// many rows went away. Used by the cascading author delete.
	DeleteByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error)

	// CountBySlug probes slug uniqueness, excluding excludeID when editing
	// (pass uuid.Nil on create).
	CountBySlug(ctx context.Context, slug string, excludeID uuid.UUID) (int, error)

	// Search invokes the search_posts function.
	Search(ctx context.Context, query string) ([]SearchResult, error)
	// IncrementViewCount invokes the increment_post_view_count function.
	IncrementViewCount(ctx context.Context, postID uuid.UUID, viewerIP, userAgent *string) error
	// PurgeViews deletes raw view rows older than cutoff.
	PurgeViews(ctx context.Context, cutoff time.Time) (int64, error)

	UpsertReadingProgress(ctx context.Context, progress *ReadingProgress) error
	Statistics(ctx context.Context) ([]Statistics, error)
}
