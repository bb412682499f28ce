package post

import (
	"context"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// Service is the business logic contract for posts. It owns the cached
// visible list: reads come from the cache once loaded, and every successful
// write patches it in place instead of re-fetching.
//
// Staleness contract: the list reflects the last successful write made
// through this instance. Writes from other instances or sessions become
// visible only after Refetch.
type Service interface {
	// ListVisible returns the cached visible list, loading it on first use.
	ListVisible(ctx context.Context) ([]Post, error)
	// Refetch discards the cached list and reloads it from the store.
	Refetch(ctx context.Context) ([]Post, error)

	// GetBySlug resolves a post for public reading; drafts and
	// placeholder-slug posts come back as not found.
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Post, error)
	// ListByAuthor includes drafts; callers must restrict it to the owner.
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]Post, error)
	// ListVisibleByAuthor is the public author-page projection.
	ListVisibleByAuthor(ctx context.Context, authorID uuid.UUID) ([]Post, error)

	Create(ctx context.Context, authorID uuid.UUID, req *CreatePostRequest) (*Post, error)
	Update(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *UpdatePostRequest) (*Post, error)
	// Delete enforces ownership unless admin is set.
	Delete(ctx context.Context, actorID uuid.UUID, id uuid.UUID, admin bool) error

	// Search runs full-text search. A blank query returns an empty list
	// without touching the store.
	Search(ctx context.Context, query string) ([]SearchResult, error)

	// RecordView enqueues a best-effort view-count increment and patches
	// the cached counter optimistically. Enqueue failures are logged and
	// swallowed.
	RecordView(ctx context.Context, postID uuid.UUID, viewerIP, userAgent *string)

	// EvictAuthorPosts drops an author's posts from the cached visible list
	// after a cascade delete.
	EvictAuthorPosts(authorID uuid.UUID)

	UpdateReadingProgress(ctx context.Context, userID, postID uuid.UUID, percentage int) error
	Statistics(ctx context.Context) ([]Statistics, error)
	// ExportToExcel renders every post (drafts included) into a workbook
	// for the admin panel.
	ExportToExcel(ctx context.Context) (*excelize.File, error)
}
