package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"blog-backend/internal/domains/post"
	"blog-backend/internal/infrastructure/queue"
	"blog-backend/internal/shared"
	"blog-backend/internal/shared/utils"
	"blog-backend/pkg/logger"
)

// maxSlugProbes caps the uniqueness retry loop so a pathological store
// state fails with a distinct error instead of spinning.
const maxSlugProbes = 100

// postService implements post.Service.
type postService struct {
	repo     post.Repository
	enqueuer queue.Enqueuer
	visible  *ListCache
}

// NewPostService creates the post service with its own visible-list cache.
func NewPostService(repo post.Repository, enqueuer queue.Enqueuer) post.Service {
	return &postService{
		repo:     repo,
		enqueuer: enqueuer,
		visible:  &ListCache{},
	}
}

// ════════════════════════════════════════════════════════════════
// READS
// ════════════════════════════════════════════════════════════════

func (s *postService) ListVisible(ctx context.Context) ([]post.Post, error) {
	if cached, ok := s.visible.Snapshot(); ok {
		return cached, nil
	}
	return s.Refetch(ctx)
}

func (s *postService) Refetch(ctx context.Context) ([]post.Post, error) {
	fetched, err := s.repo.ListVisible(ctx)
	if err != nil {
		return nil, err
	}

	// The repository already filters server-side; re-check here so a stale
	// or placeholder slug can never leak into the public list.
	valid := make([]post.Post, 0, len(fetched))
	for _, p := range fetched {
		if p.IsVisible() {
			valid = append(valid, p)
		}
	}

	s.visible.Store(valid)
	return valid, nil
}

func (s *postService) GetBySlug(ctx context.Context, slug string) (*post.Post, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		return nil, post.ErrPostNotFound
	}

	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	// A draft's slug resolves for nobody on the public path; authors reach
	// their own drafts through ListByAuthor.
	if !p.IsVisible() {
		return nil, post.ErrPostNotFound
	}
	return p, nil
}

func (s *postService) GetByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *postService) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]post.Post, error) {
	return s.repo.ListByAuthor(ctx, authorID)
}

// ListVisibleByAuthor serves the public author page: published posts only,
// no drafts.
func (s *postService) ListVisibleByAuthor(ctx context.Context, authorID uuid.UUID) ([]post.Post, error) {
	all, err := s.repo.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}

	visible := make([]post.Post, 0, len(all))
	for _, p := range all {
		if p.IsVisible() {
			visible = append(visible, p)
		}
	}
	return visible, nil
}

// ════════════════════════════════════════════════════════════════
// SLUG ASSIGNMENT
// ════════════════════════════════════════════════════════════════

// assignSlug derives the base slug (from the hand-edited value when the
// author overrode it, otherwise from the title) and probes the store until
// a free candidate is found: base, base-1, base-2, ...
//
// The probe excludes the post's own id on edit. There is no transactional
// guarantee with the store, so two concurrent sessions deriving the same
// base can both observe "free" and both write; that race is inherited from
// the probing design.
func (s *postService) assignSlug(ctx context.Context, title, handEdited string, excludeID uuid.UUID) (string, error) {
	var base string
	if strings.TrimSpace(handEdited) != "" {
		base = utils.SanitizeSlug(handEdited)
	} else {
		base = utils.Slugify(title)
	}
	if base == "" {
		return "", post.ErrEmptySlug
	}

	candidate := base
	for i := 0; i < maxSlugProbes; i++ {
		count, err := s.repo.CountBySlug(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i+1)
	}

	return "", post.ErrSlugProbeExhausted
}

// ════════════════════════════════════════════════════════════════
// MUTATIONS
// ════════════════════════════════════════════════════════════════

func (s *postService) Create(ctx context.Context, authorID uuid.UUID, req *post.CreatePostRequest) (*post.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, post.ErrTitleRequired
	}
	if authorID == uuid.Nil {
		return nil, post.ErrAuthorRequired
	}

	slug, err := s.assignSlug(ctx, req.Title, req.Slug, uuid.Nil)
	if err != nil {
		return nil, err
	}

	p := &post.Post{
		Title:       strings.TrimSpace(req.Title),
		Slug:        slug,
		Excerpt:     req.Excerpt,
		Content:     req.Content,
		CoverImage:  req.CoverImage,
		AuthorID:    authorID,
		ReadingTime: req.ReadingTime,
		Tags:        utils.TrimTags(req.Tags),
		Featured:    req.Featured,
		Status:      post.StatusDraft,
	}
	if req.Publish {
		now := time.Now()
		p.PublishedAt = &now
		p.Status = post.StatusPublished
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}

	if created.IsVisible() {
		s.visible.Prepend(*created)
	}
	return created, nil
}

func (s *postService) Update(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *post.UpdatePostRequest) (*post.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.AuthorID != actorID {
		return nil, post.ErrNotOwner
	}

	titleChanged := req.Title != nil && strings.TrimSpace(*req.Title) != existing.Title
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, post.ErrTitleRequired
		}
		existing.Title = strings.TrimSpace(*req.Title)
	}

	// Slug stability: a hand-edited slug is sanitized and probed as sent;
	// otherwise the slug regenerates only when the title actually changed,
	// so customized permalinks survive unrelated edits.
	switch {
	case req.Slug != nil && strings.TrimSpace(*req.Slug) != "":
		slug, err := s.assignSlug(ctx, existing.Title, *req.Slug, id)
		if err != nil {
			return nil, err
		}
		existing.Slug = slug
	case titleChanged:
		slug, err := s.assignSlug(ctx, existing.Title, "", id)
		if err != nil {
			return nil, err
		}
		existing.Slug = slug
	}

	if req.Excerpt != nil {
		existing.Excerpt = *req.Excerpt
	}
	if req.Content != nil {
		existing.Content = *req.Content
	}
	if req.CoverImage != nil {
		existing.CoverImage = *req.CoverImage
	}
	if req.ReadingTime != nil {
		existing.ReadingTime = *req.ReadingTime
	}
	if req.Tags != nil {
		existing.Tags = utils.TrimTags(*req.Tags)
	}
	if req.Featured != nil {
		existing.Featured = *req.Featured
	}
	if req.Publish != nil {
		if *req.Publish {
			if existing.PublishedAt == nil {
				now := time.Now()
				existing.PublishedAt = &now
			}
			existing.Status = post.StatusPublished
		} else {
			existing.PublishedAt = nil
			existing.Status = post.StatusDraft
		}
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	// Publish toggles move the post into or out of the visible list.
	s.visible.ApplyUpdate(*updated)
	return updated, nil
}

func (s *postService) Delete(ctx context.Context, actorID uuid.UUID, id uuid.UUID, admin bool) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !admin && existing.AuthorID != actorID {
		return post.ErrNotOwner
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.visible.Remove(id)
	return nil
}

// ════════════════════════════════════════════════════════════════
// SEARCH
// ════════════════════════════════════════════════════════════════

func (s *postService) Search(ctx context.Context, query string) ([]post.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return []post.SearchResult{}, nil
	}

	results, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	valid := make([]post.SearchResult, 0, len(results))
	for _, r := range results {
		if r.HasValidSlug() {
			valid = append(valid, r)
		}
	}
	return valid, nil
}

// ════════════════════════════════════════════════════════════════
// VIEW COUNTS
// ════════════════════════════════════════════════════════════════

// RecordView is best-effort: enqueue failures are logged and dropped, never
// surfaced to the reader.
func (s *postService) RecordView(ctx context.Context, postID uuid.UUID, viewerIP, userAgent *string) {
	if postID == uuid.Nil {
		return
	}

	err := s.enqueuer.EnqueueRecordPostView(ctx, shared.RecordPostViewPayload{
		PostID:    postID,
		ViewerIP:  viewerIP,
		UserAgent: userAgent,
	})
	if err != nil {
		logger.Error("Failed to enqueue view-count increment", err)
		return
	}

	s.visible.IncrementView(postID)
}

func (s *postService) EvictAuthorPosts(authorID uuid.UUID) {
	s.visible.RemoveByAuthor(authorID)
}

// ════════════════════════════════════════════════════════════════
// READING PROGRESS / STATS / EXPORT
// ════════════════════════════════════════════════════════════════

func (s *postService) UpdateReadingProgress(ctx context.Context, userID, postID uuid.UUID, percentage int) error {
	return s.repo.UpsertReadingProgress(ctx, &post.ReadingProgress{
		PostID:             postID,
		UserID:             userID,
		ProgressPercentage: percentage,
	})
}

func (s *postService) Statistics(ctx context.Context) ([]post.Statistics, error) {
	return s.repo.Statistics(ctx)
}

func (s *postService) ExportToExcel(ctx context.Context) (*excelize.File, error) {
	stats, err := s.repo.Statistics(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Posts"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headers := []string{"ID", "Title", "Slug", "Status", "Published At", "View Count", "Total Views", "Author"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for rowIdx, stat := range stats {
		publishedAt := ""
		if stat.PublishedAt != nil {
			publishedAt = stat.PublishedAt.Format(time.RFC3339)
		}
		values := []interface{}{
			stat.ID.String(), stat.Title, stat.Slug, stat.Status,
			publishedAt, stat.ViewCount, stat.TotalViews, stat.AuthorName,
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("write row: %w", err)
			}
		}
	}

	return f, nil
}
