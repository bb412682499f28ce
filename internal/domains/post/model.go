package post

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// PlaceholderSlug marks legacy rows that never got a real slug. Posts
// carrying it are treated as invisible everywhere.
const PlaceholderSlug = "untitled-post"

// Post statuses.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Post is a long-form article. Content uses a line-oriented markup
// convention (#/##/### headers, "- " list items, **bold** spans) and is
// stored verbatim. A nil PublishedAt means draft.
type Post struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Slug        string     `json:"slug" db:"slug"`
	Excerpt     string     `json:"excerpt" db:"excerpt"`
	Content     string     `json:"content" db:"content"`
	CoverImage  string     `json:"cover_image" db:"cover_image"`
	AuthorID    uuid.UUID  `json:"author_id" db:"author_id"`
	PublishedAt *time.Time `json:"published_at" db:"published_at"`
	ReadingTime int        `json:"reading_time" db:"reading_time"`
	Tags        []string   `json:"tags" db:"tags"`
	Featured    bool       `json:"featured" db:"featured"`
	ViewCount   int        `json:"view_count" db:"view_count"`
	Status      string     `json:"status" db:"status"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// IsVisible reports whether the post belongs in public listings: it must be
// published and carry a real, non-placeholder slug.
func (p *Post) IsVisible() bool {
	if p.PublishedAt == nil {
		return false
	}
	slug := strings.TrimSpace(p.Slug)
	return slug != "" && slug != PlaceholderSlug
}

// SearchResult is one row returned by the search_posts function, ranked by
// full-text relevance.
type SearchResult struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	CoverImage  string     `json:"cover_image"`
	AuthorID    uuid.UUID  `json:"author_id"`
	PublishedAt *time.Time `json:"published_at"`
	ReadingTime int        `json:"reading_time"`
	Tags        []string   `json:"tags"`
	Featured    bool       `json:"featured"`
	ViewCount   int        `json:"view_count"`
	Rank        float64    `json:"rank"`
}

// HasValidSlug mirrors the visibility slug check for search projections.
func (r *SearchResult) HasValidSlug() bool {
	slug := strings.TrimSpace(r.Slug)
	return slug != "" && slug != PlaceholderSlug
}

// Statistics is the post_statistics view projection.
type Statistics struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Slug           string     `json:"slug"`
	ViewCount      int        `json:"view_count"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
	Status         string     `json:"status"`
	AuthorName     string     `json:"author_name"`
	TotalViews     int64      `json:"total_views"`
	UniqueViewDays int        `json:"unique_view_days"`
}

// ReadingProgress tracks how far a reader got through a post.
type ReadingProgress struct {
	ID                 uuid.UUID `json:"id" db:"id"`
	PostID             uuid.UUID `json:"post_id" db:"post_id"`
	UserID             uuid.UUID `json:"user_id" db:"user_id"`
	ProgressPercentage int       `json:"progress_percentage" db:"progress_percentage"`
	LastReadAt         time.Time `json:"last_read_at" db:"last_read_at"`
}
