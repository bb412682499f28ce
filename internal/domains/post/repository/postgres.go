package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blog-backend/internal/domains/post"
	"blog-backend/pkg/cache"
)

// postgresRepository implements post.Repository. It is the only gateway to
// the posts record set and the two store-side procedures.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository creates a post repository instance.
func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) post.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const (
	postSlugCacheKeyPrefix = "post:slug:"
	cacheTTL               = 15 * time.Minute
)

const postColumns = `id, title, slug, excerpt, content, cover_image, author_id,
        published_at, reading_time, tags, featured, view_count, status, created_at, updated_at`

// Visibility filter shared by the public listing queries.
const visibleWhere = `published_at IS NOT NULL AND slug IS NOT NULL AND slug <> '' AND slug <> 'untitled-post'`

func (r *postgresRepository) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	query := `
        INSERT INTO posts (title, slug, excerpt, content, cover_image, author_id,
                           published_at, reading_time, tags, featured, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING ` + postColumns

	created, err := r.scanOne(r.pool.QueryRow(ctx, query,
		p.Title, p.Slug, p.Excerpt, p.Content, p.CoverImage, p.AuthorID,
		p.PublishedAt, p.ReadingTime, p.Tags, p.Featured, p.Status,
	))
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	p, err := r.scanOne(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, post.ErrPostNotFound
		}
		return nil, fmt.Errorf("get post by id: %w", err)
	}
	return p, nil
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*post.Post, error) {
	cacheKey := postSlugCacheKeyPrefix + slug

	var cached post.Post
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	query := `SELECT ` + postColumns + ` FROM posts WHERE slug = $1`

	p, err := r.scanOne(r.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, post.ErrPostNotFound
		}
		return nil, fmt.Errorf("get post by slug: %w", err)
	}

	_ = r.cache.Set(ctx, cacheKey, p, cacheTTL)
	return p, nil
}

func (r *postgresRepository) ListVisible(ctx context.Context) ([]post.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE ` + visibleWhere + `
        ORDER BY published_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list visible posts: %w", err)
	}
	defer rows.Close()

	return r.scanMany(rows)
}

func (r *postgresRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]post.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE author_id = $1
        ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("list posts by author: %w", err)
	}
	defer rows.Close()

	return r.scanMany(rows)
}

func (r *postgresRepository) Update(ctx context.Context, p *post.Post) (*post.Post, error) {
	// The incoming struct already carries the new slug, so the one being
	// replaced has to come from the store; without it the old slug's cache
	// entry would outlive the rename.
	var oldSlug *string
	err := r.pool.QueryRow(ctx, `SELECT slug FROM posts WHERE id = $1`, p.ID).Scan(&oldSlug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, post.ErrPostNotFound
		}
		return nil, fmt.Errorf("read current slug: %w", err)
	}

	query := `
        UPDATE posts
        SET title = $2, slug = $3, excerpt = $4, content = $5, cover_image = $6,
            published_at = $7, reading_time = $8, tags = $9, featured = $10,
            status = $11, updated_at = now()
        WHERE id = $1
        RETURNING ` + postColumns

	updated, err := r.scanOne(r.pool.QueryRow(ctx, query,
		p.ID, p.Title, p.Slug, p.Excerpt, p.Content, p.CoverImage,
		p.PublishedAt, p.ReadingTime, p.Tags, p.Featured, p.Status,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, post.ErrPostNotFound
		}
		return nil, fmt.Errorf("update post: %w", err)
	}

	prev := ""
	if oldSlug != nil {
		prev = *oldSlug
	}
	r.invalidateSlugCache(ctx, prev, updated.Slug)
	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	var slug string
	err := r.pool.QueryRow(ctx, `DELETE FROM posts WHERE id = $1 RETURNING slug`, id).Scan(&slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return post.ErrPostNotFound
		}
		return fmt.Errorf("delete post: %w", err)
	}

	_ = r.cache.Delete(ctx, postSlugCacheKeyPrefix+slug)
	return nil
}

func (r *postgresRepository) DeleteByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE author_id = $1`, authorID)
	if err != nil {
		return 0, fmt.Errorf("delete posts by author: %w", err)
	}

	_ = r.cache.DeletePattern(ctx, postSlugCacheKeyPrefix+"*")
	return tag.RowsAffected(), nil
}

// CountBySlug is the uniqueness probe behind slug assignment. There is no
// store-level unique constraint; concurrent creations of the same title can
// still race past this check.
func (r *postgresRepository) CountBySlug(ctx context.Context, slug string, excludeID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM posts WHERE slug = $1 AND id <> $2`,
		slug, excludeID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count posts by slug: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) Search(ctx context.Context, query string) ([]post.SearchResult, error) {
	rows, err := r.pool.Query(ctx, `SELECT * FROM search_posts($1)`, query)
	if err != nil {
		return nil, fmt.Errorf("search posts: %w", err)
	}
	defer rows.Close()

	var results []post.SearchResult
	for rows.Next() {
		var sr post.SearchResult
		if err := rows.Scan(
			&sr.ID, &sr.Title, &sr.Slug, &sr.Excerpt, &sr.CoverImage, &sr.AuthorID,
			&sr.PublishedAt, &sr.ReadingTime, &sr.Tags, &sr.Featured, &sr.ViewCount, &sr.Rank,
		); err != nil {
			return nil, fmt.Errorf("scan search result: %w", err)
		}
		results = append(results, sr)
	}
	return results, rows.Err()
}

func (r *postgresRepository) IncrementViewCount(ctx context.Context, postID uuid.UUID, viewerIP, userAgent *string) error {
	_, err := r.pool.Exec(ctx,
		`SELECT increment_post_view_count($1, $2, $3)`,
		postID, viewerIP, userAgent,
	)
	if err != nil {
		return fmt.Errorf("increment view count: %w", err)
	}

	_ = r.cache.DeletePattern(ctx, postSlugCacheKeyPrefix+"*")
	return nil
}

func (r *postgresRepository) PurgeViews(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM post_views WHERE viewed_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge post views: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *postgresRepository) UpsertReadingProgress(ctx context.Context, progress *post.ReadingProgress) error {
	query := `
        INSERT INTO reading_progress (post_id, user_id, progress_percentage, last_read_at)
        VALUES ($1, $2, $3, now())
        ON CONFLICT (post_id, user_id)
        DO UPDATE SET progress_percentage = EXCLUDED.progress_percentage,
                      last_read_at = EXCLUDED.last_read_at
    `

	_, err := r.pool.Exec(ctx, query,
		progress.PostID, progress.UserID, progress.ProgressPercentage,
	)
	if err != nil {
		return fmt.Errorf("upsert reading progress: %w", err)
	}
	return nil
}

func (r *postgresRepository) Statistics(ctx context.Context) ([]post.Statistics, error) {
	query := `
        SELECT id, title, slug, view_count, published_at, status, author_name,
               total_views, unique_view_days
        FROM post_statistics
        ORDER BY total_views DESC
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("post statistics: %w", err)
	}
	defer rows.Close()

	var stats []post.Statistics
	for rows.Next() {
		var s post.Statistics
		if err := rows.Scan(
			&s.ID, &s.Title, &s.Slug, &s.ViewCount, &s.PublishedAt, &s.Status,
			&s.AuthorName, &s.TotalViews, &s.UniqueViewDays,
		); err != nil {
			return nil, fmt.Errorf("scan post statistics: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *postgresRepository) scanOne(row pgx.Row) (*post.Post, error) {
	var p post.Post
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.CoverImage, &p.AuthorID,
		&p.PublishedAt, &p.ReadingTime, &p.Tags, &p.Featured, &p.ViewCount,
		&p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepository) scanMany(rows pgx.Rows) ([]post.Post, error) {
	posts := make([]post.Post, 0)
	for rows.Next() {
		p, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

func (r *postgresRepository) invalidateSlugCache(ctx context.Context, oldSlug, newSlug string) {
	keys := []string{postSlugCacheKeyPrefix + newSlug}
	if oldSlug != "" && oldSlug != newSlug {
		keys = append(keys, postSlugCacheKeyPrefix+oldSlug)
	}
	_ = r.cache.Delete(ctx, keys...)
}
