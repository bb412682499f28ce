package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"blog-backend/internal/domains/category"
	"blog-backend/internal/domains/post"
	"blog-backend/pkg/cache"
)

// postgresRepository implements category.Repository.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository creates a category repository instance.
func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) category.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const (
	categoryListCacheKey = "categories:list"
	cacheTTL             = 15 * time.Minute
)

const categoryColumns = `id, name, slug, description, color, created_at, updated_at`

func (r *postgresRepository) Create(ctx context.Context, c *category.Category) (*category.Category, error) {
	query := `
        INSERT INTO categories (name, slug, description, color)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + categoryColumns

	created, err := r.scanOne(r.pool.QueryRow(ctx, query,
		c.Name, c.Slug, c.Description, c.Color,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, category.ErrDuplicateSlug
		}
		return nil, fmt.Errorf("insert category: %w", err)
	}

	_ = r.cache.Delete(ctx, categoryListCacheKey)
	return created, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]category.Category, error) {
	var cached []category.Category
	if found, err := r.cache.Get(ctx, categoryListCacheKey, &cached); err == nil && found {
		return cached, nil
	}

	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]category.Category, 0)
	for rows.Next() {
		c, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	_ = r.cache.Set(ctx, categoryListCacheKey, categories, cacheTTL)
	return categories, nil
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*category.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE slug = $1`

	c, err := r.scanOne(r.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("get category by slug: %w", err)
	}
	return c, nil
}

func (r *postgresRepository) PostsBySlug(ctx context.Context, slug string) ([]post.Post, error) {
	query := `
        SELECT p.id, p.title, p.slug, p.excerpt, p.content, p.cover_image, p.author_id,
               p.published_at, p.reading_time, p.tags, p.featured, p.view_count,
               p.status, p.created_at, p.updated_at
        FROM posts p
        JOIN post_categories pc ON pc.post_id = p.id
        JOIN categories c ON c.id = pc.category_id
        WHERE c.slug = $1 AND p.status = 'published' AND p.published_at IS NOT NULL
        ORDER BY p.published_at DESC
    `

	rows, err := r.pool.Query(ctx, query, slug)
	if err != nil {
		return nil, fmt.Errorf("list posts by category: %w", err)
	}
	defer rows.Close()

	posts := make([]post.Post, 0)
	for rows.Next() {
		var p post.Post
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.CoverImage, &p.AuthorID,
			&p.PublishedAt, &p.ReadingTime, &p.Tags, &p.Featured, &p.ViewCount,
			&p.Status, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *postgresRepository) scanOne(row pgx.Row) (*category.Category, error) {
	var c category.Category
	err := row.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.Color, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
