package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blog-backend/internal/domains/author"
	"blog-backend/pkg/cache"
)

// postgresRepository implements author.Repository with a Redis record cache
// in front of single-row reads.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository creates an author repository instance.
func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) author.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const (
	authorCacheKeyPrefix = "author:"
	authorListCacheKey   = "authors:list"
	cacheTTL             = 15 * time.Minute
)

const authorColumns = `id, name, bio, email, avatar, social_links, verified, last_login, created_at, updated_at`

func (r *postgresRepository) Create(ctx context.Context, a *author.Author) (*author.Author, error) {
	links, err := marshalSocialLinks(a.SocialLinks)
	if err != nil {
		return nil, err
	}

	query := `
        INSERT INTO authors (id, name, bio, email, avatar, social_links, verified)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING ` + authorColumns

	created, err := r.scanOne(r.pool.QueryRow(ctx, query,
		a.ID, a.Name, a.Bio, a.Email, a.Avatar, links, a.Verified,
	))
	if err != nil {
		return nil, fmt.Errorf("insert author: %w", err)
	}

	r.invalidateList(ctx)
	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	cacheKey := authorCacheKeyPrefix + id.String()

	var cached author.Author
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	query := `SELECT ` + authorColumns + ` FROM authors WHERE id = $1`

	a, err := r.scanOne(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("get author by id: %w", err)
	}

	_ = r.cache.Set(ctx, cacheKey, a, cacheTTL)
	return a, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]author.Author, error) {
	var cached []author.Author
	if found, err := r.cache.Get(ctx, authorListCacheKey, &cached); err == nil && found {
		return cached, nil
	}

	query := `SELECT ` + authorColumns + ` FROM authors ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	defer rows.Close()

	authors, err := r.scanMany(rows)
	if err != nil {
		return nil, err
	}

	_ = r.cache.Set(ctx, authorListCacheKey, authors, cacheTTL)
	return authors, nil
}

func (r *postgresRepository) Update(ctx context.Context, a *author.Author) (*author.Author, error) {
	links, err := marshalSocialLinks(a.SocialLinks)
	if err != nil {
		return nil, err
	}

	query := `
        UPDATE authors
        SET name = $2, bio = $3, email = $4, avatar = $5, social_links = $6,
            verified = $7, updated_at = now()
        WHERE id = $1
        RETURNING ` + authorColumns

	updated, err := r.scanOne(r.pool.QueryRow(ctx, query,
		a.ID, a.Name, a.Bio, a.Email, a.Avatar, links, a.Verified,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("update author: %w", err)
	}

	r.invalidate(ctx, a.ID)
	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return author.ErrAuthorNotFound
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *postgresRepository) Statistics(ctx context.Context) ([]author.Statistics, error) {
	query := `
        SELECT id, name, email, verified, created_at, last_login,
               total_posts, published_posts, draft_posts, total_views, avg_views_per_post
        FROM author_statistics
        ORDER BY total_views DESC
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("author statistics: %w", err)
	}
	defer rows.Close()

	var stats []author.Statistics
	for rows.Next() {
		var s author.Statistics
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Email, &s.Verified, &s.CreatedAt, &s.LastLogin,
			&s.TotalPosts, &s.PublishedPosts, &s.DraftPosts, &s.TotalViews, &s.AvgViewsPerPost,
		); err != nil {
			return nil, fmt.Errorf("scan author statistics: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *postgresRepository) scanOne(row pgx.Row) (*author.Author, error) {
	var a author.Author
	var links []byte
	err := row.Scan(
		&a.ID, &a.Name, &a.Bio, &a.Email, &a.Avatar, &links,
		&a.Verified, &a.LastLogin, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(links) > 0 {
		a.SocialLinks = &author.SocialLinks{}
		if err := json.Unmarshal(links, a.SocialLinks); err != nil {
			return nil, fmt.Errorf("unmarshal social links: %w", err)
		}
	}
	return &a, nil
}

func (r *postgresRepository) scanMany(rows pgx.Rows) ([]author.Author, error) {
	authors := make([]author.Author, 0)
	for rows.Next() {
		a, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		authors = append(authors, *a)
	}
	return authors, rows.Err()
}

func (r *postgresRepository) invalidate(ctx context.Context, id uuid.UUID) {
	_ = r.cache.Delete(ctx, authorCacheKeyPrefix+id.String(), authorListCacheKey)
}

func (r *postgresRepository) invalidateList(ctx context.Context) {
	_ = r.cache.Delete(ctx, authorListCacheKey)
}

func marshalSocialLinks(links *author.SocialLinks) ([]byte, error) {
	if links == nil {
		return nil, nil
	}
	data, err := json.Marshal(links)
	if err != nil {
		return nil, fmt.Errorf("marshal social links: %w", err)
	}
	return data, nil
}
