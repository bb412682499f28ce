package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/domains/post"
)

func visiblePost(authorID uuid.UUID, slug string) post.Post {
	now := time.Now()
	return post.Post{
		ID:          uuid.New(),
		Title:       slug,
		Slug:        slug,
		AuthorID:    authorID,
		PublishedAt: &now,
		Status:      post.StatusPublished,
	}
}

func TestListCacheSnapshotBeforeLoad(t *testing.T) {
	c := &ListCache{}

	_, ok := c.Snapshot()
	assert.False(t, ok)

	// Patches before the first load are no-ops.
	c.Prepend(visiblePost(uuid.New(), "early"))
	_, ok = c.Snapshot()
	assert.False(t, ok)
}

func TestListCacheSnapshotIsACopy(t *testing.T) {
	c := &ListCache{}
	c.Store([]post.Post{visiblePost(uuid.New(), "one")})

	snap, ok := c.Snapshot()
	require.True(t, ok)
	snap[0].Title = "mutated"

	again, _ := c.Snapshot()
	assert.Equal(t, "one", again[0].Title)
}

func TestListCachePrependPutsNewestFirst(t *testing.T) {
	c := &ListCache{}
	c.Store([]post.Post{visiblePost(uuid.New(), "old")})

	c.Prepend(visiblePost(uuid.New(), "new"))

	snap, _ := c.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "new", snap[0].Slug)
}

func TestListCacheApplyUpdate(t *testing.T) {
	c := &ListCache{}
	p := visiblePost(uuid.New(), "subject")
	c.Store([]post.Post{p})

	// In-place replace.
	p.Title = "renamed"
	c.ApplyUpdate(p)
	snap, _ := c.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "renamed", snap[0].Title)

	// Became invisible: removed.
	p.PublishedAt = nil
	c.ApplyUpdate(p)
	snap, _ = c.Snapshot()
	assert.Empty(t, snap)

	// Became visible again: prepended.
	now := time.Now()
	p.PublishedAt = &now
	c.ApplyUpdate(p)
	snap, _ = c.Snapshot()
	assert.Len(t, snap, 1)
}

func TestListCacheRemoveByAuthor(t *testing.T) {
	c := &ListCache{}
	victim := uuid.New()
	c.Store([]post.Post{
		visiblePost(victim, "a"),
		visiblePost(uuid.New(), "b"),
		visiblePost(victim, "c"),
	})

	c.RemoveByAuthor(victim)

	snap, _ := c.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "b", snap[0].Slug)
}

func TestListCacheIncrementView(t *testing.T) {
	c := &ListCache{}
	p := visiblePost(uuid.New(), "counted")
	c.Store([]post.Post{p})

	c.IncrementView(p.ID)
	c.IncrementView(p.ID)
	c.IncrementView(uuid.New()) // unknown id ignored

	snap, _ := c.Snapshot()
	assert.Equal(t, 2, snap[0].ViewCount)
}
