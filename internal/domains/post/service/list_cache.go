package service

import (
	"sync"

	"github.com/google/uuid"

	"blog-backend/internal/domains/post"
)

// ListCache holds the visible post list the service serves from. It is
// loaded once, then patched in place after each successful write instead of
// re-fetched.
//
// Staleness contract: the cached list reflects only writes made through the
// owning service instance. Writes from other instances (or other sessions
// against the shared store) are invisible until Store replaces the list
// from a fresh read, which the service exposes as the refetch operation.
type ListCache struct {
	mu     sync.Mutex
	loaded bool
	posts  []post.Post
}

// Snapshot returns a copy of the cached list and whether it was loaded.
func (c *ListCache) Snapshot() ([]post.Post, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		return nil, false
	}
	out := make([]post.Post, len(c.posts))
	copy(out, c.posts)
	return out, true
}

// Store replaces the cached list wholesale (full re-fetch path).
func (c *ListCache) Store(posts []post.Post) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.posts = make([]post.Post, len(posts))
	copy(c.posts, posts)
	c.loaded = true
}

// Prepend inserts a freshly created visible post at the head of the list.
func (c *ListCache) Prepend(p post.Post) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		return
	}
	c.posts = append([]post.Post{p}, c.posts...)
}

// ApplyUpdate reconciles an updated post with the visible list: a visible
// post replaces its cached copy, or is prepended when the update just made
// it visible; a post that became invisible (unpublished, slug cleared) is
// removed.
func (c *ListCache) ApplyUpdate(p post.Post) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		return
	}

	if !p.IsVisible() {
		c.removeLocked(p.ID)
		return
	}

	for i := range c.posts {
		if c.posts[i].ID == p.ID {
			c.posts[i] = p
			return
		}
	}
	c.posts = append([]post.Post{p}, c.posts...)
}

// Remove drops the post with the given id, if cached.
func (c *ListCache) Remove(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		return
	}
	c.removeLocked(id)
}

// RemoveByAuthor drops every cached post owned by authorID (cascade path).
func (c *ListCache) RemoveByAuthor(authorID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		return
	}

	kept := c.posts[:0]
	for _, p := range c.posts {
		if p.AuthorID != authorID {
			kept = append(kept, p)
		}
	}
	c.posts = kept
}

// IncrementView bumps the cached view counter optimistically.
func (c *ListCache) IncrementView(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		return
	}
	for i := range c.posts {
		if c.posts[i].ID == id {
			c.posts[i].ViewCount++
			return
		}
	}
}

func (c *ListCache) removeLocked(id uuid.UUID) {
	kept := c.posts[:0]
	for _, p := range c.posts {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	c.posts = kept
}
