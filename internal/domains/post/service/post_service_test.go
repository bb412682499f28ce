package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/domains/post"
	"blog-backend/internal/shared"
)

// fakeRepo is an in-memory post.Repository.
type fakeRepo struct {
	posts      map[uuid.UUID]*post.Post
	countCalls int
	searchHits []post.SearchResult
	searched   bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{posts: make(map[uuid.UUID]*post.Post)}
}

func (f *fakeRepo) Create(_ context.Context, p *post.Post) (*post.Post, error) {
	cp := *p
	cp.ID = uuid.New()
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	f.posts[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*post.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, post.ErrPostNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeRepo) GetBySlug(_ context.Context, slug string) (*post.Post, error) {
	for _, p := range f.posts {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, post.ErrPostNotFound
}

func (f *fakeRepo) ListVisible(_ context.Context) ([]post.Post, error) {
	var out []post.Post
	for _, p := range f.posts {
		if p.IsVisible() {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListByAuthor(_ context.Context, authorID uuid.UUID) ([]post.Post, error) {
	var out []post.Post
	for _, p := range f.posts {
		if p.AuthorID == authorID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeRepo) Update(_ context.Context, p *post.Post) (*post.Post, error) {
	if _, ok := f.posts[p.ID]; !ok {
		return nil, post.ErrPostNotFound
	}
	cp := *p
	cp.UpdatedAt = time.Now()
	f.posts[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.posts[id]; !ok {
		return post.ErrPostNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakeRepo) DeleteByAuthor(_ context.Context, authorID uuid.UUID) (int64, error) {
	var n int64
	for id, p := range f.posts {
		if p.AuthorID == authorID {
			delete(f.posts, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) CountBySlug(_ context.Context, slug string, excludeID uuid.UUID) (int, error) {
	f.countCalls++
	count := 0
	for _, p := range f.posts {
		if p.Slug == slug && p.ID != excludeID {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) Search(_ context.Context, _ string) ([]post.SearchResult, error) {
	f.searched = true
	return f.searchHits, nil
}

func (f *fakeRepo) IncrementViewCount(_ context.Context, postID uuid.UUID, _, _ *string) error {
	if p, ok := f.posts[postID]; ok {
		p.ViewCount++
	}
	return nil
}

func (f *fakeRepo) PurgeViews(_ context.Context, _ time.Time) (int64, error) { return 0, nil }

func (f *fakeRepo) UpsertReadingProgress(_ context.Context, _ *post.ReadingProgress) error {
	return nil
}

func (f *fakeRepo) Statistics(_ context.Context) ([]post.Statistics, error) { return nil, nil }

// fakeEnqueuer records enqueued view events.
type fakeEnqueuer struct {
	payloads []shared.RecordPostViewPayload
	err      error
}

func (f *fakeEnqueuer) EnqueueRecordPostView(_ context.Context, p shared.RecordPostViewPayload) error {
	if f.err != nil {
		return f.err
	}
	f.payloads = append(f.payloads, p)
	return nil
}

func newTestService(repo *fakeRepo) (post.Service, *fakeEnqueuer) {
	enq := &fakeEnqueuer{}
	return NewPostService(repo, enq), enq
}

func seedPost(repo *fakeRepo, authorID uuid.UUID, title, slug string, published bool) *post.Post {
	p := &post.Post{
		ID:       uuid.New(),
		Title:    title,
		Slug:     slug,
		AuthorID: authorID,
		Status:   post.StatusDraft,
	}
	if published {
		now := time.Now()
		p.PublishedAt = &now
		p.Status = post.StatusPublished
	}
	repo.posts[p.ID] = p
	return p
}

func TestGetBySlugHidesDrafts(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)
	authorID := uuid.New()

	seedPost(repo, authorID, "Secret Draft", "secret-draft", false)
	seedPost(repo, authorID, "Live Post", "live-post", true)
	seedPost(repo, authorID, "Legacy", post.PlaceholderSlug, true)

	_, err := svc.GetBySlug(context.Background(), "secret-draft")
	assert.ErrorIs(t, err, post.ErrPostNotFound, "a draft's slug must not resolve publicly")

	_, err = svc.GetBySlug(context.Background(), post.PlaceholderSlug)
	assert.ErrorIs(t, err, post.ErrPostNotFound, "placeholder slugs must not resolve publicly")

	got, err := svc.GetBySlug(context.Background(), "live-post")
	require.NoError(t, err)
	assert.Equal(t, "live-post", got.Slug)
}

func TestListVisibleByAuthorExcludesDrafts(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)
	authorID := uuid.New()

	seedPost(repo, authorID, "Draft", "draft", false)
	seedPost(repo, authorID, "Published", "published", true)

	visible, err := svc.ListVisibleByAuthor(context.Background(), authorID)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "published", visible[0].Slug)

	// The owner-facing listing still carries the draft.
	mine, err := svc.ListByAuthor(context.Background(), authorID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestCreateAssignsSlugFromTitle(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)
	authorID := uuid.New()

	created, err := svc.Create(context.Background(), authorID, &post.CreatePostRequest{
		Title: "Стара прича",
	})
	require.NoError(t, err)
	assert.Equal(t, "stara-prica", created.Slug)
	assert.Equal(t, post.StatusDraft, created.Status)
	assert.Nil(t, created.PublishedAt)
}

func TestCreateSuffixesCollidingSlugs(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)
	authorID := uuid.New()

	first, err := svc.Create(context.Background(), authorID, &post.CreatePostRequest{Title: "Same Title"})
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), authorID, &post.CreatePostRequest{Title: "Same Title"})
	require.NoError(t, err)
	third, err := svc.Create(context.Background(), authorID, &post.CreatePostRequest{Title: "Same Title"})
	require.NoError(t, err)

	assert.Equal(t, "same-title", first.Slug)
	assert.Equal(t, "same-title-1", second.Slug)
	assert.Equal(t, "same-title-2", third.Slug)
}

func TestCreateRejectsUnslugifiableTitle(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)

	_, err := svc.Create(context.Background(), uuid.New(), &post.CreatePostRequest{Title: "!!!"})
	assert.ErrorIs(t, err, post.ErrEmptySlug)
}

func TestSlugProbeExhaustion(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)
	authorID := uuid.New()

	// Occupy the base and every suffixed candidate the loop will try.
	seedPost(repo, authorID, "Busy", "busy", true)
	for i := 1; i < maxSlugProbes; i++ {
		seedPost(repo, authorID, "Busy", fmt.Sprintf("busy-%d", i), true)
	}

	_, err := svc.Create(context.Background(), authorID, &post.CreatePostRequest{Title: "Busy"})
	assert.ErrorIs(t, err, post.ErrSlugProbeExhausted)
}

func TestCreateWithHandEditedSlug(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)

	created, err := svc.Create(context.Background(), uuid.New(), &post.CreatePostRequest{
		Title: "Some Title",
		Slug:  "My Custom_Slug!",
	})
	require.NoError(t, err)
	assert.Equal(t, "mycustomslug", created.Slug)
}

func TestUpdateKeepsSlugWhenTitleUnchanged(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)
	authorID := uuid.New()
	p := seedPost(repo, authorID, "Original", "original", true)

	excerpt := "new excerpt"
	updated, err := svc.Update(context.Background(), authorID, p.ID, &post.UpdatePostRequest{
		Excerpt: &excerpt,
	})
	require.NoError(t, err)
	assert.Equal(t, "original", updated.Slug)
	assert.Equal(t, "new excerpt", updated.Excerpt)
}

func TestUpdateRegeneratesSlugOnTitleChange(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)
	authorID := uuid.New()
	p := seedPost(repo, authorID, "Original", "original", true)

	title := "Brand New Title"
	updated, err := svc.Update(context.Background(), authorID, p.ID, &post.UpdatePostRequest{
		Title: &title,
	})
	require.NoError(t, err)
	assert.Equal(t, "brand-new-title", updated.Slug)
}

func TestUpdateRejectsNonOwner(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)
	p := seedPost(repo, uuid.New(), "Theirs", "theirs", true)

	title := "Hijacked"
	_, err := svc.Update(context.Background(), uuid.New(), p.ID, &post.UpdatePostRequest{Title: &title})
	assert.ErrorIs(t, err, post.ErrNotOwner)
}

func TestDeleteOwnershipAndAdminOverride(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)
	owner := uuid.New()
	p := seedPost(repo, owner, "Mine", "mine", true)

	err := svc.Delete(context.Background(), uuid.New(), p.ID, false)
	assert.ErrorIs(t, err, post.ErrNotOwner)

	err = svc.Delete(context.Background(), uuid.New(), p.ID, true)
	assert.NoError(t, err)
	_, err = repo.GetByID(context.Background(), p.ID)
	assert.ErrorIs(t, err, post.ErrPostNotFound)
}

func TestListCachePatchedOnPublishToggle(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)
	authorID := uuid.New()
	p := seedPost(repo, authorID, "Draft Post", "draft-post", false)

	visible, err := svc.ListVisible(context.Background())
	require.NoError(t, err)
	assert.Empty(t, visible)

	publish := true
	_, err = svc.Update(context.Background(), authorID, p.ID, &post.UpdatePostRequest{Publish: &publish})
	require.NoError(t, err)

	visible, err = svc.ListVisible(context.Background())
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, p.ID, visible[0].ID)

	unpublish := false
	_, err = svc.Update(context.Background(), authorID, p.ID, &post.UpdatePostRequest{Publish: &unpublish})
	require.NoError(t, err)

	visible, err = svc.ListVisible(context.Background())
	require.NoError(t, err)
	assert.Empty(t, visible)
}

func TestListCacheIsolatedFromExternalWrites(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)

	_, err := svc.ListVisible(context.Background())
	require.NoError(t, err)

	// A write that bypasses this service instance is invisible until Refetch.
	seedPost(repo, uuid.New(), "External", "external", true)

	visible, err := svc.ListVisible(context.Background())
	require.NoError(t, err)
	assert.Empty(t, visible)

	refreshed, err := svc.Refetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, refreshed, 1)
}

func TestSearchBlankQuerySkipsStore(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)

	results, err := svc.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.False(t, repo.searched, "blank query must not reach the store")
}

func TestSearchFiltersPlaceholderSlugs(t *testing.T) {
	repo := newFakeRepo()
	repo.searchHits = []post.SearchResult{
		{ID: uuid.New(), Title: "Good", Slug: "good"},
		{ID: uuid.New(), Title: "Legacy", Slug: post.PlaceholderSlug},
		{ID: uuid.New(), Title: "Broken", Slug: ""},
	}
	svc, _ := newTestService(repo)

	results, err := svc.Search(context.Background(), "anything")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "good", results[0].Slug)
}

func TestRecordViewEnqueuesAndPatchesCache(t *testing.T) {
	repo := newFakeRepo()
	svc, enq := newTestService(repo)
	authorID := uuid.New()
	p := seedPost(repo, authorID, "Viewed", "viewed", true)

	_, err := svc.ListVisible(context.Background())
	require.NoError(t, err)

	ip := "203.0.113.7"
	svc.RecordView(context.Background(), p.ID, &ip, nil)

	require.Len(t, enq.payloads, 1)
	assert.Equal(t, p.ID, enq.payloads[0].PostID)

	visible, err := svc.ListVisible(context.Background())
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, 1, visible[0].ViewCount)
}

func TestEvictAuthorPosts(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)
	victim := uuid.New()
	seedPost(repo, victim, "A", "a", true)
	seedPost(repo, uuid.New(), "B", "b", true)

	visible, err := svc.ListVisible(context.Background())
	require.NoError(t, err)
	require.Len(t, visible, 2)

	svc.EvictAuthorPosts(victim)

	visible, err = svc.ListVisible(context.Background())
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "b", visible[0].Slug)
}

func TestRecordViewSwallowsEnqueueFailure(t *testing.T) {
	repo := newFakeRepo()
	enq := &fakeEnqueuer{err: assert.AnError}
	svc := NewPostService(repo, enq)
	p := seedPost(repo, uuid.New(), "Viewed", "viewed", true)

	// Must not panic or surface the failure.
	svc.RecordView(context.Background(), p.ID, nil, nil)
	assert.Empty(t, enq.payloads)
}
