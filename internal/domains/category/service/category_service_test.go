package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/domains/category"
	"blog-backend/internal/domains/post"
)

type fakeCategoryRepo struct {
	bySlug map[string]*category.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{bySlug: make(map[string]*category.Category)}
}

func (f *fakeCategoryRepo) Create(_ context.Context, c *category.Category) (*category.Category, error) {
	if _, ok := f.bySlug[c.Slug]; ok {
		return nil, category.ErrDuplicateSlug
	}
	cp := *c
	cp.ID = uuid.New()
	f.bySlug[cp.Slug] = &cp
	return &cp, nil
}

func (f *fakeCategoryRepo) List(_ context.Context) ([]category.Category, error) {
	var out []category.Category
	for _, c := range f.bySlug {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCategoryRepo) GetBySlug(_ context.Context, slug string) (*category.Category, error) {
	c, ok := f.bySlug[slug]
	if !ok {
		return nil, category.ErrCategoryNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCategoryRepo) PostsBySlug(_ context.Context, _ string) ([]post.Post, error) {
	return []post.Post{}, nil
}

func TestCreateCategoryDerivesSlug(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryRepo())

	created, err := svc.Create(context.Background(), &category.CreateCategoryRequest{
		Name: "Градови и насеља",
	})
	require.NoError(t, err)
	assert.Equal(t, "gradovi-i-naselja", created.Slug)
	assert.Equal(t, defaultColor, created.Color)
}

func TestCreateCategoryKeepsExplicitColor(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryRepo())

	created, err := svc.Create(context.Background(), &category.CreateCategoryRequest{
		Name:  "Istorija",
		Color: "#FF0000",
	})
	require.NoError(t, err)
	assert.Equal(t, "#FF0000", created.Color)
}

func TestCreateCategoryRejectsUnslugifiableName(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryRepo())

	_, err := svc.Create(context.Background(), &category.CreateCategoryRequest{Name: "!!"})
	assert.ErrorIs(t, err, category.ErrEmptySlug)
}

func TestCreateCategoryDuplicateSlug(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryRepo())

	_, err := svc.Create(context.Background(), &category.CreateCategoryRequest{Name: "Istorija"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), &category.CreateCategoryRequest{Name: "ISTORIJA"})
	assert.ErrorIs(t, err, category.ErrDuplicateSlug)
}

func TestPostsByUnknownCategory(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryRepo())

	_, err := svc.PostsBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, category.ErrCategoryNotFound)
}
