package service

import (
	"context"
	"strings"

	"blog-backend/internal/domains/category"
	"blog-backend/internal/domains/post"
	"blog-backend/internal/shared/utils"
)

const defaultColor = "#6B7280"

// categoryService implements category.Service.
type categoryService struct {
	repo category.Repository
}

// NewCategoryService creates a category service instance.
func NewCategoryService(repo category.Repository) category.Service {
	return &categoryService{repo: repo}
}

func (s *categoryService) List(ctx context.Context) ([]category.Category, error) {
	return s.repo.List(ctx)
}

func (s *categoryService) Create(ctx context.Context, req *category.CreateCategoryRequest) (*category.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	slug := utils.Slugify(req.Name)
	if slug == "" {
		return nil, category.ErrEmptySlug
	}

	color := strings.TrimSpace(req.Color)
	if color == "" {
		color = defaultColor
	}

	return s.repo.Create(ctx, &category.Category{
		Name:        strings.TrimSpace(req.Name),
		Slug:        slug,
		Description: req.Description,
		Color:       color,
	})
}

func (s *categoryService) GetBySlug(ctx context.Context, slug string) (*category.Category, error) {
	return s.repo.GetBySlug(ctx, strings.TrimSpace(strings.ToLower(slug)))
}

func (s *categoryService) PostsBySlug(ctx context.Context, slug string) ([]post.Post, error) {
	if _, err := s.repo.GetBySlug(ctx, slug); err != nil {
		return nil, err
	}
	return s.repo.PostsBySlug(ctx, slug)
}
