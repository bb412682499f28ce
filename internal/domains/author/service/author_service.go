package service

import (
	"context"

	"github.com/google/uuid"

	"blog-backend/internal/domains/author"
	"blog-backend/internal/domains/post"
	"blog-backend/pkg/logger"
)

// authorService implements author.Service.
type authorService struct {
	repo     author.Repository
	postRepo post.Repository
}

// NewAuthorService creates the author service. The post repository is needed
// for the cascade delete path.
func NewAuthorService(repo author.Repository, postRepo post.Repository) author.Service {
	return &authorService{
		repo:     repo,
		postRepo: postRepo,
	}
}

func (s *authorService) List(ctx context.Context) ([]author.Author, error) {
	return s.repo.List(ctx)
}

func (s *authorService) GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *authorService) Update(ctx context.Context, actorID, id uuid.UUID, req *author.UpdateAuthorRequest) (*author.Author, error) {
	if actorID != id {
		return nil, author.ErrNotProfileOwner
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.ApplyTo(existing)
	return s.repo.Update(ctx, existing)
}

// DeleteCascade removes the author's posts, then the author row. The two
// deletes run as separate statements: a crash in between leaves the posts
// gone and the author present, which the superuser can retry.
func (s *authorService) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	removed, err := s.postRepo.DeleteByAuthor(ctx, id)
	if err != nil {
		return err
	}
	logger.Info("Deleted posts for author cascade", map[string]interface{}{
		"author_id": id.String(),
		"posts":     removed,
	})

	return s.repo.Delete(ctx, id)
}

func (s *authorService) Statistics(ctx context.Context) ([]author.Statistics, error) {
	return s.repo.Statistics(ctx)
}
