package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"blog-backend/internal/domains/author"
	"blog-backend/internal/domains/user"
	"blog-backend/pkg/jwt"
	"blog-backend/pkg/logger"
)

const bcryptCost = 12

// userService implements user.Service.
type userService struct {
	repo       user.Repository
	authorRepo author.Repository
	jwtManager *jwt.Manager
}

// NewUserService creates the identity service. The author repository is
// needed because registration creates the 1:1 author profile.
func NewUserService(repo user.Repository, authorRepo author.Repository, jwtManager *jwt.Manager) user.Service {
	return &userService{
		repo:       repo,
		authorRepo: authorRepo,
		jwtManager: jwtManager,
	}
}

func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, user.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	// The user row and its author profile share the same id.
	id := uuid.New()
	now := time.Now()
	u := &user.User{
		ID:           id,
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  strings.TrimSpace(req.DisplayName),
		Role:         user.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	if _, err := s.authorRepo.Create(ctx, &author.Author{
		ID:    id,
		Name:  u.DisplayName,
		Email: email,
	}); err != nil {
		// The identity exists without a profile now; surface the failure so
		// the client retries registration with support involved.
		logger.Error("Failed to create author profile for new user", err)
		return nil, err
	}

	logger.Info("User registered", map[string]interface{}{
		"user_id": id.String(),
		"email":   email,
	})
	return s.issueTokens(u)
}

func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		// A missing account and a wrong password look the same to the caller.
		return nil, user.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.repo.UpdateLastLogin(ctx, u.ID, now); err != nil {
		logger.Error("Failed to update last login", err)
	}
	u.LastLogin = &now

	return s.issueTokens(u)
}

func (s *userService) Refresh(ctx context.Context, req user.RefreshTokenRequest) (*user.LoginResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, user.ErrInvalidCredentials
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, user.ErrInvalidCredentials
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, user.ErrInvalidCredentials
	}

	return s.issueTokens(u)
}

func (s *userService) GetProfile(ctx context.Context, id uuid.UUID) (*user.UserDTO, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := u.ToDTO()
	return &dto, nil
}

func (s *userService) issueTokens(u *user.User) (*user.LoginResponse, error) {
	access, err := s.jwtManager.GenerateAccessToken(u.ID.String(), u.Email, u.Role)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwtManager.GenerateRefreshToken(u.ID.String())
	if err != nil {
		return nil, err
	}

	return &user.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    time.Now().Add(s.jwtManager.AccessExpiry()),
		User:         u.ToDTO(),
	}, nil
}
