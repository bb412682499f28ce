package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"blog-backend/internal/domains/author"
	"blog-backend/internal/domains/user"
	"blog-backend/pkg/jwt"
)

type fakeUserRepo struct {
	byID    map[uuid.UUID]*user.User
	byEmail map[string]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[uuid.UUID]*user.User),
		byEmail: make(map[string]*user.User),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	cp := *u
	f.byID[cp.ID] = &cp
	f.byEmail[cp.Email] = &cp
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func (f *fakeUserRepo) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	if u, ok := f.byID[id]; ok {
		u.LastLogin = &at
	}
	return nil
}

type fakeAuthorRepo struct {
	created map[uuid.UUID]*author.Author
}

func newFakeAuthorRepo() *fakeAuthorRepo {
	return &fakeAuthorRepo{created: make(map[uuid.UUID]*author.Author)}
}

func (f *fakeAuthorRepo) Create(_ context.Context, a *author.Author) (*author.Author, error) {
	cp := *a
	f.created[cp.ID] = &cp
	return &cp, nil
}

func (f *fakeAuthorRepo) GetByID(_ context.Context, id uuid.UUID) (*author.Author, error) {
	a, ok := f.created[id]
	if !ok {
		return nil, author.ErrAuthorNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAuthorRepo) List(_ context.Context) ([]author.Author, error) { return nil, nil }

func (f *fakeAuthorRepo) Update(_ context.Context, a *author.Author) (*author.Author, error) {
	return a, nil
}

func (f *fakeAuthorRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.created, id)
	return nil
}

func (f *fakeAuthorRepo) Statistics(_ context.Context) ([]author.Statistics, error) {
	return nil, nil
}

func newTestUserService() (user.Service, *fakeUserRepo, *fakeAuthorRepo) {
	users := newFakeUserRepo()
	authors := newFakeAuthorRepo()
	manager := jwt.NewManager("test-secret", 15*time.Minute, 72*time.Hour)
	return NewUserService(users, authors, manager), users, authors
}

func validRegistration() user.RegisterRequest {
	return user.RegisterRequest{
		Email:           "ana@example.com",
		Password:        "s3cret-pass",
		ConfirmPassword: "s3cret-pass",
		DisplayName:     "Ana",
	}
}

func TestRegisterCreatesUserAndAuthorProfile(t *testing.T) {
	svc, users, authors := newTestUserService()

	resp, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, user.RoleUser, resp.User.Role)

	stored, err := users.FindByID(context.Background(), resp.User.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", stored.PasswordHash, "password must be hashed")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-pass")))

	// The author profile shares the user's id.
	profile, err := authors.GetByID(context.Background(), resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", profile.Name)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc, _, _ := newTestUserService()

	req := validRegistration()
	req.Password = "short"
	req.ConfirmPassword = "short"

	_, err := svc.Register(context.Background(), req)
	assert.Error(t, err)
}

func TestRegisterRejectsMismatchedConfirmation(t *testing.T) {
	svc, _, _ := newTestUserService()

	req := validRegistration()
	req.ConfirmPassword = "different-pass"

	_, err := svc.Register(context.Background(), req)
	assert.Error(t, err)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestUserService()

	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), validRegistration())
	assert.ErrorIs(t, err, user.ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	svc, _, _ := newTestUserService()
	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), user.LoginRequest{
		Email:    "ana@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotNil(t, resp.User.LastLogin)
}

func TestLoginWrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	svc, _, _ := newTestUserService()
	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	_, wrongPass := svc.Login(context.Background(), user.LoginRequest{
		Email:    "ana@example.com",
		Password: "wrong",
	})
	_, unknown := svc.Login(context.Background(), user.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})

	assert.ErrorIs(t, wrongPass, user.ErrInvalidCredentials)
	assert.ErrorIs(t, unknown, user.ErrInvalidCredentials)
}

func TestRefresh(t *testing.T) {
	svc, _, _ := newTestUserService()
	first, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	resp, err := svc.Refresh(context.Background(), user.RefreshTokenRequest{
		RefreshToken: first.RefreshToken,
	})
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, resp.User.ID)

	// An access token is not accepted as a refresh token.
	_, err = svc.Refresh(context.Background(), user.RefreshTokenRequest{
		RefreshToken: first.AccessToken,
	})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}
