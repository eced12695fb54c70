package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"blog-backend/internal/domains/user"
	"blog-backend/internal/shared/middleware"
	"blog-backend/pkg/jwt"
)

// fakeUserRepo is an in-memory user.Repository.
type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*user.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return user.ErrEmailAlreadyExists
		}
		if existing.UserName == u.UserName {
			return user.ErrUserNameAlreadyExists
		}
	}
	clone := *u
	f.users[u.ID] = &clone
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, id uuid.UUID, name, userName *string) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	if name != nil {
		u.Name = *name
	}
	if userName != nil {
		u.UserName = *userName
	}
	u.UpdatedAt = time.Now()
	clone := *u
	return &clone, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.users[id]; !ok {
		return user.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func newTestService(repo user.Repository) user.Service {
	return NewUserService(repo, jwt.NewManager("test-secret", 24*time.Hour))
}

func registerReq() user.RegisterRequest {
	return user.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret",
		UserName: "alice",
	}
}

func TestRegisterStoresDigestNotPlaintext(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	dto, token, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	stored, err := repo.FindByID(context.Background(), dto.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret")))
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	_, _, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	// Same email, every other field different.
	dup := user.RegisterRequest{
		Name:     "Other",
		Email:    "alice@example.com",
		Password: "different",
		UserName: "other",
	}
	_, _, err = svc.Register(context.Background(), dup)
	assert.ErrorIs(t, err, user.ErrEmailAlreadyExists)
}

func TestRegisterInvalidInput(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	_, _, err := svc.Register(context.Background(), user.RegisterRequest{
		Name:     "",
		Email:    "bad",
		Password: "123",
		UserName: "",
	})
	assert.Error(t, err)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	_, _, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, _, wrongPassword := svc.Login(context.Background(), user.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	_, _, unknownEmail := svc.Login(context.Background(), user.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret",
	})

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
	assert.ErrorIs(t, wrongPassword, user.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, user.ErrInvalidCredentials)
}

func TestLoginSuccessIssuesResolvableToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	_, _, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	dto, token, err := svc.Login(context.Background(), user.LoginRequest{
		Email:    "alice@example.com",
		Password: "secret",
	})
	require.NoError(t, err)

	identity, err := svc.ResolveSession(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, dto.ID, identity.ID)
	assert.Equal(t, "alice", identity.UserName)
}

func TestResolveSessionReflectsDeletedAccount(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	dto, token, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	// Token is still valid, but the subject is gone: the directory
	// lookup must reject it.
	require.NoError(t, repo.Delete(context.Background(), dto.ID))

	_, err = svc.ResolveSession(context.Background(), token)
	assert.ErrorIs(t, err, middleware.ErrSessionSubjectGone)
}

func TestResolveSessionRejectsTamperedToken(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	_, err := svc.ResolveSession(context.Background(), "not.a.token")
	assert.Error(t, err)
}

func TestUpdateProfileAllowList(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	dto, _, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	newName := "Alice B"
	updated, err := svc.UpdateProfile(context.Background(), dto.ID, user.UpdateProfileRequest{
		Name: &newName,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice B", updated.Name)
	assert.Equal(t, "alice", updated.UserName, "untouched field stays")
	assert.Equal(t, "alice@example.com", updated.Email, "email is immutable through this path")
}
