package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshare-backend/internal/domains/user"
	"bookshare-backend/internal/domains/user/repository"
	"bookshare-backend/internal/infrastructure/kvstore"
	"bookshare-backend/pkg/jwt"
)

func newTestService(t *testing.T) (user.Service, user.Repository) {
	t.Helper()
	store := kvstore.NewMemoryStore()
	repo := repository.NewStoreRepository(store)
	sessions := repository.NewSessionRepository(store)
	tokens := jwt.NewManager("test-secret", time.Hour)
	return NewUserService(repo, sessions, tokens, time.Hour), repo
}

func registerReq(email string) user.RegisterRequest {
	return user.RegisterRequest{
		Email:    email,
		Password: "correct-horse",
		Name:     "Jamie Reader",
		Role:     user.RoleCollector,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	dto, err := svc.Register(ctx, registerReq("jamie@example.com"))
	require.NoError(t, err)
	assert.NotEmpty(t, dto.ID)
	assert.Equal(t, "jamie@example.com", dto.Email)

	auth, err := svc.Login(ctx, user.LoginRequest{Email: "jamie@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, auth.AccessToken)
	assert.Equal(t, dto.ID, auth.User.ID)

	valid, err := svc.IsSessionValid(ctx, auth.AccessToken)
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq("dup@example.com"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerReq("dup@example.com"))
	require.ErrorIs(t, err, user.ErrEmailAlreadyExists)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	svc, _ := newTestService(t)

	req := registerReq("short@example.com")
	req.Password = "short"
	_, err := svc.Register(context.Background(), req)
	require.Error(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq("jamie@example.com"))
	require.NoError(t, err)

	_, err = svc.Login(ctx, user.LoginRequest{Email: "jamie@example.com", Password: "wrong-password"})
	require.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestLoginUnknownEmailHidesExistence(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), user.LoginRequest{Email: "ghost@example.com", Password: "whatever-works"})
	require.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestSignInWithProvider(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	auth, err := svc.SignInWithProvider(ctx, "google", user.RoleDonor)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(auth.User.ID, "google_donor_"))
	assert.True(t, strings.HasSuffix(auth.User.Email, "@gmail.com"))
	assert.Contains(t, auth.User.Name, "Book Donor")

	stored, err := repo.FindByID(ctx, auth.User.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.PasswordHash)

	// Provider accounts cannot log in with a password.
	_, err = svc.Login(ctx, user.LoginRequest{Email: auth.User.Email, Password: "anything-goes"})
	require.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestSignInWithUnknownProvider(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.SignInWithProvider(context.Background(), "facebook", user.RoleDonor)
	require.ErrorIs(t, err, user.ErrUnknownProvider)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq("jamie@example.com"))
	require.NoError(t, err)
	auth, err := svc.Login(ctx, user.LoginRequest{Email: "jamie@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, auth.AccessToken))

	valid, err := svc.IsSessionValid(ctx, auth.AccessToken)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestGetProfile(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	dto, err := svc.Register(ctx, registerReq("jamie@example.com"))
	require.NoError(t, err)

	profile, err := svc.GetProfile(ctx, dto.ID)
	require.NoError(t, err)
	assert.Equal(t, dto.Email, profile.Email)

	_, err = svc.GetProfile(ctx, "missing")
	require.ErrorIs(t, err, user.ErrUserNotFound)
}
