package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/roleplay/roleplay-api/internal/domain"
)

const testSecret = "test-jwt-secret"

func newAuthService(t *testing.T) (*AuthService, *mockUserRepo, *mockDenylist) {
	t.Helper()
	userRepo := &mockUserRepo{}
	denylist := &mockDenylist{}
	return NewAuthService(userRepo, denylist, testSecret, time.Hour), userRepo, denylist
}

func userWithPassword(t *testing.T, id int64, email, password string) *domain.User {
	t.Helper()
	hashed, err := HashPassword(password)
	require.NoError(t, err)
	return &domain.User{ID: id, Username: "user", Email: email, Password: hashed}
}

func TestAuthService_LoginAndValidate(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, denylist := newAuthService(t)

	user := userWithPassword(t, 7, "a@example.com", "secret")
	userRepo.On("GetByEmail", ctx, "a@example.com").Return(user, nil)
	denylist.On("IsRevoked", ctx, mock.AnythingOfType("string")).Return(false, nil)

	got, token, err := svc.Login(ctx, "a@example.com", "secret")
	require.NoError(t, err)

	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "bearer", token.Type)
	assert.NotEmpty(t, token.Token)

	claims, err := svc.ValidateToken(ctx, token.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.NotEmpty(t, claims.ID)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, _ := newAuthService(t)

	userRepo.On("GetByEmail", ctx, "a@example.com").Return(userWithPassword(t, 7, "a@example.com", "secret"), nil)

	_, _, err := svc.Login(ctx, "a@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_LoginUnknownEmail(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, _ := newAuthService(t)

	userRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, domain.ErrUserNotFound)

	_, _, err := svc.Login(ctx, "nobody@example.com", "secret")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_ValidateRejectsGarbageAndExpired(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAuthService(t)

	_, err := svc.ValidateToken(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	token, err := svc.IssueToken(&domain.User{ID: 1})
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = svc.ValidateToken(ctx, token.Token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestAuthService_ValidateRejectsOtherSecret(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAuthService(t)
	other := NewAuthService(&mockUserRepo{}, &mockDenylist{}, "another-secret", time.Hour)

	token, err := other.IssueToken(&domain.User{ID: 1})
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, token.Token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestAuthService_LogoutRevokesToken(t *testing.T) {
	ctx := context.Background()
	svc, _, denylist := newAuthService(t)

	token, err := svc.IssueToken(&domain.User{ID: 3})
	require.NoError(t, err)

	denylist.On("IsRevoked", ctx, mock.AnythingOfType("string")).Return(false, nil).Once()
	claims, err := svc.ValidateToken(ctx, token.Token)
	require.NoError(t, err)

	denylist.On("Revoke", ctx, claims.ID, claims.ExpiresAt.Time).Return(nil)
	require.NoError(t, svc.Logout(ctx, claims))

	denylist.On("IsRevoked", ctx, claims.ID).Return(true, nil)
	_, err = svc.ValidateToken(ctx, token.Token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	denylist.AssertExpectations(t)
}
