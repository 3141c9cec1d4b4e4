package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roleplay/roleplay-api/internal/domain"
	"github.com/roleplay/roleplay-api/internal/service"
)

// memoryDenylist хранит отозванные jti в памяти
type memoryDenylist map[string]time.Time

func (d memoryDenylist) Revoke(_ context.Context, jti string, expiresAt time.Time) error {
	d[jti] = expiresAt
	return nil
}

func (d memoryDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, ok := d[jti]
	return ok, nil
}

func TestAuthMiddleware(t *testing.T) {
	denylist := memoryDenylist{}
	authService := service.NewAuthService(nil, denylist, "middleware-secret", time.Hour)

	token, err := authService.IssueToken(&domain.User{ID: 42})
	require.NoError(t, err)

	var gotUserID int64
	protected := AuthMiddleware(authService)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = GetUserIDFromContext(r.Context())
		require.NotNil(t, GetClaimsFromContext(r.Context()))
		w.WriteHeader(http.StatusNoContent)
	}))

	serve := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/groups", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		return rec
	}

	t.Run("valid token", func(t *testing.T) {
		rec := serve("Bearer " + token.Token)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, int64(42), gotUserID)
	})

	t.Run("missing header", func(t *testing.T) {
		rec := serve("")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), `"code":"UNAUTHORIZED"`)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve("Basic "+token.Token).Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve("Bearer garbage").Code)
	})

	t.Run("revoked token", func(t *testing.T) {
		claims, err := authService.ValidateToken(context.Background(), token.Token)
		require.NoError(t, err)
		require.NoError(t, authService.Logout(context.Background(), claims))

		assert.Equal(t, http.StatusUnauthorized, serve("Bearer "+token.Token).Code)
	})
}

// brokenDenylist имитирует недоступное хранилище отозванных токенов
type brokenDenylist struct{}

func (brokenDenylist) Revoke(context.Context, string, time.Time) error {
	return errors.New("connection refused")
}

func (brokenDenylist) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("connection refused")
}

func TestAuthMiddleware_DenylistFailure(t *testing.T) {
	authService := service.NewAuthService(nil, brokenDenylist{}, "middleware-secret", time.Hour)

	token, err := authService.IssueToken(&domain.User{ID: 42})
	require.NoError(t, err)

	called := false
	protected := AuthMiddleware(authService)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/groups", nil)
	req.Header.Set("Authorization", "Bearer "+token.Token)
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"INTERNAL_ERROR"`)
}
