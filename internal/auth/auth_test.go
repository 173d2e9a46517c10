package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleinsmith/orthobill/internal/auth"
)

func newTestService(t *testing.T, delay time.Duration) *auth.Service {
	t.Helper()

	svc, err := auth.NewService("test-secret", time.Hour, delay, auth.DemoUsers())
	require.NoError(t, err)

	return svc
}

func TestLogin(t *testing.T) {
	svc := newTestService(t, 0)

	token, user, err := svc.Login(context.Background(), "admin@kleinsmith.co.za", "admin123")
	require.NoError(t, err)

	assert.NotEmpty(t, token)
	assert.Equal(t, auth.RoleAdmin, user.Role)
	assert.Equal(t, "admin@kleinsmith.co.za", user.Email)

	verified, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, verified.ID)
	assert.Equal(t, auth.RoleAdmin, verified.Role)
}

func TestLogin_EmailNormalised(t *testing.T) {
	svc := newTestService(t, 0)

	_, user, err := svc.Login(context.Background(), "  Staff@Kleinsmith.co.za ", "staff123")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleUser, user.Role)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := newTestService(t, 0)

	// Unknown user and wrong password surface the same error.
	_, _, err := svc.Login(context.Background(), "nobody@kleinsmith.co.za", "admin123")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "admin@kleinsmith.co.za", "wrong")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_DelayRespectsCancellation(t *testing.T) {
	svc := newTestService(t, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := svc.Login(ctx, "admin@kleinsmith.co.za", "admin123")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestVerifyToken_Invalid(t *testing.T) {
	svc := newTestService(t, 0)

	_, err := svc.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	// A token signed with a different secret is rejected.
	other, err := auth.NewService("other-secret", time.Hour, 0, auth.DemoUsers())
	require.NoError(t, err)

	token, _, err := other.Login(context.Background(), "admin@kleinsmith.co.za", "admin123")
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerifyToken_Expired(t *testing.T) {
	svc, err := auth.NewService("test-secret", -time.Minute, 0, auth.DemoUsers())
	require.NoError(t, err)

	token, _, err := svc.Login(context.Background(), "admin@kleinsmith.co.za", "admin123")
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestRequireAuth(t *testing.T) {
	svc := newTestService(t, 0)

	var seen auth.User
	handler := svc.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFrom(r.Context())
		require.True(t, ok)
		seen = user
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer nonsense")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token, user, err := svc.Login(context.Background(), "staff@kleinsmith.co.za", "staff123")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, user.ID, seen.ID)
	})
}

func TestRequireRole(t *testing.T) {
	svc := newTestService(t, 0)

	handler := svc.RequireAuth(auth.RequireRole(auth.RoleAdmin)(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	))

	adminToken, _, err := svc.Login(context.Background(), "admin@kleinsmith.co.za", "admin123")
	require.NoError(t, err)

	staffToken, _, err := svc.Login(context.Background(), "staff@kleinsmith.co.za", "staff123")
	require.NoError(t, err)

	t.Run("admin allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+adminToken)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("staff forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+staffToken)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
