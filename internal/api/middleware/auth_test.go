package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/clinic-backend/internal/api/middleware"
	"github.com/clinicore/clinic-backend/internal/domain/entities"
	"github.com/clinicore/clinic-backend/internal/infrastructure/auth"
)

const testSecret = "test-secret"

type testParser struct{}

func (testParser) ParseToken(raw string) (*auth.Claims, error) {
	return auth.ParseToken(raw, testSecret)
}

func issueToken(t *testing.T, userID string, role entities.UserRole) string {
	t.Helper()
	token, err := auth.MakeToken(userID, role, testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth_MissingToken(t *testing.T) {
	handler := middleware.RequireAuth(testParser{})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_GarbageToken(t *testing.T) {
	handler := middleware.RequireAuth(testParser{})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_ClaimsReachHandler(t *testing.T) {
	var gotID string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		require.True(t, ok)
		gotID = claims.UserID
		w.WriteHeader(http.StatusOK)
	})
	handler := middleware.RequireAuth(testParser{})(inner)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, "pat-1", entities.RolePatient))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pat-1", gotID)
}

func TestRequireRole_Forbidden(t *testing.T) {
	authed := middleware.RequireAuth(testParser{})
	adminOnly := middleware.RequireRole(entities.RoleAdmin)
	handler := authed(adminOnly(okHandler()))

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, "pat-1", entities.RolePatient))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRole_Allowed(t *testing.T) {
	authed := middleware.RequireAuth(testParser{})
	staffOnly := middleware.RequireRole(entities.RoleAdmin, entities.RoleDoctor)
	handler := authed(staffOnly(okHandler()))

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, "doc-1", entities.RoleDoctor))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	token, err := auth.MakeToken("pat-1", entities.RolePatient, testSecret, -time.Minute)
	require.NoError(t, err)

	handler := middleware.RequireAuth(testParser{})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
