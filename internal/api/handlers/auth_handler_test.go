package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/clinic-backend/internal/adapters/memory"
	"github.com/clinicore/clinic-backend/internal/api/handlers"
	"github.com/clinicore/clinic-backend/internal/application/services"
)

func newAuthHandler() *handlers.AuthHandler {
	users := memory.NewUserAdapter()
	svc := services.NewAuthService(users, "test-secret", time.Hour)
	return handlers.NewAuthHandler(svc)
}

func postJSON(t *testing.T, handler http.HandlerFunc, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestAuthHandler_Register_Patient(t *testing.T) {
	h := newAuthHandler()

	rec := postJSON(t, h.Register, "/api/auth/register", map[string]string{
		"email":    "jane@example.com",
		"password": "secret",
		"name":     "Jane Smith",
		"role":     "patient",
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		User  map[string]interface{} `json:"user"`
		Token string                 `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "jane@example.com", resp.User["email"])
	assert.NotContains(t, rec.Body.String(), "password_hash")
}

func TestAuthHandler_Register_InvalidRole(t *testing.T) {
	h := newAuthHandler()

	rec := postJSON(t, h.Register, "/api/auth/register", map[string]string{
		"email":    "root@example.com",
		"password": "secret",
		"name":     "Root",
		"role":     "admin",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	h := newAuthHandler()
	body := map[string]string{
		"email":    "jane@example.com",
		"password": "secret",
		"name":     "Jane Smith",
		"role":     "patient",
	}

	rec := postJSON(t, h.Register, "/api/auth/register", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, h.Register, "/api/auth/register", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := newAuthHandler()

	rec := postJSON(t, h.Login, "/api/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "whatever",
	})

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "invalid credentials", resp["error"])
}

func TestAuthHandler_Login_Success(t *testing.T) {
	h := newAuthHandler()

	rec := postJSON(t, h.Register, "/api/auth/register", map[string]string{
		"email":    "jane@example.com",
		"password": "secret",
		"name":     "Jane Smith",
		"role":     "patient",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, h.Login, "/api/auth/login", map[string]string{
		"email":    "jane@example.com",
		"password": "secret",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
}

func TestAuthHandler_Register_MalformedBody(t *testing.T) {
	h := newAuthHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader([]byte("{")))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
