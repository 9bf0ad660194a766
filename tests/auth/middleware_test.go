package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gustmic/consulting-crm-api/internal/auth"
	"github.com/gustmic/consulting-crm-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestMiddleware(apiKey string) (*auth.Middleware, *auth.TokenManager) {
	cfg := &config.Config{}
	cfg.ApiKey.Value = apiKey
	tokens := newTokenManager("test-secret-at-least-32-characters-long")
	return auth.NewMiddleware(cfg, tokens, zap.NewNop()), tokens
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate_ValidToken(t *testing.T) {
	mw, tokens := newTestMiddleware("")
	token, err := tokens.IssueToken(testUser(), time.Now().UTC())
	require.NoError(t, err)

	var captured *auth.UserContext
	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = auth.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/contacts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)
	assert.Equal(t, "admin@gustmic.io", captured.Email)
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	mw, _ := newTestMiddleware("")
	handler := mw.Authenticate(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/contacts", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	mw, _ := newTestMiddleware("")
	handler := mw.Authenticate(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/contacts", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	mw, _ := newTestMiddleware("")
	handler := mw.Authenticate(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/contacts", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAPIKey_CorrectKey(t *testing.T) {
	mw, _ := newTestMiddleware("system-key")
	handler := mw.RequireAPIKey(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/provision", nil)
	req.Header.Set("x-api-key", "system-key")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAPIKey_WrongOrMissingKey(t *testing.T) {
	mw, _ := newTestMiddleware("system-key")
	handler := mw.RequireAPIKey(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/provision", nil)
	req.Header.Set("x-api-key", "guess")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/provision", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAPIKey_EmptyConfiguredKeyRejectsEverything(t *testing.T) {
	mw, _ := newTestMiddleware("")
	handler := mw.RequireAPIKey(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/provision", nil)
	req.Header.Set("x-api-key", "")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	mw, tokens := newTestMiddleware("")

	chain := mw.Authenticate(mw.RequireAdmin(okHandler()))

	adminToken, err := tokens.IssueToken(testUser(), time.Now().UTC())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/contacts", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	plain := testUser()
	plain.Roles = nil
	plainToken, err := tokens.IssueToken(plain, time.Now().UTC())
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/contacts", nil)
	req.Header.Set("Authorization", "Bearer "+plainToken)
	rec = httptest.NewRecorder()
	chain.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
