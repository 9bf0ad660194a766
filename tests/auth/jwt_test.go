package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gustmic/consulting-crm-api/internal/auth"
	"github.com/gustmic/consulting-crm-api/internal/config"
	"github.com/gustmic/consulting-crm-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenManager(secret string) *auth.TokenManager {
	return auth.NewTokenManager(&config.AuthConfig{
		JWTSecret:       secret,
		TokenTTLMinutes: 60,
	}, "crm-test")
}

func testUser() *domain.User {
	user := &domain.User{
		Email:       "admin@gustmic.io",
		DisplayName: "Administrator",
	}
	user.ID = uuid.New()
	user.Roles = []domain.UserRole{{UserID: user.ID, Role: domain.RoleAdmin}}
	return user
}

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := newTokenManager("test-secret-at-least-32-characters-long")
	user := testUser()

	token, err := tm.IssueToken(user, time.Now().UTC())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	uc, err := tm.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, user.ID, uc.UserID)
	assert.Equal(t, "admin@gustmic.io", uc.Email)
	assert.Equal(t, "Administrator", uc.DisplayName)
	assert.True(t, uc.IsAdmin())
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	issuer := newTokenManager("test-secret-at-least-32-characters-long")
	validator := newTokenManager("a-completely-different-signing-secret!!")

	token, err := issuer.IssueToken(testUser(), time.Now().UTC())
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenManager_RejectsExpiredToken(t *testing.T) {
	tm := newTokenManager("test-secret-at-least-32-characters-long")

	// Issued two hours ago with a one hour TTL
	token, err := tm.IssueToken(testUser(), time.Now().UTC().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = tm.ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	tm := newTokenManager("test-secret-at-least-32-characters-long")

	_, err := tm.ValidateToken("not.a.token")
	assert.Error(t, err)

	_, err = tm.ValidateToken("")
	assert.Error(t, err)
}

func TestTokenManager_UnknownRolesDropped(t *testing.T) {
	tm := newTokenManager("test-secret-at-least-32-characters-long")

	user := testUser()
	user.Roles = append(user.Roles, domain.UserRole{UserID: user.ID, Role: "superuser"})

	token, err := tm.IssueToken(user, time.Now().UTC())
	require.NoError(t, err)

	uc, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, []domain.UserRoleType{domain.RoleAdmin}, uc.Roles)
}
