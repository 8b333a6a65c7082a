package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripforge/backend/internal/auth"
	"github.com/tripforge/backend/internal/domain"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestJWTManager_RoundTrip(t *testing.T) {
	m := auth.NewJWTManager(testSecret, "tripforge", time.Hour)
	userID := uuid.New()

	token, err := m.GenerateAccessToken(userID, domain.RoleAdmin)
	require.NoError(t, err)

	p, err := m.ValidateAccessToken(token)

	require.NoError(t, err)
	assert.Equal(t, userID, p.UserID)
	assert.Equal(t, domain.RoleAdmin, p.Role)
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	m := auth.NewJWTManager(testSecret, "tripforge", -time.Minute)

	token, err := m.GenerateAccessToken(uuid.New(), domain.RoleUser)
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	issuer := auth.NewJWTManager(testSecret, "tripforge", time.Hour)
	validator := auth.NewJWTManager("another-secret-another-secret!!!", "tripforge", time.Hour)

	token, err := issuer.GenerateAccessToken(uuid.New(), domain.RoleUser)
	require.NoError(t, err)

	_, err = validator.ValidateAccessToken(token)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestJWTManager_WrongIssuer(t *testing.T) {
	issuer := auth.NewJWTManager(testSecret, "someone-else", time.Hour)
	validator := auth.NewJWTManager(testSecret, "tripforge", time.Hour)

	token, err := issuer.GenerateAccessToken(uuid.New(), domain.RoleUser)
	require.NoError(t, err)

	_, err = validator.ValidateAccessToken(token)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestJWTManager_GarbageToken(t *testing.T) {
	m := auth.NewJWTManager(testSecret, "tripforge", time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := m.ValidateAccessToken(token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	}
}

func TestJWTManager_UnknownRoleFallsBackToUser(t *testing.T) {
	m := auth.NewJWTManager(testSecret, "tripforge", time.Hour)

	token, err := m.GenerateAccessToken(uuid.New(), domain.Role("superuser"))
	require.NoError(t, err)

	p, err := m.ValidateAccessToken(token)

	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, p.Role)
}
