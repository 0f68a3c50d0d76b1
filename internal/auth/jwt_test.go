package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *JWTManager {
	return NewJWTManager("test-access-secret", "test-refresh-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateAccessToken("user-1", "test@example.com", "customer", "store-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.Equal(t, "customer", claims.Role)
	assert.Equal(t, "store-1", claims.StoreID)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestGenerateAndValidateRefreshToken(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	claims, err := m.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestAccessTokenRejectedAsRefreshToken(t *testing.T) {
	m := newTestManager()

	access, err := m.GenerateAccessToken("user-1", "test@example.com", "customer", "")
	require.NoError(t, err)

	_, err = m.ValidateRefreshToken(access)
	assert.Error(t, err)
}

func TestRefreshTokenRejectedAsAccessToken(t *testing.T) {
	m := newTestManager()

	refresh, err := m.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(refresh)
	assert.Error(t, err)
}

func TestValidateAccessTokenExpired(t *testing.T) {
	m := NewJWTManager("test-access-secret", "test-refresh-secret", -time.Minute, 7*24*time.Hour)

	token, err := m.GenerateAccessToken("user-1", "test@example.com", "customer", "")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateAccessTokenWrongSecret(t *testing.T) {
	m := newTestManager()
	other := NewJWTManager("another-access-secret", "another-refresh-secret", 15*time.Minute, 7*24*time.Hour)

	token, err := other.GenerateAccessToken("user-1", "test@example.com", "customer", "")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateAccessTokenGarbage(t *testing.T) {
	m := newTestManager()

	_, err := m.ValidateAccessToken("not-a-token")
	assert.Error(t, err)
}
