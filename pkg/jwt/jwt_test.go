package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewManager("secret", 15*time.Minute, time.Hour)

	token, err := m.GenerateAccessToken("user-1", "a@example.com", "user")
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "access", claims.Type)
}

func TestTokenTypeEnforced(t *testing.T) {
	m := NewManager("secret", 15*time.Minute, time.Hour)

	access, err := m.GenerateAccessToken("user-1", "a@example.com", "user")
	require.NoError(t, err)
	refresh, err := m.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	_, err = m.ValidateRefreshToken(access)
	assert.Error(t, err)
	_, err = m.ValidateAccessToken(refresh)
	assert.Error(t, err)
}

func TestWrongSecretRejected(t *testing.T) {
	issuer := NewManager("secret-a", 15*time.Minute, time.Hour)
	verifier := NewManager("secret-b", 15*time.Minute, time.Hour)

	token, err := issuer.GenerateAccessToken("user-1", "a@example.com", "user")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	m := NewManager("secret", -time.Minute, time.Hour)

	token, err := m.GenerateAccessToken("user-1", "a@example.com", "user")
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.Error(t, err)
}
