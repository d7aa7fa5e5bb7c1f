package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundtrip(t *testing.T) {
	auth := NewAuthService("test-secret", time.Hour)

	hash, err := auth.HashPassword("s3cure-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cure-pass", hash)

	assert.True(t, auth.CheckPassword(hash, "s3cure-pass"))
	assert.False(t, auth.CheckPassword(hash, "wrong-pass"))
}

func TestTokenRoundtrip(t *testing.T) {
	auth := NewAuthService("test-secret", time.Hour)

	token, err := auth.GenerateToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := auth.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewAuthService("issuer-secret", time.Hour)
	verifier := NewAuthService("other-secret", time.Hour)

	token, err := issuer.GenerateToken(7)
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	auth := NewAuthService("test-secret", -time.Minute)

	token, err := auth.GenerateToken(7)
	require.NoError(t, err)

	_, err = auth.ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	auth := NewAuthService("test-secret", time.Hour)

	_, err := auth.ParseToken("not-a-token")
	assert.Error(t, err)
}
