package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	token, err := m.GenerateToken(7, "editor", true, false)
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), claims.UserID)
	assert.Equal(t, "editor", claims.Username)
	assert.True(t, claims.IsStaff)
	assert.False(t, claims.IsSuperuser)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenRejectsOtherSecretAndExpiry(t *testing.T) {
	token, err := NewTokenManager("secret", time.Hour).GenerateToken(1, "a", true, true)
	require.NoError(t, err)

	_, err = NewTokenManager("other", time.Hour).ValidateToken(token)
	assert.Error(t, err)

	expired := NewTokenManager("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = expired.ValidateToken(token)
	assert.Error(t, err)
}

func TestExtractSignature(t *testing.T) {
	sig, err := ExtractSignature("a.b.c")
	require.NoError(t, err)
	assert.Equal(t, "c", sig)

	_, err = ExtractSignature("a.b")
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)
	assert.NoError(t, CheckPasswordHash("s3cret!", hash))
	assert.ErrorIs(t, CheckPasswordHash("wrong", hash), ErrInvalidCredentials)
	assert.ErrorIs(t, CheckPasswordHash("x", ""), ErrInvalidCredentials)

	_, err = HashPassword("")
	assert.Error(t, err)
}
