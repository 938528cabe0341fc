package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpaqueTokenRoundTrip(t *testing.T) {
	tok, err := GenerateOpaqueToken()
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	hash := HashOpaqueToken(tok)
	assert.True(t, VerifyOpaqueToken(tok, hash))
	assert.False(t, VerifyOpaqueToken("another", hash))
}

func TestOpaqueTokensUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		tok, err := GenerateOpaqueToken()
		require.NoError(t, err)

		_, dup := seen[tok]
		require.False(t, dup)
		seen[tok] = struct{}{}
	}
}

func TestSignedTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	issued := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	tok, err := GenerateSignedToken(42, secret, 15*time.Minute, issued)
	require.NoError(t, err)

	userID, err := VerifySignedToken(tok, secret, func() time.Time { return issued.Add(time.Minute) })
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
}

func TestSignedTokenExpired(t *testing.T) {
	secret := []byte("test-secret")
	issued := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	tok, err := GenerateSignedToken(42, secret, 15*time.Minute, issued)
	require.NoError(t, err)

	_, err = VerifySignedToken(tok, secret, func() time.Time { return issued.Add(16 * time.Minute) })
	assert.Error(t, err)
}

func TestSignedTokenWrongSecret(t *testing.T) {
	issued := time.Now()

	tok, err := GenerateSignedToken(42, []byte("secret-one"), 15*time.Minute, issued)
	require.NoError(t, err)

	_, err = VerifySignedToken(tok, []byte("secret-two"), time.Now)
	assert.Error(t, err)
}

func TestSignedTokenMalformed(t *testing.T) {
	_, err := VerifySignedToken("not-a-token", []byte("secret"), time.Now)
	assert.Error(t, err)
}
