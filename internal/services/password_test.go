package services_test

import (
	"strings"
	"testing"

	"bikinibottom/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	hasher := services.NewBcryptHasher()

	for _, plaintext := range []string{"pineapple123", "rock123", "ünïcødé-pässwörd", strings.Repeat("x", 72)} {
		digest, err := hasher.Hash(plaintext)
		require.NoError(t, err)
		assert.NotEqual(t, plaintext, digest)
		assert.True(t, hasher.Verify(plaintext, digest))
		assert.False(t, hasher.Verify(plaintext+"!", digest))
	}
}

func TestBcryptHasher_SaltDiffersPerCall(t *testing.T) {
	hasher := services.NewBcryptHasher()

	first, err := hasher.Hash("clarinet123")
	require.NoError(t, err)
	second, err := hasher.Hash("clarinet123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Verify("clarinet123", first))
	assert.True(t, hasher.Verify("clarinet123", second))
}

func TestBcryptHasher_VerifyGarbageDigest(t *testing.T) {
	hasher := services.NewBcryptHasher()
	assert.False(t, hasher.Verify("pineapple123", "pineapple123"))
	assert.False(t, hasher.Verify("pineapple123", ""))
}
