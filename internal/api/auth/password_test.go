package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	digest, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(digest, "$2a$"), "expected a bcrypt digest, got %q", digest)
	assert.NotContains(t, digest, "correct horse")
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	first, err := HashPassword("same-password")
	require.NoError(t, err)
	second, err := HashPassword("same-password")
	require.NoError(t, err)
	assert.NotEqual(t, first, second, "bcrypt must salt each digest")

	assert.True(t, VerifyPassword("same-password", first))
	assert.True(t, VerifyPassword("same-password", second))
}

func TestVerifyPassword(t *testing.T) {
	digest, err := HashPassword("s3cret-value")
	require.NoError(t, err)

	assert.True(t, VerifyPassword("s3cret-value", digest))
	assert.False(t, VerifyPassword("wrong-value", digest))
	assert.False(t, VerifyPassword("", digest))
}

func TestVerifyPassword_MalformedDigest(t *testing.T) {
	assert.False(t, VerifyPassword("anything", "not-a-bcrypt-digest"))
	assert.False(t, VerifyPassword("anything", ""))
}
