package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hasher := NewHasher("pepper")

	hash, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, hasher.Verify("correct horse battery staple", hash))
	assert.False(t, hasher.Verify("wrong password", hash))
}

func TestVerifyWithDifferentSecret(t *testing.T) {
	hash, err := NewHasher("pepper").Hash("password123")
	require.NoError(t, err)

	// Тот же пароль, но другой секрет процесса.
	assert.False(t, NewHasher("other-pepper").Verify("password123", hash))
}

func TestVerifyMalformedHash(t *testing.T) {
	hasher := NewHasher("pepper")

	assert.False(t, hasher.Verify("password123", "not-a-bcrypt-hash"))
	assert.False(t, hasher.Verify("password123", ""))
}

func TestHashIsSalted(t *testing.T) {
	hasher := NewHasher("pepper")

	first, err := hasher.Hash("password123")
	require.NoError(t, err)
	second, err := hasher.Hash("password123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Verify("password123", first))
	assert.True(t, hasher.Verify("password123", second))
}
