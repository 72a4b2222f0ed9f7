package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, salt, err := HashPassword("hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	require.NotEmpty(t, salt)

	assert.True(t, VerifyPassword("hunter2", hash, salt))
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	hash, salt, err := HashPassword("hunter2")
	require.NoError(t, err)

	assert.False(t, VerifyPassword("hunter3", hash, salt))
	assert.False(t, VerifyPassword("", hash, salt))
	assert.False(t, VerifyPassword("hunter2 ", hash, salt))
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	hash1, salt1, err := HashPassword("samepassword")
	require.NoError(t, err)
	hash2, salt2, err := HashPassword("samepassword")
	require.NoError(t, err)

	// Same plaintext must not produce the same salt or hash twice.
	assert.NotEqual(t, salt1, salt2)
	assert.NotEqual(t, hash1, hash2)

	// Each pair still verifies independently.
	assert.True(t, VerifyPassword("samepassword", hash1, salt1))
	assert.True(t, VerifyPassword("samepassword", hash2, salt2))

	// But pairs are not interchangeable.
	assert.False(t, VerifyPassword("samepassword", hash1, salt2))
}

func TestHashPassword_SaltLength(t *testing.T) {
	_, salt, err := HashPassword("x")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(salt), 32)
}

func TestVerifyPassword_MismatchedLengths(t *testing.T) {
	hash, salt, err := HashPassword("hunter2")
	require.NoError(t, err)

	// Truncated or empty inputs compare unequal without panicking.
	assert.False(t, VerifyPassword("hunter2", hash[:10], salt))
	assert.False(t, VerifyPassword("hunter2", nil, salt))
	assert.False(t, VerifyPassword("hunter2", hash, nil))
}

func TestVerifyPassword_TamperedHash(t *testing.T) {
	hash, salt, err := HashPassword("hunter2")
	require.NoError(t, err)

	tampered := make([]byte, len(hash))
	copy(tampered, hash)
	tampered[0] ^= 0x01

	assert.False(t, VerifyPassword("hunter2", tampered, salt))
}
