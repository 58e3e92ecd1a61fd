package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasher_Hash(t *testing.T) {
	t.Run("hash differs from plaintext", func(t *testing.T) {
		h := NewHasher()

		hash, err := h.Hash("secret-password")

		require.NoError(t, err, "failed to hash password")
		assert.NotEmpty(t, hash, "hash is empty")
		assert.NotEqual(t, "secret-password", hash, "hash equals plaintext")
	})

	t.Run("same input yields different hashes", func(t *testing.T) {
		h := NewHasher()

		hash1, err := h.Hash("secret-password")
		require.NoError(t, err, "failed to hash password")
		hash2, err := h.Hash("secret-password")
		require.NoError(t, err, "failed to hash password")

		// bcrypt embeds a random salt per call
		assert.NotEqual(t, hash1, hash2, "two hashes of the same input are identical")
	})
}

func TestHasher_Verify(t *testing.T) {
	t.Run("correct password verifies", func(t *testing.T) {
		h := NewHasher()

		hash, err := h.Hash("secret-password")
		require.NoError(t, err, "failed to hash password")

		ok, err := h.Verify("secret-password", hash)

		assert.NoError(t, err, "verify returned an error")
		assert.True(t, ok, "correct password did not verify")
	})

	t.Run("wrong password does not verify", func(t *testing.T) {
		h := NewHasher()

		hash, err := h.Hash("secret-password")
		require.NoError(t, err, "failed to hash password")

		for _, wrong := range []string{"wrong", "secret-password ", "SECRET-PASSWORD", ""} {
			ok, err := h.Verify(wrong, hash)

			assert.NoError(t, err, "mismatch should not return an error")
			assert.False(t, ok, "wrong password %q verified", wrong)
		}
	})

	t.Run("malformed hash returns error", func(t *testing.T) {
		h := NewHasher()

		ok, err := h.Verify("secret-password", "not-a-bcrypt-hash")

		assert.Error(t, err, "malformed hash should return an error")
		assert.False(t, ok, "malformed hash should not verify")
	})
}
