package transfers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateHolderKey(t *testing.T) {
	t.Run("generates distinct keypairs", func(t *testing.T) {
		a, err := GenerateHolderKey()
		require.NoError(t, err)

		b, err := GenerateHolderKey()
		require.NoError(t, err)

		assert.NotEqual(t, a.SecretKeyHex(), b.SecretKeyHex())
		assert.NotEqual(t, a.PublicKeyHex(), b.PublicKeyHex())
		assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
	})

	t.Run("hex encodings have the expected length", func(t *testing.T) {
		key, err := GenerateHolderKey()
		require.NoError(t, err)

		assert.Len(t, key.SecretKeyHex(), 64)
		assert.Len(t, key.PublicKeyHex(), 64)
		assert.Len(t, key.Fingerprint(), 64)
	})
}

func TestHolderKeyFromHex(t *testing.T) {
	t.Run("round-trips a generated key", func(t *testing.T) {
		original, err := GenerateHolderKey()
		require.NoError(t, err)

		parsed, err := HolderKeyFromHex(original.SecretKeyHex())
		require.NoError(t, err)

		assert.Equal(t, original.SecretKeyHex(), parsed.SecretKeyHex())
		assert.Equal(t, original.PublicKeyHex(), parsed.PublicKeyHex())
		assert.Equal(t, original.Fingerprint(), parsed.Fingerprint())
	})

	t.Run("rejects non-hex input", func(t *testing.T) {
		_, err := HolderKeyFromHex("not-a-hex-string")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedHolderKey)
	})

	t.Run("rejects a key with the wrong length", func(t *testing.T) {
		_, err := HolderKeyFromHex(strings.Repeat("ab", 16))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedHolderKey)
	})

	t.Run("rejects an empty key", func(t *testing.T) {
		_, err := HolderKeyFromHex("")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedHolderKey)
	})
}

func TestHolderKey_PublicKeyBytes(t *testing.T) {
	t.Run("returns a defensive copy", func(t *testing.T) {
		key, err := GenerateHolderKey()
		require.NoError(t, err)

		pub := key.PublicKeyBytes()
		pub[0] ^= 0xff

		assert.NotEqual(t, pub, key.PublicKeyBytes())
	})
}
