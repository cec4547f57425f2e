package transfers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noteID returns a deterministic 64-char hex note identifier for tests.
func noteID(fill string) string {
	return strings.Repeat(fill, 64/len(fill))
}

func TestSeal(t *testing.T) {
	holder, err := GenerateHolderKey()
	require.NoError(t, err)

	t.Run("rejects a recipient key of the wrong size", func(t *testing.T) {
		_, err := Seal([]byte{0x01, 0x02}, []NoteClaim{{UniquePubkey: noteID("ab"), Value: 1}})
		assert.Error(t, err)
	})

	t.Run("rejects an empty claim list", func(t *testing.T) {
		_, err := Seal(holder.PublicKeyBytes(), nil)
		assert.Error(t, err)
	})

	t.Run("rejects a claim with no value", func(t *testing.T) {
		_, err := Seal(holder.PublicKeyBytes(), []NoteClaim{{UniquePubkey: noteID("ab"), Value: 0}})
		assert.Error(t, err)
	})

	t.Run("rejects a claim with a malformed note pubkey", func(t *testing.T) {
		_, err := Seal(holder.PublicKeyBytes(), []NoteClaim{{UniquePubkey: "zz", Value: 1}})
		assert.Error(t, err)
	})

	t.Run("produces an encrypted transfer", func(t *testing.T) {
		transfer, err := Seal(holder.PublicKeyBytes(), []NoteClaim{{UniquePubkey: noteID("ab"), Value: 5}})
		require.NoError(t, err)

		assert.True(t, transfer.IsEncrypted())
		assert.False(t, transfer.IsNetworkRoyalties())
	})
}

func TestVerifyAndUnpack(t *testing.T) {
	holder, err := GenerateHolderKey()
	require.NoError(t, err)

	t.Run("unpacks a transfer sealed to the holder key", func(t *testing.T) {
		transfer, err := Seal(holder.PublicKeyBytes(), []NoteClaim{
			{UniquePubkey: noteID("ab"), Value: 5},
		})
		require.NoError(t, err)

		notes, err := VerifyAndUnpack(transfer, holder)
		require.NoError(t, err)

		require.Len(t, notes, 1)
		assert.Equal(t, noteID("ab"), notes[0].UniquePubkey())
		assert.EqualValues(t, 5, notes[0].Value())
	})

	t.Run("unpacks multiple bundled notes in order", func(t *testing.T) {
		transfer, err := Seal(holder.PublicKeyBytes(), []NoteClaim{
			{UniquePubkey: noteID("ab"), Value: 5},
			{UniquePubkey: noteID("cd"), Value: 7},
		})
		require.NoError(t, err)

		notes, err := VerifyAndUnpack(transfer, holder)
		require.NoError(t, err)

		require.Len(t, notes, 2)
		assert.Equal(t, noteID("ab"), notes[0].UniquePubkey())
		assert.Equal(t, noteID("cd"), notes[1].UniquePubkey())
	})

	t.Run("transfer sealed to a different key yields no notes", func(t *testing.T) {
		other, err := GenerateHolderKey()
		require.NoError(t, err)

		transfer, err := Seal(other.PublicKeyBytes(), []NoteClaim{
			{UniquePubkey: noteID("ab"), Value: 5},
		})
		require.NoError(t, err)

		notes, err := VerifyAndUnpack(transfer, holder)
		assert.ErrorIs(t, err, ErrNotAddressedToKey)
		assert.Empty(t, notes)
	})

	t.Run("garbage ciphertext yields the same negative outcome", func(t *testing.T) {
		transfer := Transfer{Encrypted: []byte("definitely not a sealed box")}

		notes, err := VerifyAndUnpack(transfer, holder)
		assert.ErrorIs(t, err, ErrNotAddressedToKey)
		assert.Empty(t, notes)
	})

	t.Run("network royalty never produces a cash note", func(t *testing.T) {
		transfer := NewNetworkRoyaltiesTransfer([]byte("royalty blob"))

		notes, err := VerifyAndUnpack(transfer, holder)
		assert.ErrorIs(t, err, ErrRoyaltyTransfer)
		assert.Empty(t, notes)
	})

	t.Run("transfer with neither variant set is malformed", func(t *testing.T) {
		notes, err := VerifyAndUnpack(Transfer{}, holder)
		assert.ErrorIs(t, err, ErrMalformedTransfer)
		assert.Empty(t, notes)
	})
}

func TestCashNote(t *testing.T) {
	holder, err := GenerateHolderKey()
	require.NoError(t, err)

	transfer, err := Seal(holder.PublicKeyBytes(), []NoteClaim{
		{UniquePubkey: noteID("ab"), Value: 5},
	})
	require.NoError(t, err)

	notes, err := VerifyAndUnpack(transfer, holder)
	require.NoError(t, err)
	require.Len(t, notes, 1)

	note := notes[0]

	t.Run("content address is stable", func(t *testing.T) {
		assert.Equal(t, note.ContentAddress(), note.ContentAddress())
	})

	t.Run("encoding is deterministic", func(t *testing.T) {
		first, err := note.MarshalHex()
		require.NoError(t, err)

		second, err := note.MarshalHex()
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.NotEmpty(t, first)
	})

	t.Run("same note claim from a fresh seal has the same identity", func(t *testing.T) {
		again, err := Seal(holder.PublicKeyBytes(), []NoteClaim{
			{UniquePubkey: noteID("ab"), Value: 5},
		})
		require.NoError(t, err)

		reNotes, err := VerifyAndUnpack(again, holder)
		require.NoError(t, err)
		require.Len(t, reNotes, 1)

		assert.Equal(t, note.UniquePubkey(), reNotes[0].UniquePubkey())
		assert.Equal(t, note.ContentAddress(), reNotes[0].ContentAddress())
	})
}
