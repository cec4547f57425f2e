package transfers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/bochaco/stableset-net/internal/pkg/types"
)

// CashNote is a decrypted, verified unit of value. Instances exist only as
// the output of VerifyAndUnpack: the package exposes no constructor that
// bypasses verification against a holder key. A CashNote is immutable once
// created.
type CashNote struct {
	uniquePubkey []byte
	value        types.NanoTokens
}

// cashNoteRecord is the stable wire/file form of a CashNote.
type cashNoteRecord struct {
	UniquePubkey string           `json:"unique_pubkey"`
	Value        types.NanoTokens `json:"value"`
}

// UniquePubkey returns the hex-encoded unique public key identifying the note.
func (c CashNote) UniquePubkey() string {
	return hex.EncodeToString(c.uniquePubkey)
}

// Value returns the note's monetary value.
func (c CashNote) Value() types.NanoTokens {
	return c.value
}

// ContentAddress derives the fixed-width storage address of the note: the
// sha256 digest of its unique public key. The address is a pure function of
// the note identity, so persisting the same note twice always targets the
// same path.
func (c CashNote) ContentAddress() [sha256.Size]byte {
	return sha256.Sum256(c.uniquePubkey)
}

// MarshalHex returns the note's stable encoding: hex over its canonical JSON
// record. Two calls on the same note produce byte-identical output.
func (c CashNote) MarshalHex() (string, error) {
	record := cashNoteRecord{
		UniquePubkey: c.UniquePubkey(),
		Value:        c.value,
	}

	raw, err := json.Marshal(record)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(raw), nil
}
