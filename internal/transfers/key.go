// Package transfers holds the value-transfer domain: holder keys, transfers
// as broadcast on the network, and the verification step that turns an
// encrypted transfer into spendable cash notes.
package transfers

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/nacl/box"
)

// holderKeySize is the byte length of both halves of a holder keypair.
const holderKeySize = 32

// ErrMalformedHolderKey is returned when a holder secret key cannot be parsed.
// Supplying a malformed key is fatal at session startup.
var ErrMalformedHolderKey = errors.New("malformed holder secret key")

// HolderKey is the asymmetric keypair identifying the party entitled to
// receive and decrypt transfers. It is supplied once at startup and never
// mutated; the public half is registered as the notification filter.
type HolderKey struct {
	publicKey  [holderKeySize]byte
	privateKey [holderKeySize]byte
}

// GenerateHolderKey creates a fresh holder keypair from crypto/rand.
func GenerateHolderKey() (*HolderKey, error) {
	pub, priv, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}

	return &HolderKey{
		publicKey:  *pub,
		privateKey: *priv,
	}, nil
}

// HolderKeyFromHex parses a hex-encoded 32-byte secret key and derives its
// public half. It returns an error wrapping ErrMalformedHolderKey if the
// input is not valid hex or has the wrong length.
func HolderKeyFromHex(s string) (*HolderKey, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedHolderKey, err)
	}

	if len(raw) != holderKeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrMalformedHolderKey, holderKeySize, len(raw))
	}

	pub, err := curve25519.X25519(raw, curve25519.Basepoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedHolderKey, err)
	}

	var key HolderKey
	copy(key.privateKey[:], raw)
	copy(key.publicKey[:], pub)
	return &key, nil
}

// SecretKeyHex returns the hex encoding of the private half.
func (k *HolderKey) SecretKeyHex() string {
	return hex.EncodeToString(k.privateKey[:])
}

// PublicKeyBytes returns a copy of the public half.
func (k *HolderKey) PublicKeyBytes() []byte {
	pub := make([]byte, holderKeySize)
	copy(pub, k.publicKey[:])
	return pub
}

// PublicKeyHex returns the hex encoding of the public half.
func (k *HolderKey) PublicKeyHex() string {
	return hex.EncodeToString(k.publicKey[:])
}

// Fingerprint returns the hex-encoded sha256 digest of the public key. It is
// the identifier used in notification payloads and storage keys.
func (k *HolderKey) Fingerprint() string {
	sum := sha256.Sum256(k.publicKey[:])
	return hex.EncodeToString(sum[:])
}
