package transfers

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bochaco/stableset-net/internal/pkg/types"
	"github.com/bochaco/stableset-net/internal/pkg/validator"

	"golang.org/x/crypto/nacl/box"
)

var (
	// ErrNotAddressedToKey is the expected negative outcome of verification:
	// the ciphertext does not open with the holder key, either because the
	// transfer targets a different recipient or because the blob is not a
	// well-formed sealed box. Callers log and move on.
	ErrNotAddressedToKey = errors.New("transfer is invalid or not addressed to this key")

	// ErrRoyaltyTransfer marks a network royalty arriving through the
	// notification channel. Royalties are unencrypted and always conveyed
	// through the plaintext transfer path, so they carry no value here.
	ErrRoyaltyTransfer = errors.New("network royalty transfers are not convertible via notifications")

	// ErrMalformedTransfer is a hard verification failure: the transfer
	// opened for the holder key but its internal encoding is broken.
	ErrMalformedTransfer = errors.New("malformed transfer payload")
)

// Transfer is a value-movement record as broadcast on the network, before
// ownership is established. Exactly one of the two variants is set:
// Encrypted (recipient-specific sealed ciphertext) or NetworkRoyalties
// (an unencrypted blob). Immutable.
type Transfer struct {
	Encrypted        []byte `json:"encrypted,omitempty"`
	NetworkRoyalties []byte `json:"network_royalties,omitempty"`
}

// IsEncrypted reports whether the transfer carries sealed ciphertext.
func (t Transfer) IsEncrypted() bool {
	return len(t.Encrypted) > 0
}

// IsNetworkRoyalties reports whether the transfer is a network royalty.
func (t Transfer) IsNetworkRoyalties() bool {
	return len(t.NetworkRoyalties) > 0
}

// NoteClaim describes a single cash note carried inside an encrypted
// transfer. It is the send-side input to Seal; on the receiving side claims
// only become CashNotes through VerifyAndUnpack.
type NoteClaim struct {
	UniquePubkey string           `json:"unique_pubkey" validate:"required,len=64,hexadecimal"`
	Value        types.NanoTokens `json:"value" validate:"required"`
}

// Seal encrypts the given note claims to the recipient public key, producing
// an Encrypted transfer that only the matching holder key can unpack. An
// encrypted transfer may bundle multiple notes.
func Seal(recipientPublicKey []byte, claims []NoteClaim) (Transfer, error) {
	if len(recipientPublicKey) != holderKeySize {
		return Transfer{}, fmt.Errorf("recipient public key must be %d bytes, got %d", holderKeySize, len(recipientPublicKey))
	}

	if len(claims) == 0 {
		return Transfer{}, errors.New("a transfer must carry at least one note claim")
	}

	for _, claim := range claims {
		if err := validator.Validate(claim); err != nil {
			return Transfer{}, err
		}
	}

	plaintext, err := json.Marshal(claims)
	if err != nil {
		return Transfer{}, err
	}

	var recipient [holderKeySize]byte
	copy(recipient[:], recipientPublicKey)

	sealed, err := box.SealAnonymous(nil, plaintext, &recipient, rand.Reader)
	if err != nil {
		return Transfer{}, err
	}

	return Transfer{Encrypted: sealed}, nil
}

// NewNetworkRoyaltiesTransfer wraps an unencrypted royalty blob. The blob
// stays opaque to this package.
func NewNetworkRoyaltiesTransfer(blob []byte) Transfer {
	return Transfer{NetworkRoyalties: blob}
}

// VerifyAndUnpack attempts to establish ownership of a transfer with the
// holder's private key and, on success, converts it into one or more
// CashNotes. The operation is pure: persistence and ledger mutation happen
// after, in the caller.
//
// Outcomes:
//   - Encrypted transfer that opens with the key: the contained notes.
//   - Encrypted transfer that does not open (different recipient, or a blob
//     that is not a valid sealed box): ErrNotAddressedToKey.
//   - NetworkRoyalties transfer: ErrRoyaltyTransfer, never a deposit.
//   - Transfer that opens but carries a broken inner encoding:
//     ErrMalformedTransfer.
func VerifyAndUnpack(t Transfer, holder *HolderKey) ([]CashNote, error) {
	if t.IsNetworkRoyalties() {
		return nil, ErrRoyaltyTransfer
	}

	if !t.IsEncrypted() {
		return nil, fmt.Errorf("%w: transfer carries no ciphertext", ErrMalformedTransfer)
	}

	plaintext, ok := box.OpenAnonymous(nil, t.Encrypted, &holder.publicKey, &holder.privateKey)
	if !ok {
		return nil, ErrNotAddressedToKey
	}

	var claims []NoteClaim
	if err := json.Unmarshal(plaintext, &claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTransfer, err)
	}

	notes := make([]CashNote, 0, len(claims))
	for _, claim := range claims {
		if err := validator.Validate(claim); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedTransfer, err)
		}

		pubkey, err := hex.DecodeString(claim.UniquePubkey)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedTransfer, err)
		}

		notes = append(notes, CashNote{
			uniquePubkey: pubkey,
			value:        claim.Value,
		})
	}

	return notes, nil
}
