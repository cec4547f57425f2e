// Package nodeevent decodes opaque event payloads received from a node's
// notification stream into typed domain events. Payloads that could be any
// of several event kinds are parsed discriminant-first; kinds this version
// does not know about decode into an explicit Unknown variant so newer peers
// never break the stream.
package nodeevent

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bochaco/stableset-net/internal/transfers"
)

// ErrMalformedEvent is returned for payloads that cannot be decoded at all.
// A malformed payload never aborts stream processing; callers log and skip.
var ErrMalformedEvent = errors.New("malformed node event payload")

// Kind discriminates the event variants carried on the stream.
type Kind string

const (
	// KindTransferNotif is a notification that transfers addressed to a
	// registered key were observed on the network.
	KindTransferNotif Kind = "TransferNotif"

	// KindUnknown covers every event kind this version does not model.
	KindUnknown Kind = "Unknown"
)

// TransferNotif is the payload of a transfer notification: the fingerprint
// of the recipient key the peer matched, plus the raw transfers as broadcast.
type TransferNotif struct {
	RecipientFingerprint string               `json:"recipient_fingerprint"`
	Transfers            []transfers.Transfer `json:"transfers"`
}

// Event is a decoded stream item, immutable once constructed. Exactly one
// variant field is populated according to Kind.
type Event struct {
	Kind Kind

	// TransferNotif is set when Kind is KindTransferNotif.
	TransferNotif *TransferNotif

	// Raw preserves the payload of unknown event kinds.
	Raw json.RawMessage
}

// envelope is the discriminant-first wire form of an event.
type envelope struct {
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// Decode parses an opaque payload into an Event. It never panics on
// malformed input: any undecodable payload yields an error wrapping
// ErrMalformedEvent. Unrecognized kinds decode successfully into an Unknown
// event.
func Decode(data []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}

	if env.Kind == "" {
		return Event{}, fmt.Errorf("%w: missing event kind", ErrMalformedEvent)
	}

	switch Kind(env.Kind) {
	case KindTransferNotif:
		var notif TransferNotif
		if err := json.Unmarshal(env.Payload, &notif); err != nil {
			return Event{}, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
		}
		return Event{Kind: KindTransferNotif, TransferNotif: &notif}, nil

	default:
		return Event{Kind: KindUnknown, Raw: env.Payload}, nil
	}
}

// EncodeTransferNotif serializes a transfer notification into the wire form
// accepted by Decode. It is the producer-side counterpart used by the
// notification publisher and by tests.
func EncodeTransferNotif(notif TransferNotif) ([]byte, error) {
	payload, err := json.Marshal(notif)
	if err != nil {
		return nil, err
	}

	return json.Marshal(envelope{
		Kind:    string(KindTransferNotif),
		Payload: payload,
	})
}
