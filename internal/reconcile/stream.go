package reconcile

import "context"

// NotificationSource is the external transport delivering opaque node-event
// payloads for a holder key. Connection setup, liveness, and reconnect
// policy all live behind this interface.
type NotificationSource interface {
	// RegisterFilter asks the peer to forward only transfer notifications
	// addressed to the given holder public key. Called once before
	// subscribing.
	RegisterFilter(ctx context.Context, holderPublicKey []byte) error

	// Subscribe opens the event stream for the given holder public key. The
	// returned channel closes when the stream ends, gracefully or not.
	Subscribe(ctx context.Context, holderPublicKey []byte) (<-chan []byte, error)
}
