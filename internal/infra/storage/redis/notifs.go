package redis

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/bochaco/stableset-net/internal/pkg/x/chflow"
	"github.com/bochaco/stableset-net/internal/reconcile"
)

// transferNotifsKeyPrefix namespaces every key and channel related to
// transfer notification delivery.
const transferNotifsKeyPrefix = "transfernotifs"

// transferFilterKey is the Redis set of holder public keys that opted in to
// receive transfer notifications.
func transferFilterKey() string {
	return fmt.Sprintf("%s:filters", transferNotifsKeyPrefix)
}

// transferEventsChannel is the pub/sub channel carrying raw node-event
// payloads for one holder public key.
//
// Format: "transfernotifs:events:{hex(holderPublicKey)}"
func transferEventsChannel(holderPublicKey []byte) string {
	return fmt.Sprintf("%s:events:%s", transferNotifsKeyPrefix, hex.EncodeToString(holderPublicKey))
}

// RegisterFilter implements the reconcile.NotificationSource interface by
// adding the holder public key to the opted-in filter set. Idempotent.
func (c *client) RegisterFilter(ctx context.Context, holderPublicKey []byte) error {
	return c.conn.SAdd(ctx, transferFilterKey(), hex.EncodeToString(holderPublicKey)).Err()
}

// Subscribe implements the reconcile.NotificationSource interface. It opens
// a pub/sub subscription on the holder's event channel and pumps raw
// payloads into the returned channel until the context is canceled. The
// returned channel is closed when the subscription ends.
func (c *client) Subscribe(ctx context.Context, holderPublicKey []byte) (<-chan []byte, error) {
	pubsub := c.conn.Subscribe(ctx, transferEventsChannel(holderPublicKey))

	// Confirm the subscription before handing the channel out.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	out := make(chan []byte)
	go func() {
		defer close(out)
		defer pubsub.Close()

		msgCh := pubsub.Channel()
		for {
			msg, ok := chflow.Receive(ctx, msgCh)
			if !ok {
				return
			}

			if ok := chflow.Send(ctx, out, []byte(msg.Payload)); !ok {
				return
			}
		}
	}()

	return out, nil
}

// Compile-time assertion that *client satisfies reconcile.NotificationSource.
var _ reconcile.NotificationSource = new(client)
