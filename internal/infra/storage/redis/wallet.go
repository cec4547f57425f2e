package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bochaco/stableset-net/internal/pkg/types"
	"github.com/bochaco/stableset-net/internal/wallet"

	"github.com/redis/go-redis/v9"
)

// walletKeyPrefix is the base key namespace for persisted wallet states.
const walletKeyPrefix = "wallet"

// walletStateKey returns the Redis key holding the serialized wallet state
// of one holder.
//
// Format: "wallet:state:{holderFingerprint}"
func walletStateKey(holderFingerprint string) string {
	return fmt.Sprintf("%s:state:%s", walletKeyPrefix, holderFingerprint)
}

// Load implements the wallet.BackingStore interface. It returns
// wallet.ErrStateNotFound when no state has been saved for the holder yet.
func (c *client) Load(ctx context.Context, holderFingerprint string) (wallet.State, error) {
	raw, err := c.conn.Get(ctx, walletStateKey(holderFingerprint)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return wallet.State{}, wallet.ErrStateNotFound
		}
		return wallet.State{}, err
	}

	var state wallet.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return wallet.State{}, err
	}

	if state.ReceivedNotes == nil {
		state.ReceivedNotes = types.NewSet[string]()
	}

	return state, nil
}

// Save implements the wallet.BackingStore interface. Each call overwrites
// the previously saved state in a single SET, so persistence is
// crash-consistent at the granularity of one save.
func (c *client) Save(ctx context.Context, holderFingerprint string, state wallet.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}

	return c.conn.Set(ctx, walletStateKey(holderFingerprint), raw, 0).Err()
}

// Compile-time assertion that *client satisfies wallet.BackingStore.
var _ wallet.BackingStore = new(client)
