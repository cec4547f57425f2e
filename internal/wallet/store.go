package wallet

import (
	"context"
	"errors"
	"sync"
)

// ErrStateNotFound is returned by Load when no state has ever been saved for
// the holder. The ledger treats it as a fresh, empty wallet.
var ErrStateNotFound = errors.New("no wallet state found for holder")

// BackingStore is the durable persistence behind a wallet ledger. It is
// assumed crash-consistent at the granularity of one Save call; Save
// overwrites any previous state for the holder.
type BackingStore interface {
	// Load returns the last saved state for the holder, or ErrStateNotFound.
	Load(ctx context.Context, holderFingerprint string) (State, error)

	// Save durably records the holder's state, replacing the previous one.
	Save(ctx context.Context, holderFingerprint string, state State) error
}

// memoryStore is a process-local BackingStore for ephemeral sessions and
// tests. Short-lived wallets that never need to survive the process use it
// instead of an external store.
type memoryStore struct {
	mu     sync.RWMutex
	states map[string]State
}

// NewMemoryStore returns an empty in-memory BackingStore.
func NewMemoryStore() *memoryStore {
	return &memoryStore{
		states: make(map[string]State),
	}
}

func (m *memoryStore) Load(ctx context.Context, holderFingerprint string) (State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, ok := m.states[holderFingerprint]
	if !ok {
		return State{}, ErrStateNotFound
	}
	return state.clone(), nil
}

func (m *memoryStore) Save(ctx context.Context, holderFingerprint string, state State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.states[holderFingerprint] = state.clone()
	return nil
}

var _ BackingStore = (*memoryStore)(nil)
