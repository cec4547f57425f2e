// Package wallet owns a holder's running balance and its set of already
// received cash notes. Deposits are applied exactly once per note identifier
// and persisted through an injected backing store.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bochaco/stableset-net/internal/pkg/types"
	"github.com/bochaco/stableset-net/internal/transfers"
)

// ErrPersistence is returned when the balance/state cannot be durably
// recorded. Re-depositing the same notes after this error is safe: the
// received-note check guarantees no double-counting.
var ErrPersistence = errors.New("wallet state could not be persisted")

// Service is the ledger for a single holder key. One instance per
// reconciliation session; no concurrent mutation from outside the session.
type Service interface {
	// Deposit applies each note's value to the balance exactly once. Notes
	// whose identifier was already recorded are skipped. The batch is
	// all-or-nothing against the backing store: the in-memory state only
	// advances after one successful save covering the whole batch.
	Deposit(ctx context.Context, notes []transfers.CashNote) error

	// Balance returns a read-only snapshot of the current total value.
	Balance(ctx context.Context) (types.NanoTokens, error)
}

// service is the concrete ledger implementation over a BackingStore.
type service struct {
	mu sync.Mutex // serializes state access; the loop is the only writer

	holderFingerprint string
	store             BackingStore

	state  State
	loaded bool
}

var _ Service = (*service)(nil)

// New creates a ledger for the holder identified by holderFingerprint,
// persisting through the given store. State is loaded lazily on first use.
func New(holderFingerprint string, store BackingStore) *service {
	return &service{
		holderFingerprint: holderFingerprint,
		store:             store,
	}
}

// ensureLoaded pulls the persisted state on first access. A missing state is
// a fresh wallet, not an error.
func (s *service) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	state, err := s.store.Load(ctx, s.holderFingerprint)
	switch {
	case errors.Is(err, ErrStateNotFound):
		state = NewState()
	case err != nil:
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.state = state
	s.loaded = true
	return nil
}

// Deposit implements Service.
func (s *service) Deposit(ctx context.Context, notes []transfers.CashNote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}

	next := s.state.clone()

	applied := 0
	for _, note := range notes {
		id := note.UniquePubkey()
		if next.ReceivedNotes.Contains(id) {
			continue
		}

		balance, err := next.Balance.Add(note.Value())
		if err != nil {
			return err
		}

		next.Balance = balance
		next.ReceivedNotes.Add(id)
		applied++
	}

	if applied == 0 {
		return nil
	}

	if err := s.store.Save(ctx, s.holderFingerprint, next); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.state = next
	return nil
}

// Balance implements Service.
func (s *service) Balance(ctx context.Context) (types.NanoTokens, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return 0, err
	}

	return s.state.Balance, nil
}
