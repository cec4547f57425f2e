package wallet

import (
	"github.com/bochaco/stableset-net/internal/pkg/types"
)

// State is the running balance of a holder plus the identifiers of cash
// notes already applied. It is exclusively owned by the ledger service and
// mutated only through Deposit; the received-note set guards against
// double-deposit under stream redelivery.
type State struct {
	Balance       types.NanoTokens  `json:"balance"`
	ReceivedNotes types.Set[string] `json:"received_notes"`
}

// NewState returns an empty wallet state.
func NewState() State {
	return State{
		ReceivedNotes: types.NewSet[string](),
	}
}

// clone returns a deep copy so a pending batch can be assembled without
// touching the current state until it has been durably saved.
func (s State) clone() State {
	next := State{
		Balance:       s.Balance,
		ReceivedNotes: types.NewSet[string](),
	}
	next.ReceivedNotes.Add(s.ReceivedNotes.ToSlice()...)
	return next
}
