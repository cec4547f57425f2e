package reconcile

import (
	"time"

	"github.com/google/uuid"
)

// sessionState tracks the lifecycle counters of one reconciliation session.
// It is owned by the loop goroutine and never shared.
type sessionState struct {
	sessionID string    // unique identifier for this session (UUIDv7)
	startedAt time.Time // when the session began consuming the stream

	eventsReceived   uint64 // stream items pulled, decodable or not
	eventsDiscarded  uint64 // items that failed to decode
	transfersIgnored uint64 // transfers skipped (not ours, royalty, invalid)
	notesDeposited   uint64 // cash notes applied to the ledger
}

// newSessionState creates the state for a fresh session.
func newSessionState() sessionState {
	return sessionState{
		sessionID: uuid.Must(uuid.NewV7()).String(),
		startedAt: time.Now().UTC(),
	}
}

func (s *sessionState) recordEvent() {
	s.eventsReceived++
}

func (s *sessionState) recordDiscardedEvent() {
	s.eventsDiscarded++
}

func (s *sessionState) recordIgnoredTransfer() {
	s.transfersIgnored++
}

func (s *sessionState) recordDeposited(n int) {
	s.notesDeposited += uint64(n)
}
