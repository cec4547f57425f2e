package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bochaco/stableset-net/internal/nodeevent"
	"github.com/bochaco/stableset-net/internal/pkg/logger"
	"github.com/bochaco/stableset-net/internal/pkg/x/chflow"
	"github.com/bochaco/stableset-net/internal/transfers"
)

// run is the session loop: it blocks on the next stream item, reconciles it,
// and repeats until the stream closes, the context is canceled, or a fatal
// error occurs. It owns sessionState and runs as the single consumer for the
// holder key.
func (s *service) run(ctx context.Context, eventsCh <-chan []byte) {
	defer close(s.done)

	state := newSessionState()

	logger.Info(ctx, "listening for transfer notifications",
		"session.id", state.sessionID,
		"holder", s.holder.Fingerprint(),
	)

	for {
		payload, ok := chflow.Receive(ctx, eventsCh)
		if !ok {
			logger.Info(ctx, "notification stream closed",
				"session.id", state.sessionID,
				"session.duration", time.Since(state.startedAt).String(),
				"events.received", state.eventsReceived,
				"events.discarded", state.eventsDiscarded,
				"transfers.ignored", state.transfersIgnored,
				"notes.deposited", state.notesDeposited,
			)
			return
		}
		state.recordEvent()

		// The batch in flight runs to completion even if the session is being
		// canceled, so a deposit is never left half-applied.
		if err := s.processPayload(context.WithoutCancel(ctx), &state, payload); err != nil {
			s.setErr(err)
			logger.Error(ctx, "terminating reconciliation session",
				"session.id", state.sessionID,
				"error", err,
			)
			return
		}
	}
}

// processPayload reconciles a single stream item: decode, filter for
// transfer notifications, verify each transfer in payload order, persist the
// accumulated notes, then deposit them as one batch.
//
// Decode failures and negative verification outcomes are per-item and
// recoverable: they log at warn level and return nil. Note-store I/O and
// ledger persistence failures are fatal and propagate, terminating the
// session — a wallet that cannot persist state must not keep accepting
// deposits it cannot account for.
func (s *service) processPayload(ctx context.Context, state *sessionState, payload []byte) error {
	event, err := nodeevent.Decode(payload)
	if err != nil {
		state.recordDiscardedEvent()
		logger.Warn(ctx, "discarding undecodable node event",
			"session.id", state.sessionID,
			"error", err,
		)
		return nil
	}

	if event.Kind != nodeevent.KindTransferNotif {
		logger.Debug(ctx, "ignoring non-transfer node event",
			"session.id", state.sessionID,
			"event.kind", event.Kind,
		)
		return nil
	}

	notif := event.TransferNotif
	logger.Info(ctx, "transfer notification received",
		"session.id", state.sessionID,
		"recipient", notif.RecipientFingerprint,
		"transfers", len(notif.Transfers),
	)

	if notif.RecipientFingerprint != "" && notif.RecipientFingerprint != s.holder.Fingerprint() {
		// Decryption is the authority on ownership, so the batch is still
		// scanned transfer by transfer.
		logger.Warn(ctx, "notification recipient does not match the holder key",
			"session.id", state.sessionID,
			"recipient", notif.RecipientFingerprint,
		)
	}

	notes := make([]transfers.CashNote, 0, len(notif.Transfers))
	for _, transfer := range notif.Transfers {
		unpacked, err := transfers.VerifyAndUnpack(transfer, s.holder)
		switch {
		case errors.Is(err, transfers.ErrRoyaltyTransfer):
			state.recordIgnoredTransfer()
			logger.Warn(ctx, "unencrypted network royalty received via transfer notification, ignoring it",
				"session.id", state.sessionID,
			)

		case err != nil:
			state.recordIgnoredTransfer()
			logger.Warn(ctx, "transfer received is invalid or not for us, ignoring it",
				"session.id", state.sessionID,
				"error", err,
			)

		default:
			notes = append(notes, unpacked...)
		}
	}

	if len(notes) == 0 {
		return nil
	}

	// Persist before depositing: a note persisted but not yet deposited can
	// be recovered and re-deposited, while the balance remains the
	// authoritative record for anything already applied.
	if s.noteStore != nil {
		for _, note := range notes {
			if err := s.noteStore.Persist(ctx, note); err != nil {
				return fmt.Errorf("persisting cash note %s: %w", note.UniquePubkey(), err)
			}
		}
	}

	if err := s.ledger.Deposit(ctx, notes); err != nil {
		return fmt.Errorf("depositing %d cash note/s: %w", len(notes), err)
	}
	state.recordDeposited(len(notes))

	balance, err := s.ledger.Balance(ctx)
	if err != nil {
		return fmt.Errorf("reading balance after deposit: %w", err)
	}

	s.reporter.ReportBalance(ctx, s.holder.Fingerprint(), notes, balance)
	return nil
}
