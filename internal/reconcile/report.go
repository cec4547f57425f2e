package reconcile

import (
	"context"

	"github.com/bochaco/stableset-net/internal/pkg/logger"
	"github.com/bochaco/stableset-net/internal/pkg/types"
	"github.com/bochaco/stableset-net/internal/transfers"
)

// BalanceReporter observes the outcome of each reconciled notification
// batch. Reports are informational only, not part of a machine-readable
// contract.
type BalanceReporter interface {
	// ReportBalance is called after a batch of notes has been persisted and
	// deposited, with the ledger's new running balance.
	ReportBalance(ctx context.Context, holderFingerprint string, deposited []transfers.CashNote, balance types.NanoTokens)
}

// logBalanceReporter is the default reporter: one log line per received note
// and one with the running balance after the batch.
type logBalanceReporter struct{}

var _ BalanceReporter = logBalanceReporter{}

func (logBalanceReporter) ReportBalance(ctx context.Context, holderFingerprint string, deposited []transfers.CashNote, balance types.NanoTokens) {
	for _, note := range deposited {
		logger.Info(ctx, "cash note received",
			"note.id", note.UniquePubkey(),
			"note.value", note.Value().String(),
		)
	}

	logger.Info(ctx, "new balance after depositing received cash note/s",
		"holder", holderFingerprint,
		"deposited", len(deposited),
		"balance", balance.String(),
	)
}
