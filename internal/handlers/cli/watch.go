package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bochaco/stableset-net/internal/infra/peers"
	"github.com/bochaco/stableset-net/internal/notestore"
	"github.com/bochaco/stableset-net/internal/pkg/logger"
	"github.com/bochaco/stableset-net/internal/pkg/resilience/retry"
	"github.com/bochaco/stableset-net/internal/reconcile"
	"github.com/bochaco/stableset-net/internal/transfers"
	"github.com/bochaco/stableset-net/internal/wallet"

	"github.com/urfave/cli/v3"
)

// watchTransfersCommand returns the CLI command that runs a reconciliation
// session: it registers the notification filter for the holder key, consumes
// the event stream, and deposits verified cash notes until interrupted.
//
// Usage example:
//
//	stableset watch --sk <hex-encoded-secret-key> --cash-notes-dir ./cash_notes
//
// The process runs until it receives SIGINT/SIGTERM or the session ends with
// a fatal error. Fatal sessions are retried a bounded number of times; the
// received-note guard in the ledger makes re-deposits safe.
func watchTransfersCommand(source reconcile.NotificationSource, store wallet.BackingStore, contacts *peers.Fetcher) *cli.Command {
	return &cli.Command{
		Name:        "watch",
		Description: "Listens for transfer notifications addressed to the holder key and deposits the received cash notes.",
		Usage:       "Runs the reconciliation session. Terminates gracefully on Ctrl+C or termination signals.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "sk",
				Usage:    "Hex-encoded secret key used to decrypt received transfers",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "cash-notes-dir",
				Usage: "Directory where each received cash note is written; omit to skip file persistence",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			holder, err := transfers.HolderKeyFromHex(c.String("sk"))
			if err != nil {
				return fmt.Errorf("parsing hex-encoded secret key: %w", err)
			}

			if contacts != nil {
				addrs, err := contacts.Fetch(ctx)
				if err != nil {
					logger.Warn(ctx, "failed to fetch bootstrap network contacts", "error", err)
				} else {
					logger.Info(ctx, "bootstrap network contacts acquired", "peers", len(addrs))
				}
			}

			var opts []reconcile.Option
			if dir := c.String("cash-notes-dir"); dir != "" {
				opts = append(opts, reconcile.WithNoteStore(notestore.New(dir)))
				logger.Info(ctx, "writing received cash notes to disk", "dir", dir)
			}

			quit := make(chan os.Signal, 1)
			defer close(quit)

			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			sessionRetry := retry.New(retry.WithAttempts(3))
			return sessionRetry.Execute(ctx, func() error {
				ledger := wallet.New(holder.Fingerprint(), store)
				svc := reconcile.New(source, holder, ledger, opts...)

				if err := svc.Start(ctx); err != nil {
					return err
				}
				defer svc.Close()

				select {
				case <-quit:
					return nil
				case <-svc.Done():
					return svc.Err()
				}
			})
		},
	}
}
