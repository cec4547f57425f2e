// Package cli exposes the command-line interface of the transfer
// reconciliation tooling.
package cli

import (
	"context"
	"os"

	"github.com/bochaco/stableset-net/internal/infra/peers"
	"github.com/bochaco/stableset-net/internal/reconcile"
	"github.com/bochaco/stableset-net/internal/wallet"

	"github.com/urfave/cli/v3"
)

// Run initializes and executes the CLI application.
//
// Registered commands:
//
//   - `watch`: runs the transfer-notification reconciliation session.
//   - `register`: registers a transfer-notification filter for a public key.
//   - `keygen`: generates and prints a fresh holder keypair.
//
// Parameters:
//   - ctx: controls the lifecycle of the CLI application.
//   - source: the notification transport used by watch/register.
//   - store: durable persistence for wallet state.
//   - contacts: bootstrap contacts fetcher, nil when not configured.
func Run(ctx context.Context, source reconcile.NotificationSource, store wallet.BackingStore, contacts *peers.Fetcher) error {
	app := &cli.Command{
		EnableShellCompletion: true,
		Name:                  "stableset",
		Description:           "Command-line interface for receiving and reconciling transfer notifications.",
		Usage:                 "stableset [command] [flags]",
		Commands: []*cli.Command{
			watchTransfersCommand(source, store, contacts),
			registerFilterCommand(source),
			keygenCommand(),
		},
	}

	return app.Run(ctx, os.Args)
}
