package cli

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/bochaco/stableset-net/internal/reconcile"

	"github.com/urfave/cli/v3"
)

// registerFilterCommand returns a CLI command that registers a
// transfer-notification filter for a holder public key without starting a
// reconciliation session.
//
// Usage example:
//
//	stableset register --pk <hex-encoded-public-key>
func registerFilterCommand(source reconcile.NotificationSource) *cli.Command {
	return &cli.Command{
		Name:        "register",
		Description: "Registers a transfer-notification filter for the given holder public key.",
		Usage:       "Requests that transfer notifications addressed to the key be forwarded.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "pk",
				Usage:    "Hex-encoded holder public key to register the filter for",
				Required: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			pk, err := hex.DecodeString(c.String("pk"))
			if err != nil {
				return fmt.Errorf("parsing hex-encoded public key: %w", err)
			}

			if err := source.RegisterFilter(ctx, pk); err != nil {
				return err
			}

			fmt.Println("Transfer notifications filter registered successfully")
			return nil
		},
	}
}
