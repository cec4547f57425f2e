package cli

import (
	"context"
	"fmt"

	"github.com/bochaco/stableset-net/internal/transfers"

	"github.com/urfave/cli/v3"
)

// keygenCommand returns a CLI command that generates a fresh holder keypair
// and prints it in the hex form accepted by the other commands.
//
// Usage example:
//
//	stableset keygen
func keygenCommand() *cli.Command {
	return &cli.Command{
		Name:        "keygen",
		Description: "Generates a holder keypair for receiving transfer notifications.",
		Usage:       "Prints the secret key, public key, and fingerprint of a new holder key.",
		Action: func(ctx context.Context, c *cli.Command) error {
			key, err := transfers.GenerateHolderKey()
			if err != nil {
				return err
			}

			fmt.Printf("Secret key:  %s\n", key.SecretKeyHex())
			fmt.Printf("Public key:  %s\n", key.PublicKeyHex())
			fmt.Printf("Fingerprint: %s\n", key.Fingerprint())
			return nil
		},
	}
}
