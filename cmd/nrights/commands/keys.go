package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"naturalrights/internal/domain/types"
)

func keysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Look up keys",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "pub [user|group|document|device] [id]",
		Short: "Print public keys",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := wire.Client(passphrase)
			if err != nil {
				return err
			}
			keys, err := c.GetPublicKeys(cmd.Context(), types.KeyKind(args[0]), args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Sign:  %s\nCrypt: %s\n", keys.SignPubKey, keys.CryptPubKey)
			return nil
		},
	})

	return cmd
}
