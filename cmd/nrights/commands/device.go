package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func deviceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "device",
		Short: "Manage the devices of your user",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add [device-id] [crypt-pub-key]",
		Short: "Add a device from its public keys",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := wire.RegisteredClient(passphrase)
			if err != nil {
				return err
			}
			if err := c.AddDevice(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Println("Device added")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "authorize [device-id]",
		Short: "Authorize a device that has logged in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := wire.RegisteredClient(passphrase)
			if err != nil {
				return err
			}
			if err := c.AuthorizeDevice(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Device authorized")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove [device-id]",
		Short: "Remove one of your devices",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := wire.RegisteredClient(passphrase)
			if err != nil {
				return err
			}
			if err := c.RemoveDevice(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Device removed")
			return nil
		},
	})

	return cmd
}
