package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func registerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new user on the server, owned by this device",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := wire.Client(passphrase)
			if err != nil {
				return err
			}
			if c.UserID != "" {
				return fmt.Errorf("already registered as %s", c.UserID)
			}

			rootID, err := c.InitializeUser(cmd.Context())
			if err != nil {
				return err
			}
			if err := wire.SaveAccount(c.UserID, rootID); err != nil {
				return err
			}

			fmt.Printf("Registered.\nUser ID:       %s\nRoot document: %s\n", c.UserID, rootID)
			return nil
		},
	}
	return cmd
}

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Announce this device; once authorized it learns its user",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := wire.Client(passphrase)
			if err != nil {
				return err
			}
			res, err := c.Login(cmd.Context())
			if err != nil {
				return err
			}
			if res.UserID == "" {
				fmt.Printf("Device %s is waiting for authorization.\n", c.DeviceID())
				fmt.Println("Run `nrights device authorize <device-id>` from an authorized device, then login again.")
				return nil
			}
			if err := wire.SaveAccount(res.UserID, res.RootDocumentID); err != nil {
				return err
			}
			fmt.Printf("Logged in as %s\n", res.UserID)
			return nil
		},
	}
	return cmd
}
