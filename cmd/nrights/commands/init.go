package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate device keys and store them securely",
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			if wire.DeviceKeys.Exists() {
				return fmt.Errorf("device keys already exist in %s", home)
			}
			keys, fp, err := wire.Devices.GenerateDevice(passphrase)
			if err != nil {
				return err
			}
			fmt.Printf("Device created.\nDevice ID:   %s\nFingerprint: %s\n", keys.ID(), fp)
			return nil
		},
	}
}
