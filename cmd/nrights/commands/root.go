package commands

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"naturalrights/internal/app"
)

var (
	home       string
	passphrase string
	serverURL  string
	wire       *app.Wire
)

func Execute(ctx context.Context) error {
	root := &cobra.Command{
		Use:          "nrights",
		Short:        "Client for a naturalrights document rights server",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".nrights")
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}

			w, err := app.NewWire(app.Config{
				Home:      home,
				ServerURL: serverURL,
				HTTP:      &http.Client{Timeout: 30 * time.Second},
			})
			if err != nil {
				return err
			}
			wire = w
			return nil
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.nrights)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the device keys")
	root.PersistentFlags().StringVar(&serverURL, "server", "http://127.0.0.1:8080", "rights server base URL")

	root.AddCommand(
		initCmd(),
		fingerprintCmd(),
		registerCmd(),
		loginCmd(),
		deviceCmd(),
		groupCmd(),
		docCmd(),
		keysCmd(),
	)
	return root.ExecuteContext(ctx)
}
