package commands

import (
	"context"

	"github.com/spf13/cobra"
)

func Execute(ctx context.Context) error {
	root := &cobra.Command{
		Use:          "nrightsd",
		Short:        "naturalrights document rights server",
		SilenceUsage: true,
	}
	root.AddCommand(serveCmd())
	return root.ExecuteContext(ctx)
}
