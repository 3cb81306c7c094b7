package commands

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"naturalrights/internal/app"
	"naturalrights/internal/config"
)

const shutdownTimeout = 30 * time.Second

func serveCmd() *cobra.Command {
	var (
		configPath string
		listen     string
		backend    string
		dataPath   string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the rights protocol over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("listen") {
				cfg.Listen = listen
			}
			if flags.Changed("backend") {
				cfg.Store.Backend = backend
			}
			if flags.Changed("data") {
				cfg.Store.Path = dataPath
			}
			if flags.Changed("log-level") {
				cfg.Log.Level = logLevel
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log, err := cfg.NewLogger()
			if err != nil {
				return err
			}
			node, err := app.NewNode(cfg, log)
			if err != nil {
				return err
			}
			defer func() {
				if err := node.Close(); err != nil {
					log.WithError(err).Error("close store")
				}
			}()

			srv := &http.Server{
				Addr:              cfg.Listen,
				Handler:           node.HTTP.Router(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			errc := make(chan error, 1)
			go func() {
				log.WithField("listen", cfg.Listen).WithField("backend", cfg.Store.Backend).Info("serving")
				errc <- srv.ListenAndServe()
			}()

			select {
			case err := <-errc:
				return err
			case <-cmd.Context().Done():
			}

			log.Info("shutting down")
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				return err
			}
			if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&backend, "backend", "", "store backend: memory, badger or bolt")
	cmd.Flags().StringVar(&dataPath, "data", "", "store path (overrides config)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level (overrides config)")
	return cmd
}
