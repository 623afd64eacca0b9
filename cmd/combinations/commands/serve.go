package commands

import (
	"context"
	"time"

	"github.com/guttosm/combination-service/internal/app"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const releaseTimeout = 10 * time.Second

func newServeCommand(global *globalOptions) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the enumeration API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := global.cfg
			if port != "" {
				cfg.Server.Port = port
			}

			application := app.InitializeApp(cfg)
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
				defer cancel()
				if err := application.Close(ctx); err != nil {
					log.Error().Err(err).Msg("Shutdown incomplete")
				}
			}()

			return app.NewServer(application.Router, cfg.Server).Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen port (default $PORT or 8080)")
	return cmd
}
