package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/figerout/figerout/internal/api"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		addr    string
		origins []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the Figerout HTTP API under /api/v1.

The listen address defaults to $FIGEROUT_ADDR or :8080. The server stops
gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.cfg.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			svc, err := a.openCollection()
			if err != nil {
				return err
			}
			defer svc.Close()

			srv := api.NewServer(api.Options{
				Collection:     svc,
				Describer:      a.newDescriber(ctx, ""),
				Logger:         a.logger.Named("api"),
				MaxSurface:     a.cfg.MaxSurface,
				AllowedOrigins: origins,
			})
			return srv.Run(ctx, addr)
		},
	}

	f := cmd.Flags()
	f.StringVar(&addr, "addr", "", "listen address (default: $FIGEROUT_ADDR or :8080)")
	f.StringSliceVar(&origins, "cors-origin", nil, "allowed CORS origins (default: any)")
	return cmd
}
