package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/folio"
)

func serveCmd() *cobra.Command {
	var (
		flags siteFlags
		port  int
		host  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site",
		Long: `Serve the site over HTTP.

Initial page loads are rendered on the server. Navigation after that
runs over a WebSocket at /_folio/ws. Prometheus metrics are served at
/metrics unless disabled in folio.json.

Examples:
  folio serve
  folio serve --port=8080
  folio serve --history=hash
  folio serve --config=./site --base=/me`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			app, err := folio.NewApp(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printBanner(out)
			success(out, "Serving %s", cfg.URL())
			info(out, "History: %s", cfg.Router.History)
			if cfg.Metrics.Enabled {
				info(out, "Metrics: http://%s/metrics", cfg.Address())
			}
			if cfg.Path() == "" {
				warn(out, "No folio.json in %s, using defaults", flags.configDir)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.Run(ctx)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from folio.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from folio.json)")

	return cmd
}
