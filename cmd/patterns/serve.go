package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/patterns/internal/errors"
	"github.com/vango-dev/patterns/internal/telemetry"
	"github.com/vango-dev/patterns/pkg/server"
)

func serveCmd(a *app) *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Long: `Start the HTTP server.

Pages render on the server. A page whose data is still loading after the
render timeout ships a loading state and finishes over a live websocket.

Examples:
  patterns serve
  patterns serve --port=3000
  PATTERNS_CATALOG_LATENCY=500ms patterns serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port > 0 {
				a.cfg.Server.Port = port
			}
			if host != "" {
				a.cfg.Server.Host = host
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			return runServe(cmd, a)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")

	return cmd
}

func runServe(cmd *cobra.Command, a *app) error {
	ctx := cmd.Context()

	svc, err := a.catalog()
	if err != nil {
		return err
	}

	shutdown, err := telemetry.Setup(ctx, a.cfg.Tracing, version)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.WithoutCancel(ctx)); err != nil {
			a.logger.Warn("telemetry shutdown", "error", err)
		}
	}()

	srv := server.New(server.ConfigFrom(a.cfg), svc, server.WithLogger(a.logger))

	out := cmd.OutOrStdout()
	fmt.Fprint(out, banner)
	fmt.Fprintf(out, "\n  %s %s\n", labelStyle.Render("listening on"), a.cfg.URL())
	if a.cfg.Metrics.Enabled {
		fmt.Fprintf(out, "  %s %s%s\n", labelStyle.Render("metrics at  "), a.cfg.URL(), a.cfg.Metrics.Path)
	}
	fmt.Fprintln(out)

	if err := srv.Run(ctx); err != nil {
		return errors.New("P041").Wrap(err)
	}
	return nil
}
