package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jongio/urlkit/mcptool"
	"github.com/jongio/urlkit/server"
	"github.com/jongio/urlkit/version"
)

func newServeCmd(a *app) *cobra.Command {
	var port, burst, metricsPort int
	var rateLimit float64
	var withMetrics bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the parser over HTTP",
		Long: `Serve GET and POST /parse, /health and, unless disabled, /metrics.
With --metrics-port, /metrics moves to its own listener.

  curl 'localhost:8080/parse?input=../c&base=https://example.org/a/b'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := a.cfg.Serve
			cmd.Flags().Visit(func(f *pflag.Flag) {
				switch f.Name {
				case "port":
					opts.Port = port
				case "rate-limit":
					opts.RateLimit = rateLimit
				case "burst":
					opts.Burst = burst
				case "metrics":
					opts.Metrics = withMetrics
				case "metrics-port":
					opts.MetricsPort = metricsPort
				}
			})
			cfg := *a.cfg
			cfg.Serve = opts
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.New(server.Options{
				Port:           opts.Port,
				RateLimit:      opts.RateLimit,
				Burst:          opts.Burst,
				MaxInputLength: opts.MaxInputLength,
				Metrics:        opts.Metrics,
				MetricsPort:    opts.MetricsPort,
			}).ListenAndServe(ctx)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to listen on")
	cmd.Flags().Float64Var(&rateLimit, "rate-limit", 20, "Requests per second per client, 0 disables limiting")
	cmd.Flags().IntVar(&burst, "burst", 40, "Rate limiter burst size")
	cmd.Flags().BoolVar(&withMetrics, "metrics", true, "Expose Prometheus metrics on /metrics")
	cmd.Flags().IntVar(&metricsPort, "metrics-port", 0, "Serve /metrics on this port instead of the API port")
	return cmd
}

func newMCPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve parse_url and parse_host as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return mcptool.New(mcptool.Options{
				RateLimit:      a.cfg.Serve.RateLimit,
				Burst:          a.cfg.Serve.Burst,
				MaxInputLength: a.cfg.Serve.MaxInputLength,
			}).Serve(version.Version)
		},
	}
}
