package cli

import (
	"context"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/assetmap/internal/server"
	"github.com/matzehuels/assetmap/pkg/observability"
)

// serveOpts holds options for the serve command.
type serveOpts struct {
	addr    string
	maxBody int64
}

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP mapping API",
		Long: `Run the HTTP API.

Endpoints:
  POST /v1/map      map an inventory, returns graph elements as JSON
  POST /v1/render   render an inventory (?format=dot|svg|pdf|png|json)
  GET  /healthz     liveness and build information
  GET  /metrics     Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config)")
	cmd.Flags().Int64Var(&opts.maxBody, "max-body", server.DefaultMaxBodyBytes, "maximum request body size in bytes")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	addr := opts.addr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	runner, err := c.newRunner(ctx, cfg)
	if err != nil {
		return err
	}
	defer runner.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewPrometheus(reg)
	observability.SetPipelineHooks(metrics)
	observability.SetCacheHooks(metrics)
	observability.SetHTTPHooks(metrics)
	defer observability.Reset()

	srv := server.New(runner, server.Options{
		Routing:      cfg.Mapping.Routing,
		MaxBodyBytes: opts.maxBody,
		Gatherer:     reg,
		Logger:       c.Logger,
	})

	printInfo("Serving the mapping API")
	printKeyValue("address", addr)
	printKeyValue("metrics", StyleLink.Render(metricsURL(addr)))
	printKeyValue("cache", cfg.Cache.Backend)
	c.Logger.Debug("serving", "addr", addr, "routing", cfg.Mapping.Routing)
	return srv.ListenAndServe(ctx, addr, cfg.Server.ReadTimeout.Duration)
}

// metricsURL turns a listen address like ":8080" into a browsable URL.
func metricsURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr + "/metrics"
}
