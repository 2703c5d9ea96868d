package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/Sumatoshi-tech/rolenav/internal/observability"
	"github.com/Sumatoshi-tech/rolenav/internal/server"
)

// NewServeCommand creates the serve subcommand.
func NewServeCommand() *cobra.Command {
	var flags engineFlags

	var host string

	var port int

	cmd := &cobra.Command{
		Use:   "serve <snapshot.json[.lz4]>",
		Short: "Serve queries over HTTP",
		Long: `Load a snapshot and serve it read-only:

  POST /api/query   role queries (how_many, find_first, max_depth, ...)
  GET  /api/stats   tree shape and role distribution
  GET  /healthz     liveness probe
  GET  /metrics     Prometheus scrape endpoint`,
		Args: cobra.ExactArgs(snapshotArgCount),
		RunE: func(_ *cobra.Command, args []string) error {
			return runServe(&flags, args[0], host, port)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&host, "host", "", "listen host (overrides config)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides config)")

	return cmd
}

func runServe(flags *engineFlags, path, host string, port int) error {
	cfg, err := flags.resolve()
	if err != nil {
		return err
	}

	if host != "" {
		cfg.Server.Host = host
	}

	if port != 0 {
		cfg.Server.Port = port
	}

	logger := observability.NewLogger(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)

	tree, err := buildTree(cfg, path)
	if err != nil {
		return err
	}

	stats := tree.Stats()
	logger.Info("snapshot loaded",
		"path", path,
		"nodes", stats.Nodes,
		"max_depth", stats.MaxDepth,
		"layout", cfg.Engine.Layout,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracer := otel.Tracer("rolenav")

	return server.New(tree, *cfg, logger, tracer).Run(ctx)
}
