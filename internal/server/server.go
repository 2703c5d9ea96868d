// Package server exposes the query engine over HTTP. One tree is loaded at
// startup and served read-only; every endpoint is safe for concurrent use.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/rolenav/internal/config"
	"github.com/Sumatoshi-tech/rolenav/internal/observability"
	"github.com/Sumatoshi-tech/rolenav/pkg/atree"
	"github.com/Sumatoshi-tech/rolenav/pkg/role"
)

// Queryable is the read surface the server needs from a tree. Both arena
// flavors satisfy it; the counting layout answers the counting operations in
// constant time.
type Queryable interface {
	HowMany(r role.Role) int
	HowManyRoleset(r role.Role) int
	MaxDepth() int
	LeafCount() int
	UniqueRoles() role.Set
	FindFirst(r role.Role) (atree.NodeID, bool)
	FindFirstRoleset(r role.Role) (atree.NodeID, bool)
	FindFirstStack(r role.Role) (atree.NodeID, bool)
	Parallel(workers, threshold int) *atree.Parallel
	Stats() atree.Stats
}

// serverIdleTimeout bounds keep-alive connections.
const serverIdleTimeout = 120 * time.Second

// Server serves query, stats, health, and metrics endpoints over one tree.
type Server struct {
	tree    Queryable
	cfg     config.Config
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *observability.QueryMetrics
}

// New builds a Server around an already-built tree.
func New(tree Queryable, cfg config.Config, logger *slog.Logger, tracer trace.Tracer) *Server {
	metrics := observability.NewQueryMetrics()

	stats := tree.Stats()
	metrics.SetTreeShape(stats.Nodes, stats.MaxDepth)

	return &Server{
		tree:    tree,
		cfg:     cfg,
		logger:  logger,
		tracer:  tracer,
		metrics: metrics,
	}
}

// Handler returns the full route table wrapped in tracing middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/query", s.handleQuery)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.Handle("/metrics", s.metrics.Handler())

	return observability.HTTPMiddleware(s.tracer, s.logger, mux)
}

// Run serves until ctx is canceled, then shuts down gracefully within the
// configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	addr := net.JoinHostPort(s.cfg.Server.Host, strconv.Itoa(s.cfg.Server.Port))

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  parseTimeout(s.cfg.Server.ReadTimeout),
		WriteTimeout: parseTimeout(s.cfg.Server.WriteTimeout),
		IdleTimeout:  serverIdleTimeout,
	}

	errCh := make(chan error, 1)

	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	s.logger.Info("server listening", "addr", addr)

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), parseTimeout(s.cfg.Server.ShutdownTimeout))
	defer cancel()

	shutdownErr := httpServer.Shutdown(shutdownCtx)
	if shutdownErr != nil {
		return fmt.Errorf("shutdown: %w", shutdownErr)
	}

	serveErr := <-errCh
	if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", serveErr)
	}

	return nil
}

// parseTimeout reads a config duration string. Config validation does not
// parse durations, so fall back to zero (no timeout) on bad input.
func parseTimeout(raw string) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0
	}

	return d
}
