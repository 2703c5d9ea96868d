package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	labelOp     = "op"
	labelStatus = "status"
)

// QueryMetrics holds Prometheus instruments for the query server.
// Each instance carries its own registry to avoid collector conflicts when
// constructed more than once (tests, embedded servers).
type QueryMetrics struct {
	registry *prometheus.Registry

	queriesTotal  *prometheus.CounterVec
	queryDuration *prometheus.HistogramVec
	treeNodes     prometheus.Gauge
	treeMaxDepth  prometheus.Gauge
}

// NewQueryMetrics creates the query server instruments on a fresh registry.
func NewQueryMetrics() *QueryMetrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &QueryMetrics{
		registry: registry,
		queriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rolenav_queries_total",
			Help: "Queries served, labeled by operation and status.",
		}, []string{labelOp, labelStatus}),
		queryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rolenav_query_duration_seconds",
			Help:    "Query latency by operation.",
			Buckets: prometheus.DefBuckets,
		}, []string{labelOp}),
		treeNodes: factory.NewGauge(prometheus.GaugeOpts{
			Name: "rolenav_tree_nodes",
			Help: "Node count of the loaded tree.",
		}),
		treeMaxDepth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "rolenav_tree_max_depth",
			Help: "Maximum depth of the loaded tree.",
		}),
	}
}

// ObserveQuery records one served query. Safe on a nil receiver (no-op).
func (m *QueryMetrics) ObserveQuery(op, status string, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.queriesTotal.WithLabelValues(op, status).Inc()
	m.queryDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

// SetTreeShape records the size and depth of the tree being served.
// Safe on a nil receiver (no-op).
func (m *QueryMetrics) SetTreeShape(nodes, maxDepth int) {
	if m == nil {
		return
	}

	m.treeNodes.Set(float64(nodes))
	m.treeMaxDepth.Set(float64(maxDepth))
}

// Handler returns the /metrics scrape endpoint for this instance's registry.
func (m *QueryMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
