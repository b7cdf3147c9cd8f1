// Package observability provides the Prometheus metrics and the structured
// logger for the daemon.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
)

// ─── Prometheus Metrics ─────────────────────────────────────────────────────

var (
	// HTTPRequests counts API requests by route pattern and status class.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cobranza_http_requests_total",
		Help: "API requests by route and status code.",
	}, []string{"route", "status"})

	// HTTPDuration tracks API request latency by route pattern.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cobranza_http_request_seconds",
		Help:    "API request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	// ComputeDuration tracks how long each aggregate takes to recompute.
	// Aggregates are pure and recomputed per request, so this is the cost
	// of every dashboard refresh.
	ComputeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cobranza_aggregate_compute_seconds",
		Help:    "Aggregate recomputation time by aggregate kind.",
		Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
	}, []string{"aggregate"})

	// SnapshotClientes and SnapshotInteracciones expose the size of the
	// currently served snapshot.
	SnapshotClientes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cobranza_snapshot_clientes",
		Help: "Cliente records in the served snapshot.",
	})
	SnapshotInteracciones = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cobranza_snapshot_interacciones",
		Help: "Interaction records in the served snapshot.",
	})
)

// ObserveCompute records one aggregate recomputation started at start.
func ObserveCompute(aggregate string, start time.Time) {
	ComputeDuration.WithLabelValues(aggregate).Observe(time.Since(start).Seconds())
}

// SetSnapshotSize publishes the record counts of the served snapshot.
func SetSnapshotSize(clientes, interacciones int) {
	SnapshotClientes.Set(float64(clientes))
	SnapshotInteracciones.Set(float64(interacciones))
}

// ─── Logger ─────────────────────────────────────────────────────────────────

// NewLogger builds a logrus logger from the config values. Unknown levels
// fall back to info; any format other than "text" means JSON.
func NewLogger(level, format string) *logrus.Logger {
	log := logrus.New()
	if format == "text" {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}
