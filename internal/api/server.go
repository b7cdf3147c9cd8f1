// Package api provides the read-only HTTP server for the collections
// dashboard. Every endpoint recomputes its aggregate from the snapshot on
// each request; there is no cache to invalidate.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/cobranza-network/cobranza/internal/observability"
	"github.com/cobranza-network/cobranza/internal/store"
)

// Version of the daemon, reported on /api/version.
const Version = "0.1.0"

func init() {
	// The dashboard consumes amounts as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Server is the cobranza HTTP API server over one store snapshot.
type Server struct {
	snap *store.Snapshot
	log  *logrus.Logger

	metricsEnabled bool
	corsEnabled    bool
	now            func() time.Time
}

// NewServer creates a server over the given snapshot.
func NewServer(snap *store.Snapshot, log *logrus.Logger) *Server {
	return &Server{snap: snap, log: log, now: time.Now}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// EnableCORS adds permissive CORS headers for the dashboard frontend.
func (s *Server) EnableCORS() { s.corsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	if s.corsEnabled {
		r.Use(corsMiddleware)
	}
	r.Use(s.instrument)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/version", s.handleVersion)
		r.Get("/status", s.handleStatus)
		r.Get("/kpis", s.handleKPIs)
		r.Get("/clientes", s.handleListClientes)
		r.Get("/clientes/{clienteID}", s.handleClienteDetail)
		r.Get("/clientes/{clienteID}/timeline", s.handleClienteTimeline)
		r.Get("/grafo", s.handleGrafo)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// instrument logs every request and feeds the HTTP metrics, labeled by the
// chi route pattern rather than the raw path.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		elapsed := time.Since(start)
		observability.HTTPRequests.WithLabelValues(route, strconv.Itoa(ww.Status())).Inc()
		observability.HTTPDuration.WithLabelValues(route).Observe(elapsed.Seconds())

		s.log.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      ww.Status(),
			"duration_ms": elapsed.Milliseconds(),
			"request_id":  middleware.GetReqID(r.Context()),
		}).Info("request")
	})
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// corsMiddleware adds CORS headers for the dashboard frontend.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
