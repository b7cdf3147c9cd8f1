package api

import (
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/cobranza-network/cobranza/internal/analytics"
	"github.com/cobranza-network/cobranza/internal/domain"
	"github.com/cobranza-network/cobranza/internal/graph"
	"github.com/cobranza-network/cobranza/internal/observability"
)

// pct turns a percentage into its JSON representation: NaN (the
// not-computable sentinel) becomes null.
func pct(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

// GET /api/version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": Version})
}

// GET /api/status
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":              "ok",
		"snapshot_id":         s.snap.ID(),
		"total_clientes":      s.snap.NumClientes(),
		"total_interacciones": s.snap.NumInteracciones(),
	})
}

// ─── Portfolio KPIs ─────────────────────────────────────────────────────────

type kpisResponse struct {
	TotalClientes            int                        `json:"total_clientes"`
	TotalInteracciones       int                        `json:"total_interacciones"`
	DeudaTotal               decimal.Decimal            `json:"deuda_total"`
	PagosRecibidos           decimal.Decimal            `json:"pagos_recibidos"`
	TasaRecuperacion         *float64                   `json:"tasa_recuperacion"`
	TasaCumplimientoPromesas *float64                   `json:"tasa_cumplimiento_promesas"`
	TasaContacto             *float64                   `json:"tasa_contacto"`
	DeudaPorTipo             map[string]decimal.Decimal `json:"deuda_por_tipo"`
	PorSentimiento           map[string]int             `json:"por_sentimiento"`
	ActividadMensual         []analytics.ActividadMes   `json:"actividad_mensual"`
}

// GET /api/kpis
func (s *Server) handleKPIs(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	stats := analytics.ComputePortfolioStats(s.snap, s.now())
	observability.ObserveCompute("portfolio", start)

	resp := kpisResponse{
		TotalClientes:            stats.TotalClientes,
		TotalInteracciones:       stats.TotalInteracciones,
		DeudaTotal:               stats.DeudaTotal,
		PagosRecibidos:           stats.TotalPagado,
		TasaRecuperacion:         pct(stats.TasaRecuperacion),
		TasaCumplimientoPromesas: pct(stats.TasaCumplimientoPromesas),
		TasaContacto:             pct(stats.TasaContacto),
		DeudaPorTipo:             make(map[string]decimal.Decimal, len(stats.DeudaPorTipo)),
		PorSentimiento:           make(map[string]int, len(stats.PorSentimiento)),
		ActividadMensual:         stats.ActividadMensual,
	}
	for tipo, monto := range stats.DeudaPorTipo {
		resp.DeudaPorTipo[string(tipo)] = monto
	}
	for sent, n := range stats.PorSentimiento {
		resp.PorSentimiento[string(sent)] = n
	}
	writeJSON(w, http.StatusOK, resp)
}

// ─── Roster ─────────────────────────────────────────────────────────────────

type clienteResumenResponse struct {
	ID                   string          `json:"id"`
	Nombre               string          `json:"nombre"`
	Telefono             string          `json:"telefono"`
	TipoDeuda            string          `json:"tipo_deuda"`
	TipoDeudaLabel       string          `json:"tipo_deuda_label"`
	MontoDeudaInicial    decimal.Decimal `json:"monto_deuda_inicial"`
	TotalPagado          decimal.Decimal `json:"total_pagado"`
	DeudaRestante        decimal.Decimal `json:"deuda_restante"`
	PorcentajeRecuperado *float64        `json:"porcentaje_recuperado"`
	TotalInteracciones   int             `json:"total_interacciones"`
	PromesasPendientes   int             `json:"promesas_pendientes"`
	Estado               string          `json:"estado"`
	EstadoLabel          string          `json:"estado_label"`
	UltimaInteraccion    *time.Time      `json:"ultima_interaccion"`
}

// GET /api/clientes?q=&tipo=&sort=
func (s *Server) handleListClientes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := analytics.ListOptions{
		Busqueda:   q.Get("q"),
		TipoDeuda:  domain.TipoDeuda(q.Get("tipo")),
		OrdenarPor: analytics.Orden(q.Get("sort")),
	}

	start := time.Now()
	rows := analytics.ListClientes(s.snap, opts)
	observability.ObserveCompute("roster", start)

	resp := make([]clienteResumenResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, clienteResumenResponse{
			ID:                   row.Cliente.ID,
			Nombre:               row.Cliente.Nombre,
			Telefono:             row.Cliente.Telefono,
			TipoDeuda:            string(row.Cliente.TipoDeuda),
			TipoDeudaLabel:       row.Cliente.TipoDeuda.Label(),
			MontoDeudaInicial:    row.Cliente.MontoDeudaInicial,
			TotalPagado:          row.Stats.TotalPagado,
			DeudaRestante:        row.Stats.DeudaRestante,
			PorcentajeRecuperado: pct(row.Stats.PorcentajeRecuperado),
			TotalInteracciones:   row.Stats.TotalInteracciones,
			PromesasPendientes:   row.Stats.PromesasPendientes(),
			Estado:               string(row.Estado),
			EstadoLabel:          row.Estado.Label(),
			UltimaInteraccion:    row.UltimaInteraccion,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// ─── Cliente Detail ─────────────────────────────────────────────────────────

type clienteStatsResponse struct {
	TotalPagado              decimal.Decimal `json:"total_pagado"`
	DeudaRestante            decimal.Decimal `json:"deuda_restante"`
	PorcentajeRecuperado     *float64        `json:"porcentaje_recuperado"`
	TotalInteracciones       int             `json:"total_interacciones"`
	TotalLlamadas            int             `json:"total_llamadas"`
	TasaContacto             *float64        `json:"tasa_contacto"`
	TotalPromesas            int             `json:"total_promesas"`
	PromesasCumplidas        int             `json:"promesas_cumplidas"`
	TasaCumplimientoPromesas *float64        `json:"tasa_cumplimiento_promesas"`
	Estado                   string          `json:"estado"`
}

// GET /api/clientes/{clienteID}
func (s *Server) handleClienteDetail(w http.ResponseWriter, r *http.Request) {
	clienteID := chi.URLParam(r, "clienteID")

	c, err := s.snap.Cliente(clienteID)
	if err != nil {
		s.clienteError(w, err)
		return
	}

	start := time.Now()
	stats, err := analytics.ComputeClienteStats(s.snap, clienteID)
	observability.ObserveCompute("cliente", start)
	if err != nil {
		s.clienteError(w, err)
		return
	}
	ints, err := s.snap.InteraccionesDe(clienteID)
	if err != nil {
		s.clienteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"cliente": c,
		"estadisticas": clienteStatsResponse{
			TotalPagado:              stats.TotalPagado,
			DeudaRestante:            stats.DeudaRestante,
			PorcentajeRecuperado:     pct(stats.PorcentajeRecuperado),
			TotalInteracciones:       stats.TotalInteracciones,
			TotalLlamadas:            stats.TotalLlamadas,
			TasaContacto:             pct(stats.TasaContacto),
			TotalPromesas:            stats.TotalPromesas,
			PromesasCumplidas:        stats.PromesasCumplidas,
			TasaCumplimientoPromesas: pct(stats.TasaCumplimientoPromesas),
			Estado:                   string(stats.Estado()),
		},
		"interacciones": ints,
	})
}

// GET /api/clientes/{clienteID}/timeline
func (s *Server) handleClienteTimeline(w http.ResponseWriter, r *http.Request) {
	clienteID := chi.URLParam(r, "clienteID")

	start := time.Now()
	puntos, err := analytics.ComputeBalanceTimeline(s.snap, clienteID)
	observability.ObserveCompute("timeline", start)
	if err != nil {
		s.clienteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"cliente_id": clienteID,
		"puntos":     puntos,
	})
}

func (s *Server) clienteError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrClienteNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

// ─── Relationship Graph ─────────────────────────────────────────────────────

// GET /api/grafo?tipo=&source=
func (s *Server) handleGrafo(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	start := time.Now()
	g := graph.Build(s.snap)
	if q.Has("tipo") || q.Has("source") {
		g = g.Apply(graph.Filter{
			Tipo:     domain.TipoInteraccion(q.Get("tipo")),
			SourceID: q.Get("source"),
		})
	}
	observability.ObserveCompute("grafo", start)

	writeJSON(w, http.StatusOK, g)
}
