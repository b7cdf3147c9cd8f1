package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cobranza-network/cobranza/internal/domain"
	"github.com/cobranza-network/cobranza/internal/store"
)

// mesLayout keys an activity bucket by calendar month.
const mesLayout = "2006-01"

// ActividadMes counts interactions of one calendar month by kind. SMS
// contributes to Total only, matching the dashboard's stacked chart.
type ActividadMes struct {
	Mes      string `json:"mes"`
	Llamadas int    `json:"llamadas"`
	Emails   int    `json:"emails"`
	Pagos    int    `json:"pagos"`
	Total    int    `json:"total"`
}

// PortfolioStats aggregates the full collection.
//
// TasaCumplimientoPromesas here is NOT the matched-promise rate of
// ClienteStats: it divides the raw payment count by the raw promise count
// across the portfolio, so it can exceed 100. The two figures have always
// disagreed on the dashboard; both are reproduced as-is.
type PortfolioStats struct {
	TotalClientes            int
	TotalInteracciones       int
	DeudaTotal               decimal.Decimal
	TotalPagado              decimal.Decimal
	TasaRecuperacion         float64
	TasaCumplimientoPromesas float64
	TasaContacto             float64
	DeudaPorTipo             map[domain.TipoDeuda]decimal.Decimal
	PorSentimiento           map[domain.Sentimiento]int
	ActividadMensual         []ActividadMes
}

// ComputePortfolioStats aggregates every cliente and interaction in the
// snapshot. The reference time fixes the trailing six-calendar-month
// activity window (the month of now plus the five before it); passing it
// explicitly keeps the computation deterministic under test.
func ComputePortfolioStats(s *store.Snapshot, now time.Time) PortfolioStats {
	stats := PortfolioStats{
		TotalClientes:      s.NumClientes(),
		TotalInteracciones: s.NumInteracciones(),
		DeudaTotal:         decimal.Zero,
		TotalPagado:        decimal.Zero,
		DeudaPorTipo:       make(map[domain.TipoDeuda]decimal.Decimal),
		PorSentimiento:     make(map[domain.Sentimiento]int),
	}

	for _, c := range s.Clientes() {
		stats.DeudaTotal = stats.DeudaTotal.Add(c.MontoDeudaInicial)
		acc, ok := stats.DeudaPorTipo[c.TipoDeuda]
		if !ok {
			acc = decimal.Zero
		}
		stats.DeudaPorTipo[c.TipoDeuda] = acc.Add(c.MontoDeudaInicial)
	}

	var pagos, promesas, llamadas, contactadas int
	for _, in := range s.Interacciones() {
		if in.EsPago() {
			pagos++
			stats.TotalPagado = stats.TotalPagado.Add(in.Monto)
		}
		if in.EsPromesa() {
			promesas++
		}
		if in.EsLlamada() {
			llamadas++
			if in.Resultado != domain.ResultadoSinRespuesta {
				contactadas++
			}
		}
		if in.Sentimiento.Reportable() {
			stats.PorSentimiento[in.Sentimiento]++
		}
	}

	stats.TasaRecuperacion = recoveryPct(stats.TotalPagado, stats.DeudaTotal)
	stats.TasaCumplimientoPromesas = ratioPct(pagos, promesas)
	stats.TasaContacto = ratioPct(contactadas, llamadas)
	stats.ActividadMensual = actividadMensual(s.Interacciones(), now)
	return stats
}

// actividadMensual builds exactly six month buckets ending at the month of
// now, ascending. Months with no interactions still appear with zero counts;
// the bucket list is driven by the calendar range, not by data presence.
func actividadMensual(ints []domain.Interaccion, now time.Time) []ActividadMes {
	inicio := time.Date(now.Year(), now.Month()-5, 1, 0, 0, 0, 0, time.UTC)

	meses := make([]ActividadMes, 0, 6)
	for i := 0; i < 6; i++ {
		mes := inicio.AddDate(0, i, 0)
		bucket := ActividadMes{Mes: mes.Format(mesLayout)}
		for _, in := range ints {
			if in.Timestamp.Format(mesLayout) != bucket.Mes {
				continue
			}
			bucket.Total++
			switch {
			case in.EsLlamada():
				bucket.Llamadas++
			case in.Tipo == domain.InteraccionEmail:
				bucket.Emails++
			case in.EsPago():
				bucket.Pagos++
			}
		}
		meses = append(meses, bucket)
	}
	return meses
}
