// Package analytics computes the derived statistics views of the portfolio.
// Every aggregate is a pure function over a store snapshot, recomputed on
// each call; nothing here caches or mutates.
package analytics

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/cobranza-network/cobranza/internal/domain"
	"github.com/cobranza-network/cobranza/internal/store"
)

var cien = decimal.NewFromInt(100)

// ClienteStats is the per-cliente statistics view.
//
// PorcentajeRecuperado is NaN when the initial debt is zero — the ratio is
// not computable there. TasaContacto and TasaCumplimientoPromesas use the
// opposite convention and report 0 for an empty denominator. The asymmetry
// is deliberate and matched by the dashboard consuming this API.
type ClienteStats struct {
	TotalPagado              decimal.Decimal
	DeudaRestante            decimal.Decimal
	PorcentajeRecuperado     float64
	TotalInteracciones       int
	TotalLlamadas            int
	TasaContacto             float64
	TotalPromesas            int
	PromesasCumplidas        int
	TasaCumplimientoPromesas float64
}

// PromesasPendientes is the number of promises with no later payment.
func (s ClienteStats) PromesasPendientes() int {
	return s.TotalPromesas - s.PromesasCumplidas
}

// Estado classifies the cliente from its stats: pagado when nothing remains,
// else promesa_pendiente when an unfulfilled promise exists, else activo.
// Pagado wins even when an unfulfilled promise is also present.
func (s ClienteStats) Estado() domain.Estado {
	switch {
	case s.DeudaRestante.Sign() <= 0:
		return domain.EstadoPagado
	case s.PromesasPendientes() > 0:
		return domain.EstadoPromesaPendiente
	default:
		return domain.EstadoActivo
	}
}

// ComputeClienteStats derives the statistics view for one cliente.
// Returns domain.ErrClienteNotFound (wrapped) for an unknown id.
func ComputeClienteStats(s *store.Snapshot, clienteID string) (ClienteStats, error) {
	c, err := s.Cliente(clienteID)
	if err != nil {
		return ClienteStats{}, err
	}
	ints, err := s.InteraccionesDe(clienteID)
	if err != nil {
		return ClienteStats{}, err
	}
	return clienteStats(c, ints), nil
}

// clienteStats computes the view from a cliente and its own interactions.
func clienteStats(c domain.Cliente, ints []domain.Interaccion) ClienteStats {
	stats := ClienteStats{
		TotalPagado:        decimal.Zero,
		TotalInteracciones: len(ints),
	}

	var pagos []domain.Interaccion
	var contactadas int
	for _, in := range ints {
		if in.EsPago() {
			pagos = append(pagos, in)
			stats.TotalPagado = stats.TotalPagado.Add(in.Monto)
		}
		if in.EsLlamada() {
			stats.TotalLlamadas++
			if in.Resultado != domain.ResultadoSinRespuesta {
				contactadas++
			}
		}
		if in.EsPromesa() {
			stats.TotalPromesas++
		}
	}

	// A promise counts as fulfilled only when some payment lands strictly
	// after it; a payment at the exact promise timestamp does not.
	for _, in := range ints {
		if !in.EsPromesa() {
			continue
		}
		for _, pago := range pagos {
			if pago.Timestamp.After(in.Timestamp) {
				stats.PromesasCumplidas++
				break
			}
		}
	}

	stats.DeudaRestante = c.MontoDeudaInicial.Sub(stats.TotalPagado)
	stats.PorcentajeRecuperado = recoveryPct(stats.TotalPagado, c.MontoDeudaInicial)
	stats.TasaContacto = ratioPct(contactadas, stats.TotalLlamadas)
	stats.TasaCumplimientoPromesas = ratioPct(stats.PromesasCumplidas, stats.TotalPromesas)
	return stats
}

// recoveryPct returns paid/initial×100, or NaN when initial is zero.
func recoveryPct(pagado, inicial decimal.Decimal) float64 {
	if inicial.IsZero() {
		return math.NaN()
	}
	return pagado.Div(inicial).Mul(cien).InexactFloat64()
}

// ratioPct returns num/den×100, or 0 when den is zero.
func ratioPct(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den) * 100
}
