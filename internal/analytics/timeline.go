package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cobranza-network/cobranza/internal/domain"
	"github.com/cobranza-network/cobranza/internal/store"
)

// PuntoSaldo is one point of the running-balance curve.
type PuntoSaldo struct {
	Fecha time.Time       `json:"fecha"`
	Saldo decimal.Decimal `json:"saldo"`
}

// ComputeBalanceTimeline reconstructs the chronological balance curve of a
// cliente: the initial debt at the loan date, then one point per payment.
// Emitted balances are clamped to a floor of zero — unlike DeudaRestante in
// ClienteStats, which stays negative on overpayment. Both behaviors are
// load-bearing for the dashboard.
func ComputeBalanceTimeline(s *store.Snapshot, clienteID string) ([]PuntoSaldo, error) {
	c, err := s.Cliente(clienteID)
	if err != nil {
		return nil, err
	}
	ints, err := s.InteraccionesDe(clienteID)
	if err != nil {
		return nil, err
	}
	return balanceTimeline(c, ints), nil
}

func balanceTimeline(c domain.Cliente, ints []domain.Interaccion) []PuntoSaldo {
	// The snapshot index is already ascending, but the builder does not
	// depend on that: sort a copy defensively.
	ordered := append([]domain.Interaccion(nil), ints...)
	sort.SliceStable(ordered, func(a, b int) bool {
		return ordered[a].Timestamp.Before(ordered[b].Timestamp)
	})

	saldo := c.MontoDeudaInicial
	puntos := []PuntoSaldo{{Fecha: c.FechaPrestamo.Time, Saldo: saldo}}

	for _, in := range ordered {
		if !in.EsPago() || in.Monto.IsZero() {
			continue
		}
		saldo = saldo.Sub(in.Monto)
		emitido := saldo
		if emitido.Sign() < 0 {
			emitido = decimal.Zero
		}
		puntos = append(puntos, PuntoSaldo{Fecha: in.Timestamp, Saldo: emitido})
	}
	return puntos
}
