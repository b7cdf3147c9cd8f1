package analytics

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cobranza-network/cobranza/internal/dataset"
	"github.com/cobranza-network/cobranza/internal/domain"
	"github.com/cobranza-network/cobranza/internal/store"
)

const floatTol = 1e-9

func sampleSnapshot(t *testing.T) *store.Snapshot {
	t.Helper()
	snap, err := dataset.Sample()
	if err != nil {
		t.Fatalf("load sample dataset: %v", err)
	}
	return snap
}

func cliente(id string, inicial int64) domain.Cliente {
	return domain.Cliente{
		ID:                id,
		Nombre:            "Test " + id,
		MontoDeudaInicial: decimal.NewFromInt(inicial),
		FechaPrestamo:     domain.NewFecha(2023, time.January, 1),
		TipoDeuda:         domain.DeudaPrestamoPersonal,
	}
}

func llamada(clienteID string, ts time.Time, resultado domain.Resultado) domain.Interaccion {
	return domain.Interaccion{
		ID:        "ll_" + ts.Format("20060102150405"),
		ClienteID: clienteID,
		Timestamp: ts,
		Tipo:      domain.InteraccionLlamadaSaliente,
		Resultado: resultado,
	}
}

func pago(clienteID string, ts time.Time, monto int64) domain.Interaccion {
	return domain.Interaccion{
		ID:        "pg_" + ts.Format("20060102150405"),
		ClienteID: clienteID,
		Timestamp: ts,
		Tipo:      domain.InteraccionPagoRecibido,
		Monto:     decimal.NewFromInt(monto),
	}
}

// Sample-data scenario: cliente_001 has a 5000 promise on 2024-03-01 and a
// 5000 payment on 2024-03-15, against an initial debt of 25000.
func TestComputeClienteStats_Cliente001(t *testing.T) {
	snap := sampleSnapshot(t)

	stats, err := ComputeClienteStats(snap, "cliente_001")
	if err != nil {
		t.Fatalf("ComputeClienteStats: %v", err)
	}

	if want := decimal.NewFromInt(5000); !stats.TotalPagado.Equal(want) {
		t.Errorf("TotalPagado = %s, want %s", stats.TotalPagado, want)
	}
	if want := decimal.NewFromInt(20000); !stats.DeudaRestante.Equal(want) {
		t.Errorf("DeudaRestante = %s, want %s", stats.DeudaRestante, want)
	}
	if math.Abs(stats.PorcentajeRecuperado-20.0) > floatTol {
		t.Errorf("PorcentajeRecuperado = %v, want 20.0", stats.PorcentajeRecuperado)
	}
	if stats.TotalPromesas != 1 || stats.PromesasCumplidas != 1 {
		t.Errorf("promesas = %d/%d, want 1/1", stats.PromesasCumplidas, stats.TotalPromesas)
	}
	if math.Abs(stats.TasaCumplimientoPromesas-100.0) > floatTol {
		t.Errorf("TasaCumplimientoPromesas = %v, want 100.0", stats.TasaCumplimientoPromesas)
	}
	if stats.Estado() != domain.EstadoActivo {
		t.Errorf("Estado = %q, want activo", stats.Estado())
	}
}

// Sample-data scenario: cliente_005 paid the full 32000 after an
// immediate-payment call the same day.
func TestComputeClienteStats_Cliente005_Pagado(t *testing.T) {
	snap := sampleSnapshot(t)

	stats, err := ComputeClienteStats(snap, "cliente_005")
	if err != nil {
		t.Fatalf("ComputeClienteStats: %v", err)
	}

	if !stats.DeudaRestante.IsZero() {
		t.Errorf("DeudaRestante = %s, want 0", stats.DeudaRestante)
	}
	if stats.Estado() != domain.EstadoPagado {
		t.Errorf("Estado = %q, want pagado", stats.Estado())
	}
	if math.Abs(stats.PorcentajeRecuperado-100.0) > floatTol {
		t.Errorf("PorcentajeRecuperado = %v, want 100.0", stats.PorcentajeRecuperado)
	}
}

func TestComputeClienteStats_NotFound(t *testing.T) {
	snap := sampleSnapshot(t)

	_, err := ComputeClienteStats(snap, "cliente_999")
	if !errors.Is(err, domain.ErrClienteNotFound) {
		t.Errorf("err = %v, want ErrClienteNotFound", err)
	}
}

// remaining_debt = initial − paid with no clamping: overpayment goes negative.
func TestComputeClienteStats_OverpaymentGoesNegative(t *testing.T) {
	c := cliente("c1", 1000)
	snap := store.NewSnapshot([]domain.Cliente{c}, []domain.Interaccion{
		pago("c1", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 1500),
	})

	stats, err := ComputeClienteStats(snap, "c1")
	if err != nil {
		t.Fatalf("ComputeClienteStats: %v", err)
	}
	if want := decimal.NewFromInt(-500); !stats.DeudaRestante.Equal(want) {
		t.Errorf("DeudaRestante = %s, want %s", stats.DeudaRestante, want)
	}
	if stats.Estado() != domain.EstadoPagado {
		t.Errorf("Estado = %q, want pagado", stats.Estado())
	}
}

// recovery_percentage is NaN exactly when the initial debt is zero.
func TestComputeClienteStats_ZeroInitialDebt(t *testing.T) {
	c := cliente("c1", 0)
	snap := store.NewSnapshot([]domain.Cliente{c}, []domain.Interaccion{
		pago("c1", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 100),
	})

	stats, err := ComputeClienteStats(snap, "c1")
	if err != nil {
		t.Fatalf("ComputeClienteStats: %v", err)
	}
	if !math.IsNaN(stats.PorcentajeRecuperado) {
		t.Errorf("PorcentajeRecuperado = %v, want NaN", stats.PorcentajeRecuperado)
	}
}

// A payment at the exact promise timestamp does not fulfill the promise;
// "later" is strict.
func TestComputeClienteStats_PromiseNeedsStrictlyLaterPayment(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	c := cliente("c1", 10000)

	tests := []struct {
		name          string
		pagoTS        time.Time
		wantCumplidas int
	}{
		{"payment at same instant", ts, 0},
		{"payment one second later", ts.Add(time.Second), 1},
		{"payment before promise", ts.Add(-time.Hour), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := store.NewSnapshot([]domain.Cliente{c}, []domain.Interaccion{
				llamada("c1", ts, domain.ResultadoPromesaPago),
				pago("c1", tt.pagoTS, 500),
			})
			stats, err := ComputeClienteStats(snap, "c1")
			if err != nil {
				t.Fatalf("ComputeClienteStats: %v", err)
			}
			if stats.PromesasCumplidas != tt.wantCumplidas {
				t.Errorf("PromesasCumplidas = %d, want %d", stats.PromesasCumplidas, tt.wantCumplidas)
			}
		})
	}
}

// pagado takes precedence over promesa_pendiente even when an unfulfilled
// promise exists.
func TestEstado_PagadoBeatsPromesaPendiente(t *testing.T) {
	ts := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	c := cliente("c1", 1000)
	snap := store.NewSnapshot([]domain.Cliente{c}, []domain.Interaccion{
		// Full payment first, promise afterwards: the promise has no later
		// payment, yet the cliente is pagado.
		pago("c1", ts, 1000),
		llamada("c1", ts.Add(time.Hour), domain.ResultadoPromesaPago),
	})

	stats, err := ComputeClienteStats(snap, "c1")
	if err != nil {
		t.Fatalf("ComputeClienteStats: %v", err)
	}
	if stats.PromesasPendientes() != 1 {
		t.Fatalf("PromesasPendientes = %d, want 1", stats.PromesasPendientes())
	}
	if stats.Estado() != domain.EstadoPagado {
		t.Errorf("Estado = %q, want pagado", stats.Estado())
	}
}

func TestEstado_PromesaPendiente(t *testing.T) {
	ts := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	c := cliente("c1", 1000)
	snap := store.NewSnapshot([]domain.Cliente{c}, []domain.Interaccion{
		llamada("c1", ts, domain.ResultadoPromesaPago),
	})

	stats, err := ComputeClienteStats(snap, "c1")
	if err != nil {
		t.Fatalf("ComputeClienteStats: %v", err)
	}
	if stats.Estado() != domain.EstadoPromesaPendiente {
		t.Errorf("Estado = %q, want promesa_pendiente", stats.Estado())
	}
}

// contact_rate is 0, not undefined, for a cliente with no calls.
func TestComputeClienteStats_NoCalls(t *testing.T) {
	c := cliente("c1", 1000)
	snap := store.NewSnapshot([]domain.Cliente{c}, []domain.Interaccion{
		{
			ID:        "em_1",
			ClienteID: "c1",
			Timestamp: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			Tipo:      domain.InteraccionEmail,
		},
	})

	stats, err := ComputeClienteStats(snap, "c1")
	if err != nil {
		t.Fatalf("ComputeClienteStats: %v", err)
	}
	if stats.TotalLlamadas != 0 {
		t.Errorf("TotalLlamadas = %d, want 0", stats.TotalLlamadas)
	}
	if stats.TasaContacto != 0 {
		t.Errorf("TasaContacto = %v, want 0", stats.TasaContacto)
	}
	if stats.TasaCumplimientoPromesas != 0 {
		t.Errorf("TasaCumplimientoPromesas = %v, want 0", stats.TasaCumplimientoPromesas)
	}
}

// A call without a recorded outcome still counts as contacted; only an
// explicit sin_respuesta does not.
func TestComputeClienteStats_TasaContacto(t *testing.T) {
	ts := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	c := cliente("c1", 1000)
	snap := store.NewSnapshot([]domain.Cliente{c}, []domain.Interaccion{
		llamada("c1", ts, domain.ResultadoSinRespuesta),
		llamada("c1", ts.Add(time.Hour), domain.ResultadoDisputa),
		llamada("c1", ts.Add(2*time.Hour), ""),
		llamada("c1", ts.Add(3*time.Hour), domain.ResultadoSeNiegaPagar),
	})

	stats, err := ComputeClienteStats(snap, "c1")
	if err != nil {
		t.Fatalf("ComputeClienteStats: %v", err)
	}
	if stats.TotalLlamadas != 4 {
		t.Fatalf("TotalLlamadas = %d, want 4", stats.TotalLlamadas)
	}
	if math.Abs(stats.TasaContacto-75.0) > floatTol {
		t.Errorf("TasaContacto = %v, want 75.0", stats.TasaContacto)
	}
}
