// Package domain contains the record types of the collections portfolio.
// It has no infrastructure imports; every aggregate in internal/analytics
// is a pure function over these types.
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ─── Cliente ────────────────────────────────────────────────────────────────

// TipoDeuda classifies the product behind a debt.
type TipoDeuda string

const (
	DeudaTarjetaCredito   TipoDeuda = "tarjeta_credito"
	DeudaPrestamoPersonal TipoDeuda = "prestamo_personal"
	DeudaHipoteca         TipoDeuda = "hipoteca"
	DeudaAuto             TipoDeuda = "auto"
)

// TiposDeuda returns every debt category. Tests assert that Label covers
// exactly this set so a new category cannot fall through silently.
func TiposDeuda() []TipoDeuda {
	return []TipoDeuda{DeudaTarjetaCredito, DeudaPrestamoPersonal, DeudaHipoteca, DeudaAuto}
}

// Label returns the display name for a debt category, "" for unknown values.
func (t TipoDeuda) Label() string {
	switch t {
	case DeudaTarjetaCredito:
		return "Tarjeta de Crédito"
	case DeudaPrestamoPersonal:
		return "Préstamo Personal"
	case DeudaHipoteca:
		return "Hipoteca"
	case DeudaAuto:
		return "Préstamo Auto"
	}
	return ""
}

// Cliente is a debtor record. Immutable after load.
type Cliente struct {
	ID                string          `json:"id"`
	Nombre            string          `json:"nombre"`
	Telefono          string          `json:"telefono"`
	MontoDeudaInicial decimal.Decimal `json:"monto_deuda_inicial"`
	FechaPrestamo     Fecha           `json:"fecha_prestamo"`
	TipoDeuda         TipoDeuda       `json:"tipo_deuda"`
}

// ─── Interacción ────────────────────────────────────────────────────────────

// TipoInteraccion classifies a contact or payment event.
type TipoInteraccion string

const (
	InteraccionLlamadaSaliente TipoInteraccion = "llamada_saliente"
	InteraccionLlamadaEntrante TipoInteraccion = "llamada_entrante"
	InteraccionEmail           TipoInteraccion = "email"
	InteraccionSMS             TipoInteraccion = "sms"
	InteraccionPagoRecibido    TipoInteraccion = "pago_recibido"
)

// TiposInteraccion returns every interaction type.
func TiposInteraccion() []TipoInteraccion {
	return []TipoInteraccion{
		InteraccionLlamadaSaliente,
		InteraccionLlamadaEntrante,
		InteraccionEmail,
		InteraccionSMS,
		InteraccionPagoRecibido,
	}
}

// EsLlamada reports whether the type is an inbound or outbound call.
func (t TipoInteraccion) EsLlamada() bool {
	return t == InteraccionLlamadaSaliente || t == InteraccionLlamadaEntrante
}

// Label returns the display name for an interaction type, "" for unknown values.
func (t TipoInteraccion) Label() string {
	switch t {
	case InteraccionLlamadaSaliente:
		return "Llamada Saliente"
	case InteraccionLlamadaEntrante:
		return "Llamada Entrante"
	case InteraccionEmail:
		return "Email"
	case InteraccionSMS:
		return "SMS"
	case InteraccionPagoRecibido:
		return "Pago Recibido"
	}
	return ""
}

// Resultado is the outcome of a call.
type Resultado string

const (
	ResultadoPromesaPago   Resultado = "promesa_pago"
	ResultadoSinRespuesta  Resultado = "sin_respuesta"
	ResultadoRenegociacion Resultado = "renegociacion"
	ResultadoDisputa       Resultado = "disputa"
	ResultadoPagoInmediato Resultado = "pago_inmediato"
	ResultadoSeNiegaPagar  Resultado = "se_niega_pagar"
)

// Resultados returns every call outcome.
func Resultados() []Resultado {
	return []Resultado{
		ResultadoPromesaPago,
		ResultadoSinRespuesta,
		ResultadoRenegociacion,
		ResultadoDisputa,
		ResultadoPagoInmediato,
		ResultadoSeNiegaPagar,
	}
}

// Label returns the display name for an outcome, "" for unknown values.
func (r Resultado) Label() string {
	switch r {
	case ResultadoPromesaPago:
		return "Promesa de Pago"
	case ResultadoSinRespuesta:
		return "Sin Respuesta"
	case ResultadoRenegociacion:
		return "Renegociación"
	case ResultadoDisputa:
		return "Disputa"
	case ResultadoPagoInmediato:
		return "Pago Inmediato"
	case ResultadoSeNiegaPagar:
		return "Se Niega a Pagar"
	}
	return ""
}

// Sentimiento is the perceived mood of the debtor during a call.
type Sentimiento string

const (
	SentimientoCooperativo Sentimiento = "cooperativo"
	SentimientoNeutral     Sentimiento = "neutral"
	SentimientoFrustrado   Sentimiento = "frustrado"
	SentimientoHostil      Sentimiento = "hostil"
	SentimientoNoAplica    Sentimiento = "n/a"
)

// Sentimientos returns every sentiment, n/a included.
func Sentimientos() []Sentimiento {
	return []Sentimiento{
		SentimientoCooperativo,
		SentimientoNeutral,
		SentimientoFrustrado,
		SentimientoHostil,
		SentimientoNoAplica,
	}
}

// Reportable reports whether the sentiment counts toward the portfolio
// sentiment breakdown. Absent and "n/a" sentiments do not.
func (s Sentimiento) Reportable() bool {
	return s != "" && s != SentimientoNoAplica
}

// Label returns the display name for a sentiment, "" for unknown values.
func (s Sentimiento) Label() string {
	switch s {
	case SentimientoCooperativo:
		return "Cooperativo"
	case SentimientoNeutral:
		return "Neutral"
	case SentimientoFrustrado:
		return "Frustrado"
	case SentimientoHostil:
		return "Hostil"
	case SentimientoNoAplica:
		return "N/A"
	}
	return ""
}

// MetodoPago is the payment channel of a pago_recibido interaction.
type MetodoPago string

const (
	PagoTransferencia MetodoPago = "transferencia"
	PagoTarjeta       MetodoPago = "tarjeta"
	PagoEfectivo      MetodoPago = "efectivo"
)

// MetodosPago returns every payment method.
func MetodosPago() []MetodoPago {
	return []MetodoPago{PagoTransferencia, PagoTarjeta, PagoEfectivo}
}

// Label returns the display name for a payment method, "" for unknown values.
func (m MetodoPago) Label() string {
	switch m {
	case PagoTransferencia:
		return "Transferencia"
	case PagoTarjeta:
		return "Tarjeta"
	case PagoEfectivo:
		return "Efectivo"
	}
	return ""
}

// PlanPago is the renegotiated installment plan attached to a
// renegociacion outcome.
type PlanPago struct {
	Cuotas       int             `json:"cuotas"`
	MontoMensual decimal.Decimal `json:"monto_mensual"`
}

// Interaccion is a single timestamped contact or payment event tied to one
// cliente. Optional fields keep their zero value when absent; a zero Monto
// on a payment is treated as missing throughout the aggregators.
type Interaccion struct {
	ID               string          `json:"id"`
	ClienteID        string          `json:"cliente_id"`
	Timestamp        time.Time       `json:"timestamp"`
	Tipo             TipoInteraccion `json:"tipo"`
	DuracionSegundos int             `json:"duracion_segundos,omitempty"`
	AgenteID         string          `json:"agente_id,omitempty"`
	Resultado        Resultado       `json:"resultado,omitempty"`
	Sentimiento      Sentimiento     `json:"sentimiento,omitempty"`
	MontoPrometido   decimal.Decimal `json:"monto_prometido"`
	FechaPromesa     Fecha           `json:"fecha_promesa"`
	NuevoPlanPago    *PlanPago       `json:"nuevo_plan_pago,omitempty"`
	Monto            decimal.Decimal `json:"monto"`
	MetodoPago       MetodoPago      `json:"metodo_pago,omitempty"`
	PagoCompleto     bool            `json:"pago_completo,omitempty"`
}

// EsPago reports whether the interaction is a received payment.
func (i Interaccion) EsPago() bool { return i.Tipo == InteraccionPagoRecibido }

// EsLlamada reports whether the interaction is a call.
func (i Interaccion) EsLlamada() bool { return i.Tipo.EsLlamada() }

// EsPromesa reports whether the interaction recorded a promise to pay.
func (i Interaccion) EsPromesa() bool { return i.Resultado == ResultadoPromesaPago }

// ─── Fecha ──────────────────────────────────────────────────────────────────

const fechaLayout = "2006-01-02"

// Fecha is a calendar date that marshals as "YYYY-MM-DD". Loan dates and
// promise due dates carry no time of day in the data files.
type Fecha struct {
	time.Time
}

// NewFecha builds a Fecha at midnight UTC.
func NewFecha(year int, month time.Month, day int) Fecha {
	return Fecha{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// MarshalJSON writes the date as "YYYY-MM-DD", or null when zero.
func (f Fecha) MarshalJSON() ([]byte, error) {
	if f.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + f.Format(fechaLayout) + `"`), nil
}

// UnmarshalJSON accepts "YYYY-MM-DD", an RFC 3339 timestamp, or null.
func (f *Fecha) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		f.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(fechaLayout, s); err == nil {
		f.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("parse fecha %q: %w", s, err)
	}
	f.Time = t.UTC()
	return nil
}
