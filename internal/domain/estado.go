package domain

// Estado is the derived collection status of a cliente. It is never stored;
// the roster aggregator classifies it on every computation.
type Estado string

const (
	EstadoPagado           Estado = "pagado"
	EstadoPromesaPendiente Estado = "promesa_pendiente"
	EstadoActivo           Estado = "activo"
)

// Estados returns every status.
func Estados() []Estado {
	return []Estado{EstadoPagado, EstadoPromesaPendiente, EstadoActivo}
}

// Label returns the display name for a status, "" for unknown values.
func (e Estado) Label() string {
	switch e {
	case EstadoPagado:
		return "Pagado"
	case EstadoPromesaPendiente:
		return "Promesa Pendiente"
	case EstadoActivo:
		return "Activo"
	}
	return ""
}
