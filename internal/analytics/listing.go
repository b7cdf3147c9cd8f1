package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/cobranza-network/cobranza/internal/domain"
	"github.com/cobranza-network/cobranza/internal/store"
)

// Orden selects the roster sort key.
type Orden string

const (
	OrdenNombre Orden = "nombre" // name, ascending
	OrdenDeuda  Orden = "deuda"  // remaining debt, descending
	OrdenFecha  Orden = "fecha"  // last interaction, most recent first
)

// ListOptions filters and orders the roster. Zero values mean "all" and
// name order.
type ListOptions struct {
	Busqueda   string           // matches nombre (case-insensitive) or telefono
	TipoDeuda  domain.TipoDeuda // restrict to one debt category
	OrdenarPor Orden
}

// ClienteResumen is one roster row: the record plus its derived stats.
type ClienteResumen struct {
	Cliente           domain.Cliente
	Stats             ClienteStats
	Estado            domain.Estado
	UltimaInteraccion *time.Time // nil when the cliente has none
}

// ListClientes computes a roster row per cliente and applies the given
// filter and order. Rows without interactions sort last under OrdenFecha.
func ListClientes(s *store.Snapshot, opts ListOptions) []ClienteResumen {
	resumenes := make([]ClienteResumen, 0, s.NumClientes())
	for _, c := range s.Clientes() {
		if opts.TipoDeuda != "" && c.TipoDeuda != opts.TipoDeuda {
			continue
		}
		if !matchesBusqueda(c, opts.Busqueda) {
			continue
		}

		ints, err := s.InteraccionesDe(c.ID)
		if err != nil {
			continue
		}
		r := ClienteResumen{Cliente: c, Stats: clienteStats(c, ints)}
		r.Estado = r.Stats.Estado()
		if n := len(ints); n > 0 {
			ts := ints[n-1].Timestamp
			r.UltimaInteraccion = &ts
		}
		resumenes = append(resumenes, r)
	}

	ordenar(resumenes, opts.OrdenarPor)
	return resumenes
}

func matchesBusqueda(c domain.Cliente, q string) bool {
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Nombre), strings.ToLower(q)) ||
		strings.Contains(c.Telefono, q)
}

func ordenar(rs []ClienteResumen, por Orden) {
	switch por {
	case OrdenDeuda:
		sort.SliceStable(rs, func(a, b int) bool {
			return rs[a].Stats.DeudaRestante.Cmp(rs[b].Stats.DeudaRestante) > 0
		})
	case OrdenFecha:
		sort.SliceStable(rs, func(a, b int) bool {
			ta, tb := rs[a].UltimaInteraccion, rs[b].UltimaInteraccion
			switch {
			case ta == nil:
				return false
			case tb == nil:
				return true
			default:
				return ta.After(*tb)
			}
		})
	default:
		sort.SliceStable(rs, func(a, b int) bool {
			return rs[a].Cliente.Nombre < rs[b].Cliente.Nombre
		})
	}
}
