package analytics

import (
	"testing"

	"github.com/cobranza-network/cobranza/internal/domain"
)

func TestListClientes_EstadosFromSample(t *testing.T) {
	snap := sampleSnapshot(t)
	rows := ListClientes(snap, ListOptions{})

	if len(rows) != 5 {
		t.Fatalf("len(rows) = %d, want 5", len(rows))
	}

	estados := make(map[string]domain.Estado)
	for _, r := range rows {
		estados[r.Cliente.ID] = r.Estado
	}
	want := map[string]domain.Estado{
		"cliente_001": domain.EstadoActivo, // its one promise was fulfilled
		"cliente_002": domain.EstadoActivo,
		"cliente_003": domain.EstadoActivo,
		"cliente_004": domain.EstadoActivo,
		"cliente_005": domain.EstadoPagado,
	}
	for id, e := range want {
		if estados[id] != e {
			t.Errorf("estado[%s] = %q, want %q", id, estados[id], e)
		}
	}
}

func TestListClientes_DefaultOrderIsNombre(t *testing.T) {
	snap := sampleSnapshot(t)
	rows := ListClientes(snap, ListOptions{})

	for i := 1; i < len(rows); i++ {
		if rows[i-1].Cliente.Nombre > rows[i].Cliente.Nombre {
			t.Fatalf("rows not sorted by nombre: %q before %q",
				rows[i-1].Cliente.Nombre, rows[i].Cliente.Nombre)
		}
	}
}

func TestListClientes_OrdenDeudaDescending(t *testing.T) {
	snap := sampleSnapshot(t)
	rows := ListClientes(snap, ListOptions{OrdenarPor: OrdenDeuda})

	if rows[0].Cliente.ID != "cliente_002" {
		t.Errorf("rows[0] = %s, want cliente_002 (largest remaining debt)", rows[0].Cliente.ID)
	}
	for i := 1; i < len(rows); i++ {
		if rows[i-1].Stats.DeudaRestante.Cmp(rows[i].Stats.DeudaRestante) < 0 {
			t.Fatalf("rows not sorted by deuda descending at %d", i)
		}
	}
}

func TestListClientes_OrdenFecha(t *testing.T) {
	snap := sampleSnapshot(t)
	rows := ListClientes(snap, ListOptions{OrdenarPor: OrdenFecha})

	// cliente_001's payment on 2024-03-15 is the latest interaction.
	if rows[0].Cliente.ID != "cliente_001" {
		t.Errorf("rows[0] = %s, want cliente_001", rows[0].Cliente.ID)
	}
	for i := 1; i < len(rows); i++ {
		a, b := rows[i-1].UltimaInteraccion, rows[i].UltimaInteraccion
		if a == nil && b != nil {
			t.Fatalf("cliente without interactions sorted before one with them at %d", i)
		}
		if a != nil && b != nil && a.Before(*b) {
			t.Fatalf("rows not sorted by recency at %d", i)
		}
	}
}

func TestListClientes_FilterTipoDeuda(t *testing.T) {
	snap := sampleSnapshot(t)
	rows := ListClientes(snap, ListOptions{TipoDeuda: domain.DeudaTarjetaCredito})

	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	for _, r := range rows {
		if r.Cliente.TipoDeuda != domain.DeudaTarjetaCredito {
			t.Errorf("row %s has tipo %q", r.Cliente.ID, r.Cliente.TipoDeuda)
		}
	}
}

func TestListClientes_Busqueda(t *testing.T) {
	snap := sampleSnapshot(t)

	tests := []struct {
		name  string
		q     string
		want  int
		first string
	}{
		{"by nombre case-insensitive", "maría", 1, "cliente_001"},
		{"by telefono fragment", "5678-9012", 1, "cliente_005"},
		{"no match", "zzz", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := ListClientes(snap, ListOptions{Busqueda: tt.q})
			if len(rows) != tt.want {
				t.Fatalf("len(rows) = %d, want %d", len(rows), tt.want)
			}
			if tt.want > 0 && rows[0].Cliente.ID != tt.first {
				t.Errorf("rows[0] = %s, want %s", rows[0].Cliente.ID, tt.first)
			}
		})
	}
}

func TestListClientes_UltimaInteraccion(t *testing.T) {
	snap := sampleSnapshot(t)
	rows := ListClientes(snap, ListOptions{Busqueda: "María"})

	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	ts := rows[0].UltimaInteraccion
	if ts == nil {
		t.Fatal("UltimaInteraccion is nil")
	}
	if got := ts.Format("2006-01-02"); got != "2024-03-15" {
		t.Errorf("UltimaInteraccion = %s, want 2024-03-15", got)
	}
}
