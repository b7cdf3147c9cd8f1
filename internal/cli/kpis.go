package cli

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/cobranza-network/cobranza/internal/analytics"
	"github.com/cobranza-network/cobranza/internal/domain"
)

var kpisCmd = &cobra.Command{
	Use:   "kpis",
	Short: "Print portfolio KPIs and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := loadSnapshot(dataPath)
		if err != nil {
			return fmt.Errorf("load dataset: %w", err)
		}
		stats := analytics.ComputePortfolioStats(snap, time.Now().UTC())
		printKPIs(os.Stdout, stats)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(kpisCmd)
}

func printKPIs(w io.Writer, stats analytics.PortfolioStats) {
	fmt.Fprintf(w, "Clientes:              %d\n", stats.TotalClientes)
	fmt.Fprintf(w, "Interacciones:         %d\n", stats.TotalInteracciones)
	fmt.Fprintf(w, "Deuda total:           %s\n", stats.DeudaTotal)
	fmt.Fprintf(w, "Total pagado:          %s\n", stats.TotalPagado)
	fmt.Fprintf(w, "Tasa recuperación:     %s\n", fmtPct(stats.TasaRecuperacion))
	fmt.Fprintf(w, "Tasa cumplimiento:     %s\n", fmtPct(stats.TasaCumplimientoPromesas))
	fmt.Fprintf(w, "Tasa contacto:         %s\n", fmtPct(stats.TasaContacto))

	fmt.Fprintln(w, "Deuda por tipo:")
	tipos := make([]string, 0, len(stats.DeudaPorTipo))
	for tipo := range stats.DeudaPorTipo {
		tipos = append(tipos, string(tipo))
	}
	sort.Strings(tipos)
	for _, tipo := range tipos {
		fmt.Fprintf(w, "  %-20s %s\n", tipo, stats.DeudaPorTipo[domain.TipoDeuda(tipo)])
	}
}

// fmtPct renders a percentage, with the undefined zero-debt recovery rate
// shown as n/a rather than a number.
func fmtPct(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", v)
}
