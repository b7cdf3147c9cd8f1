package cli

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/cobranza-network/cobranza/internal/analytics"
	"github.com/cobranza-network/cobranza/internal/dataset"
)

func TestFmtPct(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{20, "20.0%"},
		{66.666666, "66.7%"},
		{0, "0.0%"},
		{math.NaN(), "n/a"},
	}
	for _, tt := range tests {
		if got := fmtPct(tt.in); got != tt.want {
			t.Errorf("fmtPct(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPrintKPIs(t *testing.T) {
	snap, err := dataset.Sample()
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	now := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	stats := analytics.ComputePortfolioStats(snap, now)

	var buf bytes.Buffer
	printKPIs(&buf, stats)
	out := buf.String()

	for _, want := range []string{
		"Clientes:              5",
		"Deuda total:           347000",
		"Total pagado:          37000",
		"Tasa cumplimiento:     200.0%",
		"hipoteca",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLoadSnapshot_EmptyPathUsesSample(t *testing.T) {
	snap, err := loadSnapshot("")
	if err != nil {
		t.Fatalf("loadSnapshot: %v", err)
	}
	if got, want := snap.NumClientes(), 5; got != want {
		t.Errorf("NumClientes = %d, want %d", got, want)
	}
}
