// Package dataset loads a portfolio dataset into a store snapshot. The
// binary ships with an embedded sample; a JSON file in the same shape can
// be supplied instead. Decoding is structural only — semantic validation
// of the records is out of scope here.
package dataset

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cobranza-network/cobranza/internal/domain"
	"github.com/cobranza-network/cobranza/internal/store"
)

//go:embed sample.json
var sampleJSON []byte

// Metadata describes the provenance of a dataset file.
type Metadata struct {
	FechaGeneracion    time.Time `json:"fecha_generacion"`
	TotalClientes      int       `json:"total_clientes"`
	TotalInteracciones int       `json:"total_interacciones"`
	Periodo            string    `json:"periodo"`
}

// Dataset is the on-disk shape of a portfolio export.
type Dataset struct {
	Metadata      Metadata             `json:"metadata"`
	Clientes      []domain.Cliente     `json:"clientes"`
	Interacciones []domain.Interaccion `json:"interacciones"`
}

// Sample returns a snapshot of the embedded sample dataset.
func Sample() (*store.Snapshot, error) {
	return decode(bytes.NewReader(sampleJSON))
}

// LoadFile reads a dataset file and returns its snapshot.
func LoadFile(path string) (*store.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	snap, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	return snap, nil
}

func decode(r io.Reader) (*store.Snapshot, error) {
	var d Dataset
	dec := json.NewDecoder(r)
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	if len(d.Clientes) == 0 {
		return nil, domain.ErrEmptyDataset
	}

	// Timestamps may carry any offset in the file; the store works in UTC.
	for i := range d.Interacciones {
		d.Interacciones[i].Timestamp = d.Interacciones[i].Timestamp.UTC()
	}
	return store.NewSnapshot(d.Clientes, d.Interacciones), nil
}
