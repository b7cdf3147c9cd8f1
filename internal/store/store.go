// Package store holds the immutable in-memory snapshot of the two record
// collections. Aggregators read from a snapshot and never mutate it;
// replacing the data means building a new snapshot.
package store

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/cobranza-network/cobranza/internal/domain"
)

// Snapshot is a read-only view of the loaded clientes and interacciones.
// Interactions are indexed per cliente and kept in ascending timestamp
// order. An interaction whose cliente_id resolves to no cliente stays in
// the full collection (portfolio aggregates see it) but is unreachable
// through any per-cliente accessor.
type Snapshot struct {
	id            string
	clientes      []domain.Cliente
	interacciones []domain.Interaccion

	clientePorID map[string]int
	porCliente   map[string][]domain.Interaccion
}

// NewSnapshot copies both collections into a fresh snapshot and builds the
// per-cliente index. The input slices stay owned by the caller.
func NewSnapshot(clientes []domain.Cliente, interacciones []domain.Interaccion) *Snapshot {
	s := &Snapshot{
		id:            uuid.NewString(),
		clientes:      append([]domain.Cliente(nil), clientes...),
		interacciones: append([]domain.Interaccion(nil), interacciones...),
		clientePorID:  make(map[string]int, len(clientes)),
		porCliente:    make(map[string][]domain.Interaccion),
	}

	for i, c := range s.clientes {
		s.clientePorID[c.ID] = i
	}
	for _, in := range s.interacciones {
		s.porCliente[in.ClienteID] = append(s.porCliente[in.ClienteID], in)
	}
	for id := range s.porCliente {
		ints := s.porCliente[id]
		sort.SliceStable(ints, func(a, b int) bool {
			return ints[a].Timestamp.Before(ints[b].Timestamp)
		})
	}
	return s
}

// ID is the unique identifier assigned to this snapshot at build time.
func (s *Snapshot) ID() string { return s.id }

// NumClientes returns the cliente count.
func (s *Snapshot) NumClientes() int { return len(s.clientes) }

// NumInteracciones returns the interaction count, dangling ones included.
func (s *Snapshot) NumInteracciones() int { return len(s.interacciones) }

// Clientes returns all cliente records. Callers must not mutate the slice.
func (s *Snapshot) Clientes() []domain.Cliente { return s.clientes }

// Interacciones returns the full interaction collection in load order.
// Callers must not mutate the slice.
func (s *Snapshot) Interacciones() []domain.Interaccion { return s.interacciones }

// Cliente resolves a cliente by id.
func (s *Snapshot) Cliente(id string) (domain.Cliente, error) {
	i, ok := s.clientePorID[id]
	if !ok {
		return domain.Cliente{}, fmt.Errorf("cliente %q: %w", id, domain.ErrClienteNotFound)
	}
	return s.clientes[i], nil
}

// InteraccionesDe returns the interactions of one cliente in ascending
// timestamp order. The cliente must exist; the result may be empty.
func (s *Snapshot) InteraccionesDe(clienteID string) ([]domain.Interaccion, error) {
	if _, err := s.Cliente(clienteID); err != nil {
		return nil, err
	}
	return s.porCliente[clienteID], nil
}
