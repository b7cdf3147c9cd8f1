// Package graph projects the record store onto a bipartite cliente/agente
// graph. It is projection and filtering only; no traversal or scoring
// happens here.
package graph

import (
	"strings"

	"github.com/cobranza-network/cobranza/internal/domain"
	"github.com/cobranza-network/cobranza/internal/store"
)

// NodeTipo tags a node as one side of the bipartite graph.
type NodeTipo string

const (
	NodeCliente NodeTipo = "cliente"
	NodeAgente  NodeTipo = "agente"
)

// Render groups for the force-graph frontend.
const (
	groupClientes = 1
	groupAgentes  = 2
)

// Node is one graph vertex.
type Node struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Tipo  NodeTipo `json:"tipo"`
	Group int      `json:"group"`
}

// Edge is one directed cliente→agente link, labeled with the interaction
// type that produced it.
type Edge struct {
	Source string                 `json:"source"`
	Target string                 `json:"target"`
	Tipo   domain.TipoInteraccion `json:"tipo"`
}

// Graph is the node/edge projection handed to the presentation layer.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"links"`
}

// Filter restricts a graph at query time. Zero-value fields don't restrict.
type Filter struct {
	Tipo     domain.TipoInteraccion // keep edges with this label
	SourceID string                 // keep edges whose source equals this id
}

// Build projects the snapshot onto the full graph: one node per cliente
// (isolated ones included), one node per distinct agente observed on any
// interaction, and one edge per interaction carrying an agente id. Agent
// nodes appear in first-observed order so the projection is deterministic.
func Build(s *store.Snapshot) Graph {
	var g Graph

	for _, c := range s.Clientes() {
		g.Nodes = append(g.Nodes, Node{
			ID:    c.ID,
			Name:  c.Nombre,
			Tipo:  NodeCliente,
			Group: groupClientes,
		})
	}

	seen := make(map[string]bool)
	for _, in := range s.Interacciones() {
		if in.AgenteID == "" {
			continue
		}
		if !seen[in.AgenteID] {
			seen[in.AgenteID] = true
			g.Nodes = append(g.Nodes, Node{
				ID:    in.AgenteID,
				Name:  agenteLabel(in.AgenteID),
				Tipo:  NodeAgente,
				Group: groupAgentes,
			})
		}
		g.Edges = append(g.Edges, Edge{
			Source: in.ClienteID,
			Target: in.AgenteID,
			Tipo:   in.Tipo,
		})
	}
	return g
}

// Apply filters the edges, then drops every node no surviving edge touches.
// Filtered output never contains an isolated node or a dangling edge.
func (g Graph) Apply(f Filter) Graph {
	var edges []Edge
	for _, e := range g.Edges {
		if f.Tipo != "" && e.Tipo != f.Tipo {
			continue
		}
		if f.SourceID != "" && e.Source != f.SourceID {
			continue
		}
		edges = append(edges, e)
	}

	touched := make(map[string]bool, 2*len(edges))
	for _, e := range edges {
		touched[e.Source] = true
		touched[e.Target] = true
	}

	var nodes []Node
	for _, n := range g.Nodes {
		if touched[n.ID] {
			nodes = append(nodes, n)
		}
	}
	return Graph{Nodes: nodes, Edges: edges}
}

// agenteLabel derives a display name from the agent identifier.
func agenteLabel(agenteID string) string {
	return "Agente " + strings.TrimPrefix(agenteID, "agente_")
}
