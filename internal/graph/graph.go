// Package graph holds the directed graphs built from scan results: a
// module-dependency graph and a class-hierarchy graph.
package graph

import (
	"sort"

	"explainer/internal/util"
)

type Edge struct {
	From string
	To   string
}

// Graph is a directed graph over string-named nodes. Parallel identical edges
// collapse; both endpoints of an edge always exist as nodes. Built once per
// run and read-only afterwards.
type Graph struct {
	nodes map[string]struct{}
	edges map[Edge]struct{}
}

func New() *Graph {
	return &Graph{
		nodes: make(map[string]struct{}),
		edges: make(map[Edge]struct{}),
	}
}

func (g *Graph) AddNode(name string) {
	g.nodes[name] = struct{}{}
}

func (g *Graph) AddEdge(from, to string) {
	g.AddNode(from)
	g.AddNode(to)
	g.edges[Edge{From: from, To: to}] = struct{}{}
}

func (g *Graph) HasNode(name string) bool {
	_, ok := g.nodes[name]
	return ok
}

func (g *Graph) HasEdge(from, to string) bool {
	_, ok := g.edges[Edge{From: from, To: to}]
	return ok
}

// Nodes returns all node names in sorted order.
func (g *Graph) Nodes() []string {
	return util.SortedStringKeys(g.nodes)
}

// Edges returns all edges sorted by source then target, so renderers produce
// identical output regardless of construction order.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, len(g.edges))
	for e := range g.edges {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})
	return edges
}

func (g *Graph) NodeCount() int { return len(g.nodes) }

func (g *Graph) EdgeCount() int { return len(g.edges) }
