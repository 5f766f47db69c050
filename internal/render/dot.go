package render

import (
	"fmt"
	"strings"

	"explainer/internal/graph"
)

// ToDOT emits a Graphviz digraph: one declaration per node, so isolated nodes
// appear, then one line per edge.
func ToDOT(g *graph.Graph) string {
	var b strings.Builder
	b.WriteString("digraph G {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box, style=rounded, fontname=\"Helvetica\", fontsize=10];\n")
	for _, n := range g.Nodes() {
		b.WriteString(fmt.Sprintf("  \"%s\";\n", n))
	}
	for _, e := range g.Edges() {
		b.WriteString(fmt.Sprintf("  \"%s\" -> \"%s\";\n", e.From, e.To))
	}
	b.WriteString("}\n")
	return b.String()
}
