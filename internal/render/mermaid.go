package render

import (
	"fmt"
	"strings"

	"explainer/internal/graph"
)

// ToMermaid emits a left-to-right flowchart wrapped in a fenced block, one
// line per edge. Nodes without edges produce no output in this format; only
// the DOT descriptor declares standalone nodes.
func ToMermaid(g *graph.Graph) string {
	var b strings.Builder
	b.WriteString("```mermaid\n")
	b.WriteString("graph LR;\n")
	for _, e := range g.Edges() {
		b.WriteString(fmt.Sprintf("    \"%s\" --> \"%s\"\n", e.From, e.To))
	}
	b.WriteString("```\n")
	return b.String()
}
