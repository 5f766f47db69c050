package graph

import (
	"explainer/internal/scan"
)

// Pair bundles the two graphs handed to the renderer.
type Pair struct {
	Dependencies *Graph
	Classes      *Graph
}

// Build converts scan output into the two directed graphs. Every scanned
// module becomes a node even with zero imports; import targets that were never
// scanned still get nodes, since an edge to an external dependency is
// meaningful on its own. Class edges run parent -> child ("is-extended-by").
func Build(res *scan.Result) Pair {
	deps := New()
	for module, imports := range res.Modules {
		deps.AddNode(module)
		for _, imp := range imports {
			deps.AddEdge(module, imp)
		}
	}

	classes := New()
	for child, base := range res.Classes {
		classes.AddEdge(base, child)
	}

	return Pair{Dependencies: deps, Classes: classes}
}
