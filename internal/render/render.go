// Package render serializes the dependency and class graphs into diagram
// artifacts: Mermaid flowcharts or Graphviz DOT descriptors plus SVG images.
package render

import (
	"context"
	"os"
	"path/filepath"

	"explainer/internal/errs"
	"explainer/internal/graph"
)

const (
	FormatMermaid = "mermaid"
	FormatSVG     = "svg"
)

// Fixed artifact base names, one per graph.
const (
	moduleGraphBase    = "module_graph"
	classHierarchyBase = "class_hierarchy"
)

type Renderer struct {
	graphviz *GraphvizRunner
}

func NewRenderer(dotBinary string) *Renderer {
	return &Renderer{graphviz: NewGraphvizRunner(dotBinary)}
}

// ValidateFormat fails fast on unknown formats, before any file I/O happens.
func ValidateFormat(format string) error {
	switch format {
	case FormatMermaid, FormatSVG:
		return nil
	default:
		return errs.Newf(errs.CodeValidation, "unsupported format %q: must be %q or %q", format, FormatMermaid, FormatSVG)
	}
}

// Render writes diagram artifacts for both graphs into dest. A missing layout
// tool degrades to descriptor-only output; everything else propagates.
func (r *Renderer) Render(ctx context.Context, pair graph.Pair, dest, format string) error {
	if err := ValidateFormat(format); err != nil {
		return err
	}

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return err
	}

	named := []struct {
		base string
		g    *graph.Graph
	}{
		{moduleGraphBase, pair.Dependencies},
		{classHierarchyBase, pair.Classes},
	}

	switch format {
	case FormatMermaid:
		for _, n := range named {
			path := filepath.Join(dest, n.base+".md")
			if err := os.WriteFile(path, []byte(ToMermaid(n.g)), 0o644); err != nil {
				return err
			}
		}
		return nil

	case FormatSVG:
		for _, n := range named {
			path := filepath.Join(dest, n.base+".dot")
			if err := os.WriteFile(path, []byte(ToDOT(n.g)), 0o644); err != nil {
				return err
			}
		}
		if !r.graphviz.Available() {
			// Descriptors are already on disk; a half-successful render
			// is an acceptable terminal state.
			r.graphviz.ReportMissing()
			return nil
		}
		for _, n := range named {
			dotPath := filepath.Join(dest, n.base+".dot")
			svgPath := filepath.Join(dest, n.base+".svg")
			if err := r.graphviz.Rasterize(ctx, dotPath, svgPath); err != nil {
				return err
			}
		}
		return nil
	}

	return nil
}
