package render

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"

	"explainer/internal/observability"
)

// GraphvizRunner invokes the external layout tool to turn a DOT descriptor
// into an SVG image.
type GraphvizRunner struct {
	binary string
}

func NewGraphvizRunner(binary string) *GraphvizRunner {
	if binary == "" {
		binary = "dot"
	}
	return &GraphvizRunner{binary: binary}
}

// Available reports whether the layout tool is on PATH.
func (r *GraphvizRunner) Available() bool {
	_, err := exec.LookPath(r.binary)
	return err == nil
}

// ReportMissing tells the user the tool is absent. Not a silent swallow: the
// missing-tool condition must be surfaced even though the run continues.
func (r *GraphvizRunner) ReportMissing() {
	observability.RasterFailures.Inc()
	slog.Warn("layout tool not found, skipping image generation", "binary", r.binary)
}

// Rasterize runs the tool with the descriptor and output path as positional
// arguments. Blocks until the tool exits.
func (r *GraphvizRunner) Rasterize(ctx context.Context, dotPath, svgPath string) error {
	cmd := exec.CommandContext(ctx, r.binary, "-Tsvg", dotPath, "-o", svgPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		observability.RasterFailures.Inc()
		return fmt.Errorf("%s failed for %s: %s: %w", r.binary, dotPath, string(out), err)
	}
	return nil
}
