// Package analyzer selects the analysis backend: a remote wiki-generation
// service when one is reachable, otherwise the self-contained AST scanner.
package analyzer

import (
	"context"
	"log/slog"

	"explainer/internal/config"
	"explainer/internal/observability"
	"explainer/internal/scan"
)

// Analyzer is the single capability every backend implements.
type Analyzer interface {
	Name() string
	Analyze(ctx context.Context, root string) (*scan.Result, error)
}

// Local wraps the tree-sitter scanner. It is the fallback backend and always
// available.
type Local struct {
	scanner *scan.Scanner
}

func NewLocal(scanner *scan.Scanner) *Local {
	return &Local{scanner: scanner}
}

func (l *Local) Name() string { return "ast" }

func (l *Local) Analyze(ctx context.Context, root string) (*scan.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return l.scanner.Scan(root)
}

// fallback runs the primary backend and degrades to the fallback on any
// runtime failure, mirroring startup probing for mid-run errors.
type fallback struct {
	primary Analyzer
	backup  Analyzer
}

func (f *fallback) Name() string { return f.primary.Name() }

func (f *fallback) Analyze(ctx context.Context, root string) (*scan.Result, error) {
	res, err := f.primary.Analyze(ctx, root)
	if err == nil {
		return res, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	observability.AnalyzerFallbacks.Inc()
	slog.Warn("analyzer backend failed, using fallback",
		"backend", f.primary.Name(), "fallback", f.backup.Name(), "error", err)
	return f.backup.Analyze(ctx, root)
}

// Select probes the optional remote backend at startup. An unreachable remote
// is never fatal: the local scanner takes over.
func Select(ctx context.Context, cfg config.Analyzer, scanner *scan.Scanner) Analyzer {
	local := NewLocal(scanner)
	if cfg.RemoteURL == "" {
		return local
	}

	remote := NewRemote(cfg.RemoteURL, cfg.ProbeTimeout.Std())
	probeCtx, cancel := context.WithTimeout(ctx, cfg.ProbeTimeout.Std())
	defer cancel()

	if !remote.Healthy(probeCtx) {
		slog.Warn("remote analyzer not reachable, falling back to ast scanner", "url", cfg.RemoteURL)
		return local
	}

	slog.Info("using remote analyzer", "url", cfg.RemoteURL)
	return &fallback{primary: remote, backup: local}
}
