// Package app wires the pipeline: acquire a repository, analyze its sources,
// build the graphs, render the diagrams.
package app

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"explainer/internal/acquire"
	"explainer/internal/analyzer"
	"explainer/internal/config"
	"explainer/internal/graph"
	"explainer/internal/observability"
	"explainer/internal/render"
	"explainer/internal/scan"
	"explainer/internal/watch"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type App struct {
	cfg      *config.Config
	analyzer analyzer.Analyzer
	renderer *render.Renderer

	runMu sync.Mutex
}

type RunResult struct {
	RunID     string
	Project   string
	Root      string
	OutputDir string
	Backend   string
	Format    string

	FilesScanned int
	FilesSkipped int
	ModuleNodes  int
	ModuleEdges  int
	ClassNodes   int
	ClassEdges   int

	Duration time.Duration
}

func New(ctx context.Context, cfg *config.Config, verbose bool) (*App, error) {
	scanner, err := scan.NewScanner(cfg.Scan, verbose)
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:      cfg,
		analyzer: analyzer.Select(ctx, cfg.Analyzer, scanner),
		renderer: render.NewRenderer(cfg.Render.DotBinary),
	}, nil
}

// Run executes one full pipeline pass. The format check comes first so a bad
// format never triggers a clone or any file I/O.
func (a *App) Run(ctx context.Context, repoURL, localPath string) (*RunResult, error) {
	if err := render.ValidateFormat(a.cfg.Output.Format); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	ctx, span := observability.Tracer.Start(ctx, "app.Run",
		trace.WithAttributes(attribute.String("run.id", runID)))
	defer span.End()

	start := time.Now()

	root, project, err := a.stageAcquire(ctx, repoURL, localPath)
	if err != nil {
		return nil, err
	}

	dest := a.cfg.Output.Dir
	if dest == "" {
		dest = filepath.Join("output", project)
	}

	res := &RunResult{
		RunID:     runID,
		Project:   project,
		Root:      root,
		OutputDir: dest,
		Backend:   a.analyzer.Name(),
		Format:    a.cfg.Output.Format,
	}

	if err := a.runPipeline(ctx, root, dest, res); err != nil {
		return nil, err
	}

	res.Duration = time.Since(start)
	return res, nil
}

// RunAgain re-executes scan/build/render for an already-acquired root. Watch
// mode uses it; runs are serialized so re-renders never overlap.
func (a *App) RunAgain(ctx context.Context, prev *RunResult) (*RunResult, error) {
	a.runMu.Lock()
	defer a.runMu.Unlock()

	start := time.Now()
	res := &RunResult{
		RunID:     uuid.NewString(),
		Project:   prev.Project,
		Root:      prev.Root,
		OutputDir: prev.OutputDir,
		Backend:   a.analyzer.Name(),
		Format:    prev.Format,
	}
	if err := a.runPipeline(ctx, prev.Root, prev.OutputDir, res); err != nil {
		return nil, err
	}
	res.Duration = time.Since(start)
	return res, nil
}

func (a *App) runPipeline(ctx context.Context, root, dest string, res *RunResult) error {
	scanRes, err := a.stageAnalyze(ctx, root)
	if err != nil {
		return err
	}
	res.FilesScanned = scanRes.FilesScanned
	res.FilesSkipped = scanRes.FilesSkipped

	pair := a.stageBuild(ctx, scanRes)
	res.ModuleNodes = pair.Dependencies.NodeCount()
	res.ModuleEdges = pair.Dependencies.EdgeCount()
	res.ClassNodes = pair.Classes.NodeCount()
	res.ClassEdges = pair.Classes.EdgeCount()

	return a.stageRender(ctx, pair, dest)
}

func (a *App) stageAcquire(ctx context.Context, repoURL, localPath string) (string, string, error) {
	ctx, span := observability.Tracer.Start(ctx, "app.Acquire")
	defer span.End()

	defer observeStage("acquire", time.Now())
	return acquire.Resolve(ctx, repoURL, localPath)
}

func (a *App) stageAnalyze(ctx context.Context, root string) (*scan.Result, error) {
	ctx, span := observability.Tracer.Start(ctx, "app.Analyze",
		trace.WithAttributes(attribute.String("backend", a.analyzer.Name())))
	defer span.End()

	defer observeStage("analyze", time.Now())

	res, err := a.analyzer.Analyze(ctx, root)
	if err != nil {
		return nil, err
	}

	observability.FilesScanned.Add(float64(res.FilesScanned))
	observability.ParseFailures.Add(float64(res.FilesSkipped))
	slog.Info("analysis complete",
		"backend", a.analyzer.Name(),
		"modules", len(res.Modules),
		"classes", len(res.Classes),
		"skipped", res.FilesSkipped)
	return res, nil
}

func (a *App) stageBuild(ctx context.Context, scanRes *scan.Result) graph.Pair {
	_, span := observability.Tracer.Start(ctx, "app.BuildGraphs")
	defer span.End()

	defer observeStage("build", time.Now())

	pair := graph.Build(scanRes)
	observability.GraphNodes.WithLabelValues("modules").Set(float64(pair.Dependencies.NodeCount()))
	observability.GraphEdges.WithLabelValues("modules").Set(float64(pair.Dependencies.EdgeCount()))
	observability.GraphNodes.WithLabelValues("classes").Set(float64(pair.Classes.NodeCount()))
	observability.GraphEdges.WithLabelValues("classes").Set(float64(pair.Classes.EdgeCount()))
	return pair
}

func (a *App) stageRender(ctx context.Context, pair graph.Pair, dest string) error {
	ctx, span := observability.Tracer.Start(ctx, "app.Render")
	defer span.End()

	defer observeStage("render", time.Now())
	return a.renderer.Render(ctx, pair, dest, a.cfg.Output.Format)
}

// Watch blocks, re-running the pipeline on debounced source changes until the
// context is cancelled.
func (a *App) Watch(ctx context.Context, first *RunResult) error {
	w, err := watch.NewWatcher(a.cfg.Watch.Debounce.Std(), a.cfg.Scan.ExcludeDirs, func() {
		res, err := a.RunAgain(context.Background(), first)
		if err != nil {
			slog.Error("re-run failed", "error", err)
			return
		}
		slog.Info("diagrams refreshed",
			"files", res.FilesScanned,
			"module_edges", res.ModuleEdges,
			"duration", res.Duration)
	})
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Watch(first.Root); err != nil {
		return err
	}

	slog.Info("watching for changes", "root", first.Root)
	<-ctx.Done()
	return ctx.Err()
}

func observeStage(stage string, start time.Time) {
	observability.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}
