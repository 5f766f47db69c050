package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"explainer/internal/app"
	"explainer/internal/config"
	"explainer/internal/observability"
)

const version = "1.0.0"

// Conventional exit status for an interrupted run.
const exitInterrupted = 130

var flags cliFlags

func main() {
	flags = parseFlags()

	if flags.version {
		fmt.Printf("explainer v%s\n", version)
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if flags.verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// One interrupt handler for the whole process, installed at entry.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nInterrupted, exiting.")
		os.Exit(exitInterrupted)
	}()

	cfg, err := loadConfig()
	if err != nil {
		slog.Error("failed to load config", "path", flags.configPath, "error", err)
		os.Exit(1)
	}
	applyFlagOverrides(cfg)

	ctx := context.Background()

	shutdownTracing, err := observability.InitTracing(ctx, cfg.Observability.OTLPEndpoint)
	if err != nil {
		slog.Error("failed to init tracing", "error", err)
		os.Exit(1)
	}
	defer shutdownTracing(ctx)

	if cfg.Observability.MetricsAddr != "" {
		srv := observability.NewServer(cfg.Observability.MetricsAddr)
		if err := srv.Start(ctx); err != nil {
			slog.Error("failed to start observability server", "error", err)
			os.Exit(1)
		}
		defer srv.Stop(ctx)
	}

	a, err := app.New(ctx, cfg, flags.verbose)
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		os.Exit(1)
	}

	res, err := a.Run(ctx, flags.repo, flags.path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	fmt.Print(app.Summary(res))

	if flags.watch {
		if err := a.Watch(ctx, res); err != nil && err != context.Canceled {
			slog.Error("watch mode failed", "error", err)
			os.Exit(1)
		}
	}
}

func loadConfig() (*config.Config, error) {
	if flags.configPath != defaultConfigPath {
		return config.Load(flags.configPath)
	}
	// The default config file is optional.
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return config.Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

func applyFlagOverrides(cfg *config.Config) {
	if flags.output != "" {
		cfg.Output.Dir = flags.output
	}
	if flags.format != "" {
		cfg.Output.Format = flags.format
	}
	if flags.metricsAddr != "" {
		cfg.Observability.MetricsAddr = flags.metricsAddr
	}
}
