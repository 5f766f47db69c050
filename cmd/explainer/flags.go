package main

import (
	"flag"
)

const defaultConfigPath = "./explainer.toml"

type cliFlags struct {
	repo        string
	path        string
	output      string
	format      string
	configPath  string
	metricsAddr string
	watch       bool
	verbose     bool
	version     bool
}

func parseFlags() cliFlags {
	var f cliFlags
	flag.StringVar(&f.repo, "repo", "", "Public Git URL to analyse")
	flag.StringVar(&f.path, "path", "", "Local folder to analyse")
	flag.StringVar(&f.output, "output", "", "Destination folder (default: ./output/<project>)")
	flag.StringVar(&f.format, "format", "", "Diagram backend: mermaid | svg")
	flag.StringVar(&f.configPath, "config", defaultConfigPath, "Path to config file")
	flag.StringVar(&f.metricsAddr, "metrics-addr", "", "Serve /metrics and /health on this address")
	flag.BoolVar(&f.watch, "watch", false, "Keep running and refresh diagrams on source changes")
	flag.BoolVar(&f.verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&f.version, "version", false, "Print version and exit")
	flag.Parse()
	return f
}
