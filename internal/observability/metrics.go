package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	FilesScanned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "explainer_files_scanned_total",
		Help: "Total number of source files visited by the scanner.",
	})

	ParseFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "explainer_parse_failures_total",
		Help: "Total number of source files skipped due to parse errors.",
	})

	GraphNodes = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "explainer_graph_nodes_total",
		Help: "Number of nodes in the most recently built graph.",
	}, []string{"graph"})

	GraphEdges = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "explainer_graph_edges_total",
		Help: "Number of edges in the most recently built graph.",
	}, []string{"graph"})

	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "explainer_stage_seconds",
		Help:    "Time spent in each pipeline stage.",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})

	RasterFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "explainer_raster_failures_total",
		Help: "Total number of failed layout tool invocations.",
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "explainer_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})

	AnalyzerFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "explainer_analyzer_fallbacks_total",
		Help: "Total number of times the remote analyzer failed and the local scanner took over.",
	})
)
