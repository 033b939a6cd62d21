// Package observability exposes the Prometheus metrics and OpenTelemetry
// tracer the analysis engine instruments itself with.
package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/trace"
	oteltrace "go.opentelemetry.io/otel/trace"
)

var (
	ScanDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "layermap_scan_seconds",
		Help:    "Time spent walking a workspace's directory tree.",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})

	GraphNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "layermap_graph_nodes_total",
		Help: "Total number of nodes in the last completed dependency graph.",
	})

	GraphEdges = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "layermap_graph_edges_total",
		Help: "Total number of edges in the last completed dependency graph.",
	})

	HeapAllocMB = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "layermap_heap_alloc_mb",
		Help: "Heap allocation sampled at each analysis milestone.",
	})

	MemoryWarningsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "layermap_memory_warnings_total",
		Help: "Total number of times heap allocation exceeded the warning threshold.",
	})

	FilesScannedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "layermap_files_scanned_total",
		Help: "Total number of files classified across all runs.",
	})

	AnalysisDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "layermap_analysis_seconds",
		Help:    "Time spent per analysis phase.",
		Buckets: prometheus.DefBuckets,
	}, []string{"phase"})
)

// Tracer is the package-wide tracer handle used to emit one span per
// facade phase. It is backed by a no-exporter TracerProvider unless
// InstallTracerProvider is called with a real exporter, so tracing is
// always safe to call even when nothing collects the spans.
var Tracer = otel.Tracer("layermap")

// InstallTracerProvider installs a TracerProvider built from the given
// span processor (e.g. one writing to stdout) and makes it the global
// provider new Tracer() calls resolve against.
func InstallTracerProvider(ctx context.Context, processors ...trace.SpanProcessor) func(context.Context) error {
	opts := make([]trace.TracerProviderOption, 0, len(processors))
	for _, p := range processors {
		opts = append(opts, trace.WithSpanProcessor(p))
	}
	tp := trace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	Tracer = tp.Tracer("layermap")
	return tp.Shutdown
}

// StartPhase starts a span for one facade phase and returns the context
// carrying it plus a function that ends the span.
func StartPhase(ctx context.Context, phase string) (context.Context, func()) {
	ctx, span := Tracer.Start(ctx, phase, oteltrace.WithAttributes())
	return ctx, func() { span.End() }
}
