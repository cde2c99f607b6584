package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "weather_etl"

// Metrics holds the Prometheus counters, histograms, and gauges for both pipeline stages.
type Metrics struct {
	registry *prometheus.Registry

	StageRuns     *prometheus.CounterVec   // labels: stage={fetch,transform}, status={succeeded,failed}
	StageDuration *prometheus.HistogramVec // labels: stage
	LastSuccess   *prometheus.GaugeVec     // labels: stage; unix seconds

	// Fetch stage.
	UpstreamResponses *prometheus.CounterVec // labels: code
	RawBytes          prometheus.Gauge

	// Transform stage.
	RowsWritten     prometheus.Gauge
	TransformErrors *prometheus.CounterVec // labels: reason={not_found,parse,missing_key,shape,length_mismatch,unexpected}
}

// NewMetrics creates all pipeline metrics and registers them with a dedicated
// registry, which Gatherer exposes for pushing.
func NewMetrics() *Metrics {
	m := newMetrics()
	m.registry = prometheus.NewRegistry()
	m.registry.MustRegister(
		m.StageRuns,
		m.StageDuration,
		m.LastSuccess,
		m.UpstreamResponses,
		m.RawBytes,
		m.RowsWritten,
		m.TransformErrors,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics so tests can build as many
// pipelines as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

// Gatherer returns the registry holding the pipeline metrics. It is nil for
// metrics created with NewMetricsForTesting.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	if m.registry == nil {
		return nil
	}
	return m.registry
}

func newMetrics() *Metrics {
	return &Metrics{
		StageRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_runs_total",
			Help:      "Pipeline stage executions by stage and outcome.",
		}, []string{"stage", "status"}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Wall time of one pipeline stage execution.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"stage"}),
		LastSuccess: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful stage execution.",
		}, []string{"stage"}),
		UpstreamResponses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_responses_total",
			Help:      "Open-Meteo responses by HTTP status code.",
		}, []string{"code"}),
		RawBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "raw_document_bytes",
			Help:      "Size of the last raw document received from Open-Meteo.",
		}),
		RowsWritten: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "processed_rows",
			Help:      "Rows in the last processed table written.",
		}),
		TransformErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transform_errors_total",
			Help:      "Transform stage failures by reason.",
		}, []string{"reason"}),
	}
}
