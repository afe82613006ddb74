package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fibconv"

// Status label values.
const (
	StatusSuccess  = "success"
	StatusError    = "error"
	StatusRejected = "rejected"
)

// Metrics holds the counters and histograms recorded during one run.
// Each instance owns its registry so tests and parallel runs never share
// state through the global default registerer.
type Metrics struct {
	registry *prometheus.Registry

	// CalculationsTotal counts Fibonacci calculations by algorithm and status.
	CalculationsTotal *prometheus.CounterVec
	// CalculationDuration observes calculation latency by algorithm.
	CalculationDuration *prometheus.HistogramVec
	// ConversionsTotal counts temperature conversions by source scale.
	ConversionsTotal *prometheus.CounterVec
	// LookupsTotal counts list lookups by status.
	LookupsTotal *prometheus.CounterVec
}

// New creates a Metrics instance registered on a fresh registry, together
// with the runtime memory gauges exposed by MemoryCollector.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		CalculationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "calculations_total",
				Help:      "Total Fibonacci calculations by algorithm and status",
			},
			[]string{"algorithm", "status"},
		),
		CalculationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "calculation_duration_seconds",
				Help:      "Duration of Fibonacci calculations in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 10, 8),
			},
			[]string{"algorithm"},
		),
		ConversionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "conversions_total",
				Help:      "Total temperature conversions by source scale",
			},
			[]string{"from"},
		),
		LookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "lookups_total",
				Help:      "Total list lookups by status",
			},
			[]string{"status"},
		),
	}
	m.registry.MustRegister(
		m.CalculationsTotal,
		m.CalculationDuration,
		m.ConversionsTotal,
		m.LookupsTotal,
		NewMemoryCollector(),
	)
	return m
}

// Registry returns the registry backing m.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveCalculation records the outcome of one calculator run.
func (m *Metrics) ObserveCalculation(algorithm string, d time.Duration, err error) {
	if m == nil {
		return
	}
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	m.CalculationsTotal.WithLabelValues(algorithm, status).Inc()
	if err == nil {
		m.CalculationDuration.WithLabelValues(algorithm).Observe(d.Seconds())
	}
}

// ObserveConversion records a successful temperature conversion.
func (m *Metrics) ObserveConversion(from string) {
	if m == nil {
		return
	}
	m.ConversionsTotal.WithLabelValues(from).Inc()
}

// ObserveLookup records a lookup, rejected when err is non-nil.
func (m *Metrics) ObserveLookup(err error) {
	if m == nil {
		return
	}
	status := StatusSuccess
	if err != nil {
		status = StatusRejected
	}
	m.LookupsTotal.WithLabelValues(status).Inc()
}

// WriteTextfile writes all gathered metrics to path in the Prometheus text
// exposition format, suitable for the node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
