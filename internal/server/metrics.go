package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	nibstegImage "nibsteg/pkg/image"
)

const (
	operationMerge   = "merge"
	operationUnmerge = "unmerge"

	outcomeSuccess           = "success"
	outcomeDimensionMismatch = "dimension_mismatch"
	outcomeError             = "error"
)

// codecMetrics are registered on a registry owned by the server, so several servers (and tests) never collide on
// the global prometheus registry
type codecMetrics struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

func newCodecMetrics() *codecMetrics {
	m := &codecMetrics{registry: prometheus.NewRegistry()}
	m.operations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nibsteg",
		Subsystem: "codec",
		Name:      "operations_total",
		Help:      "Number of merge and unmerge operations by outcome",
	}, []string{"operation", "outcome"})
	m.duration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "nibsteg",
		Subsystem: "codec",
		Name:      "duration_seconds",
		Help:      "Time spent transforming pixels, excluding image decoding and encoding",
		Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
	}, []string{"operation"})

	m.registry.MustRegister(m.operations, m.duration, collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return m
}

func (m *codecMetrics) observe(operation string, took time.Duration, err error) {
	outcome := outcomeSuccess
	if errors.Is(err, nibstegImage.ErrDimensionMismatch) {
		outcome = outcomeDimensionMismatch
	} else if err != nil {
		outcome = outcomeError
	}

	m.operations.WithLabelValues(operation, outcome).Inc()
	if err == nil {
		m.duration.WithLabelValues(operation).Observe(took.Seconds())
	}
}

func (m *codecMetrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
