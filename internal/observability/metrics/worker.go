package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type WorkerMetrics struct {
	registry *prometheus.Registry

	buildTotal    *prometheus.CounterVec
	buildDuration *prometheus.HistogramVec
	buildInFlight prometheus.Gauge
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	buildTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "essaylab",
			Subsystem: "worker",
			Name:      "practice_build_total",
			Help:      "Total practice set builds by status.",
		},
		[]string{"service", "status"},
	)
	buildDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "essaylab",
			Subsystem: "worker",
			Name:      "practice_build_duration_seconds",
			Help:      "Practice set build duration in seconds by status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	buildInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "essaylab",
			Subsystem: "worker",
			Name:      "practice_build_in_flight",
			Help:      "Number of in-flight practice set builds.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)

	registry.MustRegister(buildTotal, buildDuration, buildInFlight)

	return &WorkerMetrics{
		registry:      registry,
		buildTotal:    buildTotal,
		buildDuration: buildDuration,
		buildInFlight: buildInFlight,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) ObserveBuild(service string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.buildTotal.WithLabelValues(service, status).Inc()
	m.buildDuration.WithLabelValues(service, status).Observe(time.Since(start).Seconds())
}

func (m *WorkerMetrics) BuildStarted() func() {
	m.buildInFlight.Inc()
	return m.buildInFlight.Dec
}
