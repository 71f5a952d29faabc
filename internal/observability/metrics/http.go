package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/essaylab/essaylab-backend/internal/core/usecase"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	pipelineStates   *prometheus.CounterVec
	pipelineDuration *prometheus.HistogramVec
	exercisesServed  *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "essaylab",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "essaylab",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "essaylab",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	pipelineStates := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "essaylab",
			Subsystem: "pipeline",
			Name:      "state_transitions_total",
			Help:      "Total upload pipeline state transitions.",
		},
		[]string{"service", "state"},
	)
	pipelineDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "essaylab",
			Subsystem: "pipeline",
			Name:      "duration_seconds",
			Help:      "Time from upload receipt to terminal pipeline state.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120, 300},
		},
		[]string{"service", "outcome"},
	)
	exercisesServed := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "essaylab",
			Subsystem: "homework",
			Name:      "exercises_served_total",
			Help:      "Total exercises returned to clients, by source.",
		},
		[]string{"service", "source"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		pipelineStates,
		pipelineDuration,
		exercisesServed,
	)

	return &HTTPServerMetrics{
		registry:         registry,
		requestTotal:     requestTotal,
		requestDuration:  requestDuration,
		requestInFlight:  requestInFlight,
		pipelineStates:   pipelineStates,
		pipelineDuration: pipelineDuration,
		exercisesServed:  exercisesServed,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := r.URL.Path
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// PipelineObserver adapts the metrics registry to the pipeline's observer
// hook.
type PipelineObserver struct {
	service string
	metrics *HTTPServerMetrics
}

func (m *HTTPServerMetrics) PipelineObserver(service string) *PipelineObserver {
	return &PipelineObserver{service: service, metrics: m}
}

func (o *PipelineObserver) PipelineTransition(state usecase.PipelineState, elapsed time.Duration) {
	o.metrics.pipelineStates.WithLabelValues(o.service, string(state)).Inc()
	switch state {
	case usecase.StateResponded:
		o.metrics.pipelineDuration.WithLabelValues(o.service, "success").Observe(elapsed.Seconds())
	case usecase.StateFailed:
		o.metrics.pipelineDuration.WithLabelValues(o.service, "failure").Observe(elapsed.Seconds())
	}
}

func (m *HTTPServerMetrics) RecordExercisesServed(service, source string, count int) {
	if count <= 0 {
		return
	}
	m.exercisesServed.WithLabelValues(service, source).Add(float64(count))
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.bytesWritten += n
	return n, err
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}
