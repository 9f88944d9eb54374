// Package metrics provides Prometheus metrics for the textcase service.
package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values for transform outcomes.
const (
	OutcomeSuccess        = "success"
	OutcomeInvalidMethod  = "invalid_method"
	OutcomeTransformError = "transform_failure"
)

// Manager owns the Prometheus collectors for the service.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	sizeBuckets      []float64
	customLabels     map[string]string
	registry         prometheus.Registerer

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpErrors          *prometheus.CounterVec

	// Business Metrics
	transforms          *prometheus.CounterVec
	transformInputBytes *prometheus.HistogramVec
}

// DefaultLatencyBucketsMs are the request latency buckets, in milliseconds.
var DefaultLatencyBucketsMs = []float64{0.1, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 1000} //nolint:gochecknoglobals // read-only defaults

type globalState struct {
	manager  *Manager
	registry *prometheus.Registry
}

// Global manager and the custom registry it writes to. The custom registry
// keeps default Go metrics out of the exposition.
var global atomic.Pointer[globalState] //nolint:gochecknoglobals // intentional global for singleton metrics manager

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	Init()
}

// Init replaces the global manager with one built from opts on a fresh
// registry. Call it before handing GetRegistry or Default to other
// components; earlier references keep the previous registry.
func Init(opts ...Option) *Manager {
	registry := prometheus.NewRegistry()
	all := make([]Option, 0, len(opts)+1)
	all = append(all, opts...)
	m := NewManager(append(all, WithPrometheusRegistry(registry))...)
	global.Store(&globalState{manager: m, registry: registry})
	return m
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "textcase",
		histogramBuckets: DefaultLatencyBucketsMs,
		sizeBuckets:      prometheus.ExponentialBuckets(16, 4, 8),
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests by endpoint, method and status code",
			ConstLabels: m.customLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Name:        "http_request_duration_milliseconds",
			Help:        "HTTP request duration in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: m.customLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Name:        "http_errors_total",
			Help:        "HTTP responses with status >= 400 by endpoint and error type",
			ConstLabels: m.customLabels,
		},
		[]string{"endpoint", "error_type"},
	)

	m.transforms = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Name:        "transforms_total",
			Help:        "Case transform attempts by method and outcome",
			ConstLabels: m.customLabels,
		},
		[]string{"method", "outcome"},
	)

	m.transformInputBytes = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Name:        "transform_input_bytes",
			Help:        "Size of successfully transformed inputs in bytes",
			Buckets:     m.sizeBuckets,
			ConstLabels: m.customLabels,
		},
		[]string{"method"},
	)
}

// RecordHTTPRequest increments the HTTP request counter.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string) {
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes an HTTP request duration in milliseconds.
func (m *Manager) RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordHTTPError increments the HTTP error counter.
func (m *Manager) RecordHTTPError(endpoint, errorType string) {
	m.httpErrors.WithLabelValues(endpoint, errorType).Inc()
}

// RecordTransform counts one transform attempt.
func (m *Manager) RecordTransform(method, outcome string) {
	m.transforms.WithLabelValues(method, outcome).Inc()
}

// RecordTransformInput observes the byte length of a transformed input.
func (m *Manager) RecordTransformInput(method string, size int) {
	m.transformInputBytes.WithLabelValues(method).Observe(float64(size))
}

// Package-level helpers delegate to the global manager.

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	global.Load().manager.RecordHTTPRequest(endpoint, method, statusCode)
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	global.Load().manager.RecordHTTPRequestDuration(endpoint, method, statusCode, durationMs)
}

// RecordHTTPError increments the HTTP error counter.
func RecordHTTPError(endpoint, errorType string) {
	global.Load().manager.RecordHTTPError(endpoint, errorType)
}

// RecordTransform counts one transform attempt.
func RecordTransform(method, outcome string) {
	global.Load().manager.RecordTransform(method, outcome)
}

// RecordTransformInput observes the byte length of a transformed input.
func RecordTransformInput(method string, size int) {
	global.Load().manager.RecordTransformInput(method, size)
}

// Default returns the global manager.
func Default() *Manager {
	return global.Load().manager
}

// GetRegistry returns the custom metrics registry.
func GetRegistry() *prometheus.Registry {
	return global.Load().registry
}
