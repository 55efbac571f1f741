package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles Prometheus collectors for the API.
type Metrics struct {
	Registry             *prometheus.Registry
	RequestsTotal        *prometheus.CounterVec
	RequestDuration      *prometheus.HistogramVec
	StoreConnected       prometheus.Gauge
	StoreConnectAttempts prometheus.Counter
	StoreConnectFailures prometheus.Counter
}

// New constructs and registers all metrics on a dedicated registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by route pattern and status code.",
		},
		[]string{"method", "route", "code"},
	)
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	connected := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "store_connected",
			Help: "1 when the author store session is established, 0 otherwise.",
		},
	)
	attempts := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "store_connect_attempts_total",
			Help: "Total connection attempts made against the author store.",
		},
	)
	failures := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "store_connect_failures_total",
			Help: "Total failed connection attempts against the author store.",
		},
	)

	registry.MustRegister(
		requests, duration, connected, attempts, failures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		Registry:             registry,
		RequestsTotal:        requests,
		RequestDuration:      duration,
		StoreConnected:       connected,
		StoreConnectAttempts: attempts,
		StoreConnectFailures: failures,
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(method, route, code string, d time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, route, code).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ConnectAttempt counts a dial against the store.
func (m *Metrics) ConnectAttempt() {
	if m == nil {
		return
	}
	m.StoreConnectAttempts.Inc()
}

// ConnectFailed counts a failed dial.
func (m *Metrics) ConnectFailed() {
	if m == nil {
		return
	}
	m.StoreConnectFailures.Inc()
}

// SetConnected flips the store_connected gauge.
func (m *Metrics) SetConnected(ok bool) {
	if m == nil {
		return
	}
	if ok {
		m.StoreConnected.Set(1)
		return
	}
	m.StoreConnected.Set(0)
}
