package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is everything the HTTP layer reports.
type Recorder interface {
	ObserveGateDecision(outcome string)
	ObserveForbidden(requiredRole string)
	ObserveRequest(method, route string, status int, d time.Duration)
}

// PrometheusMetrics owns a private registry so tests can create as many as they like.
type PrometheusMetrics struct {
	registry *prometheus.Registry

	mGate      *prometheus.CounterVec
	mForbidden *prometheus.CounterVec
	mRequests  *prometheus.CounterVec
	mDuration  *prometheus.HistogramVec
}

func NewPrometheusMetrics() *PrometheusMetrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		registry: reg,
		mGate: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "learnhub_gate_decisions_total", Help: "Access gate decisions by outcome",
		}, []string{"outcome"}),
		mForbidden: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "learnhub_forbidden_total", Help: "Requests refused by the role check",
		}, []string{"required_role"}),
		mRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "learnhub_http_requests_total", Help: "HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
		mDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name: "learnhub_http_request_duration_seconds", Help: "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func (m *PrometheusMetrics) ObserveGateDecision(outcome string) {
	m.mGate.WithLabelValues(outcome).Inc()
}

func (m *PrometheusMetrics) ObserveForbidden(requiredRole string) {
	m.mForbidden.WithLabelValues(requiredRole).Inc()
}

func (m *PrometheusMetrics) ObserveRequest(method, route string, status int, d time.Duration) {
	m.mRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.mDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *PrometheusMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler exposes the registry in the Prometheus text format.
func (m *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Noop discards everything.
type Noop struct{}

func (Noop) ObserveGateDecision(string) {}
func (Noop) ObserveForbidden(string) {}
func (Noop) ObserveRequest(string, string, int, time.Duration) {}
