// Package metrics exposes Prometheus instrumentation for the Tribute Wall API.
// All recording methods are nil-safe so components can be built without metrics.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tributewall"

// Metrics holds every collector the service records to.
type Metrics struct {
	registry *prometheus.Registry

	tributesPosted     prometheus.Counter
	validationFailures prometheus.Counter
	persistenceErrors  *prometheus.CounterVec
	signIns            prometheus.Counter
	requests           *prometheus.HistogramVec
}

// New creates a Metrics with its own registry, including the Go runtime and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		tributesPosted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tributes_posted_total",
			Help:      "Tributes accepted by the wall.",
		}),
		validationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tribute_validation_failures_total",
			Help:      "Tribute submissions rejected by validation.",
		}),
		persistenceErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persistence_failures_total",
			Help:      "Swallowed persistence failures by operation (read, write).",
		}, []string{"op"}),
		signIns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sign_ins_total",
			Help:      "Simulated sign-ins issued.",
		}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method, route pattern and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.tributesPosted,
		m.validationFailures,
		m.persistenceErrors,
		m.signIns,
		m.requests,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// TributePosted counts an accepted tribute.
func (m *Metrics) TributePosted() {
	if m == nil {
		return
	}
	m.tributesPosted.Inc()
}

// ValidationFailed counts a rejected submission.
func (m *Metrics) ValidationFailed() {
	if m == nil {
		return
	}
	m.validationFailures.Inc()
}

// PersistenceFailure counts a swallowed store failure. op is "read" or "write".
func (m *Metrics) PersistenceFailure(op string) {
	if m == nil {
		return
	}
	m.persistenceErrors.WithLabelValues(op).Inc()
}

// SignedIn counts a simulated sign-in.
func (m *Metrics) SignedIn() {
	if m == nil {
		return
	}
	m.signIns.Inc()
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, seconds float64) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(seconds)
}
