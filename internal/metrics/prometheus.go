// Package metrics exposes natcalc's Prometheus instrumentation and runtime
// memory readings.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "natcalc"

// Metrics owns a private registry so several instances can coexist in one
// process. All recording methods are safe on a nil receiver.
type Metrics struct {
	registry *prometheus.Registry

	cases          *prometheus.CounterVec
	mismatches     *prometheus.CounterVec
	checkDuration  *prometheus.HistogramVec
	benchNsPerOp   *prometheus.GaugeVec
	activeRuns     prometheus.Gauge
	requestsTotal  *prometheus.CounterVec
	activeRequests prometheus.Gauge
}

// New creates the collectors and registers them, together with the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		cases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selfcheck_cases_total",
			Help:      "Self-check cases executed, by check.",
		}, []string{"check"}),
		mismatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selfcheck_mismatches_total",
			Help:      "Self-check cases whose kernel result disagreed with the reference.",
		}, []string{"check"}),
		checkDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "selfcheck_duration_seconds",
			Help:      "Wall time of a complete check.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"check"}),
		benchNsPerOp: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bench_ns_per_op",
			Help:      "Most recent benchmark cost per operation.",
		}, []string{"op", "width"}),
		activeRuns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_runs",
			Help:      "Self-check or bench runs in progress.",
		}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "HTTP requests served by the metrics endpoint, by path and status.",
		}, []string{"path", "code"}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_requests",
			Help:      "HTTP requests currently being served.",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.cases, m.mismatches, m.checkDuration, m.benchNsPerOp,
		m.activeRuns, m.requestsTotal, m.activeRequests,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		Registry:      m.registry,
		ErrorHandling: promhttp.ContinueOnError,
	})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// AddCases counts cases and mismatches for check.
func (m *Metrics) AddCases(check string, cases, mismatches uint64) {
	if m == nil {
		return
	}
	m.cases.WithLabelValues(check).Add(float64(cases))
	if mismatches > 0 {
		m.mismatches.WithLabelValues(check).Add(float64(mismatches))
	}
}

// ObserveCheck records the duration of a completed check.
func (m *Metrics) ObserveCheck(check string, d time.Duration) {
	if m == nil {
		return
	}
	m.checkDuration.WithLabelValues(check).Observe(d.Seconds())
}

// SetBench records a benchmark measurement.
func (m *Metrics) SetBench(op string, width int, nsPerOp float64) {
	if m == nil {
		return
	}
	m.benchNsPerOp.WithLabelValues(op, strconv.Itoa(width)).Set(nsPerOp)
}

// RunStarted marks the start of a run and returns the function ending it.
func (m *Metrics) RunStarted() func() {
	if m == nil {
		return func() {}
	}
	m.activeRuns.Inc()
	return m.activeRuns.Dec
}

// IncrementActiveRequests marks the start of an HTTP request.
func (m *Metrics) IncrementActiveRequests() {
	if m != nil {
		m.activeRequests.Inc()
	}
}

// DecrementActiveRequests marks the end of an HTTP request.
func (m *Metrics) DecrementActiveRequests() {
	if m != nil {
		m.activeRequests.Dec()
	}
}

// CountRequest records a served HTTP request.
func (m *Metrics) CountRequest(path string, code int) {
	if m != nil {
		m.requestsTotal.WithLabelValues(path, strconv.Itoa(code)).Inc()
	}
}
