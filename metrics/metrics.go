// Package metrics exposes bridge counters on a private Prometheus registry.
//
// A nil *Recorder is valid and records nothing, so components can be built
// without metrics in tests.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "staticmcp"

// Recorder holds bridge metric collectors
type Recorder struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	fetches  *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	sessions prometheus.Gauge
}

// ObserveRequest counts a dispatched JSON-RPC request
func (r *Recorder) ObserveRequest(method, outcome string) {
	if r == nil {
		return
	}
	r.requests.WithLabelValues(method, outcome).Inc()
}

// ObserveFetch counts a static content fetch and records its latency
func (r *Recorder) ObserveFetch(kind, outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.fetches.WithLabelValues(kind, outcome).Inc()
	r.latency.WithLabelValues(kind).Observe(elapsed.Seconds())
}

// SessionOpened increments open sessions gauge
func (r *Recorder) SessionOpened() {
	if r == nil {
		return
	}
	r.sessions.Inc()
}

// SessionClosed decrements open sessions gauge
func (r *Recorder) SessionClosed() {
	if r == nil {
		return
	}
	r.sessions.Dec()
}

// Registry returns underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler returns exposition handler
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// New creates a recorder with its own registry
func New() *Recorder {
	ret := &Recorder{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "JSON-RPC requests dispatched, by method and outcome.",
		}, []string{"method", "outcome"}),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetches_total",
			Help:      "Static content fetches, by target kind and outcome.",
		}, []string{"kind", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Static content fetch latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "open_sessions",
			Help:      "Currently open streaming sessions.",
		}),
	}
	ret.registry.MustRegister(ret.requests, ret.fetches, ret.latency, ret.sessions)
	return ret
}
