// Package metric provides Prometheus metrics for KVArea.
package metric

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Transaction outcomes, used as the "outcome" label value.
const (
	OutcomeComplete = "complete"
	OutcomeError    = "error"
	OutcomeAbort    = "abort"
)

// Registry holds all storage-area metrics. A nil *Registry is valid
// and records nothing, so instrumentation call sites need no guards.
type Registry struct {
	reg *prometheus.Registry

	opensTotal  *prometheus.CounterVec
	clearsTotal *prometheus.CounterVec
	txnsTotal   *prometheus.CounterVec
	opDuration  *prometheus.HistogramVec
}

// NewRegistry creates a metrics registry with all collectors
// registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		reg: reg,
		opensTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kvarea",
			Subsystem: "area",
			Name:      "opens_total",
			Help:      "Store open attempts per area, by result",
		}, []string{"area", "result"}),
		clearsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kvarea",
			Subsystem: "area",
			Name:      "clears_total",
			Help:      "Clear operations per area, by result",
		}, []string{"area", "result"}),
		txnsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kvarea",
			Subsystem: "area",
			Name:      "txns_total",
			Help:      "Transactions per area, by mode and terminal outcome",
		}, []string{"area", "mode", "outcome"}),
		opDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "kvarea",
			Subsystem: "area",
			Name:      "op_duration_seconds",
			Help:      "Operation latency per area and operation",
			Buckets:   prometheus.DefBuckets,
		}, []string{"area", "op"}),
	}

	reg.MustRegister(r.opensTotal, r.clearsTotal, r.txnsTotal, r.opDuration)
	return r
}

// Prometheus returns the underlying registry, e.g. for registering
// engine-level collectors alongside the area metrics.
func (r *Registry) Prometheus() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.reg
}

// Handler returns an HTTP handler serving the metrics endpoint.
func (r *Registry) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// ObserveOpen records a store open attempt.
func (r *Registry) ObserveOpen(area string, err error) {
	if r == nil {
		return
	}
	r.opensTotal.WithLabelValues(area, result(err)).Inc()
}

// ObserveClear records a clear operation.
func (r *Registry) ObserveClear(area string, err error) {
	if r == nil {
		return
	}
	r.clearsTotal.WithLabelValues(area, result(err)).Inc()
}

// ObserveTxn records a transaction's terminal outcome.
func (r *Registry) ObserveTxn(area, mode, outcome string) {
	if r == nil {
		return
	}
	r.txnsTotal.WithLabelValues(area, mode, outcome).Inc()
}

// ObserveOp records an operation's latency.
func (r *Registry) ObserveOp(area, op string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.opDuration.WithLabelValues(area, op).Observe(elapsed.Seconds())
}

func result(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
