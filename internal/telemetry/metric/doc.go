// Package metric provides Prometheus metrics for KVArea.
//
// It exposes counters and histograms for storage-area activity:
// opens of the underlying store, per-transaction outcomes, clears,
// and operation latencies.
package metric
