// Package metric provides Prometheus metrics for the rendezvous server.
//
// This package implements metrics collection and exposition:
//
//   - prometheus.go: Prometheus registry and HTTP handler
//   - collector.go: Store statistics collector
//
// Metrics include:
//
//   - Request counters and latency histograms by method/route/code
//   - Session count gauge and lifecycle counters
//
// Metrics are exposed at /metrics in Prometheus format.
package metric
