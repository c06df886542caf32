// Package metric provides Prometheus metrics for the rendezvous server.
package metric

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yndnr/rendezvous-go/internal/storage/memory"
)

// StatsSource supplies a snapshot of store counters. The memory store
// implements it.
type StatsSource interface {
	Stats() memory.Stats
}

// StoreCollector exposes store statistics as Prometheus metrics. It
// reads a fresh snapshot on every scrape instead of double-counting
// through instrumented call sites.
type StoreCollector struct {
	source StatsSource

	active  *prometheus.Desc
	created *prometheus.Desc
	expired *prometheus.Desc
	evicted *prometheus.Desc
	deleted *prometheus.Desc
}

// NewStoreCollector creates a collector reading from the given source.
func NewStoreCollector(source StatsSource) *StoreCollector {
	return &StoreCollector{
		source: source,
		active: prometheus.NewDesc(
			namespace+"_sessions_active",
			"Sessions currently held in the store.",
			nil, nil,
		),
		created: prometheus.NewDesc(
			namespace+"_sessions_created_total",
			"Sessions created over the process lifetime.",
			nil, nil,
		),
		expired: prometheus.NewDesc(
			namespace+"_sessions_expired_total",
			"Sessions dropped because their TTL elapsed.",
			nil, nil,
		),
		evicted: prometheus.NewDesc(
			namespace+"_sessions_evicted_total",
			"Sessions dropped to stay within capacity.",
			nil, nil,
		),
		deleted: prometheus.NewDesc(
			namespace+"_sessions_deleted_total",
			"Sessions removed by explicit client deletion.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *StoreCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.active
	ch <- c.created
	ch <- c.expired
	ch <- c.evicted
	ch <- c.deleted
}

// Collect implements prometheus.Collector.
func (c *StoreCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.source.Stats()

	ch <- prometheus.MustNewConstMetric(c.active, prometheus.GaugeValue, float64(stats.Active))
	ch <- prometheus.MustNewConstMetric(c.created, prometheus.CounterValue, float64(stats.Created))
	ch <- prometheus.MustNewConstMetric(c.expired, prometheus.CounterValue, float64(stats.Expired))
	ch <- prometheus.MustNewConstMetric(c.evicted, prometheus.CounterValue, float64(stats.Evicted))
	ch <- prometheus.MustNewConstMetric(c.deleted, prometheus.CounterValue, float64(stats.Deleted))
}
