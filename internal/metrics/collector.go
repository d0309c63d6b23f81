// Package metrics exposes logcore's runtime counters as Prometheus metrics:
// records ingested per module, and live-cache hit/miss counts for the
// cross-date lookups KeymapListFromKey/HostAgentList perform (spec.md
// §4.6's query surface).
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dreamware/logcore/internal/module"
)

// Collector holds every Prometheus metric logcore reports. It implements
// store.Recorder.
type Collector struct {
	registry *prometheus.Registry

	IngestTotal  *prometheus.CounterVec
	CacheHits    prometheus.Counter
	CacheMisses  prometheus.Counter
	DatesTracked prometheus.Gauge
}

// NewCollector builds a Collector registered under namespace and returns it
// along with its private registry, grounded on the observability package's
// namespace + registry-per-collector shape but without the singleton, since
// logcore's DB is already a single process-wide instance that owns one
// Collector for its lifetime.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	ingestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingest_records_total",
			Help:      "Total number of records folded into the store, by module.",
		},
		[]string{"module"},
	)
	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_hits_total",
		Help:      "Cross-date cache lookups that resolved a cache id.",
	})
	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_misses_total",
		Help:      "Cross-date cache lookups for an unknown cache id.",
	})
	datesTracked := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "dates_tracked",
		Help:      "Number of date partitions currently held in memory.",
	})

	registry.MustRegister(ingestTotal, cacheHits, cacheMisses, datesTracked)

	return &Collector{
		registry:     registry,
		IngestTotal:  ingestTotal,
		CacheHits:    cacheHits,
		CacheMisses:  cacheMisses,
		DatesTracked: datesTracked,
	}
}

// RecordIngest increments the per-module ingest counter.
func (c *Collector) RecordIngest(m module.Module) {
	c.IngestTotal.WithLabelValues(m.String()).Inc()
}

// RecordCacheHit increments the cache-hit counter.
func (c *Collector) RecordCacheHit() { c.CacheHits.Inc() }

// RecordCacheMiss increments the cache-miss counter.
func (c *Collector) RecordCacheMiss() { c.CacheMisses.Inc() }

// SetDatesTracked sets the current date-partition gauge.
func (c *Collector) SetDatesTracked(n int) { c.DatesTracked.Set(float64(n)) }

// Registry returns the Prometheus registry backing this collector, for
// wiring into an HTTP exposition handler.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

var (
	defaultOnce      sync.Once
	defaultCollector *Collector
)

// Default returns a process-wide Collector under the "logcore" namespace,
// created once regardless of how many callers ask for it.
func Default() *Collector {
	defaultOnce.Do(func() {
		defaultCollector = NewCollector("logcore")
	})
	return defaultCollector
}
