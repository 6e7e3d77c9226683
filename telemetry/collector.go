// Package telemetry exports arena and allocator statistics to Prometheus.
package telemetry

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pavanmanishd/memkit"
)

// ArenaSource is anything that can report arena metrics. *memkit.Arena and
// *memkit.SafeArena both qualify; only SafeArena may be scraped while other
// goroutines allocate.
type ArenaSource interface {
	Metrics() memkit.ArenaMetrics
}

// Collector reads tracked arenas and allocators at scrape time.
type Collector struct {
	mu         sync.Mutex
	arenas     map[string]ArenaSource
	allocators map[string]*memkit.CountingAllocator

	inUse       *prometheus.Desc
	capacity    *prometheus.Desc
	blocks      *prometheus.Desc
	utilization *prometheus.Desc
	live        *prometheus.Desc
	allocs      *prometheus.Desc
	frees       *prometheus.Desc
}

// NewCollector creates a collector whose metrics are prefixed by namespace.
func NewCollector(namespace string) *Collector {
	arena := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "arena", name), help, []string{"arena"}, nil)
	}
	alloc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "allocator", name), help, []string{"allocator"}, nil)
	}

	return &Collector{
		arenas:      make(map[string]ArenaSource),
		allocators:  make(map[string]*memkit.CountingAllocator),
		inUse:       arena("bytes_in_use", "Bytes between the arena start and its cursor"),
		capacity:    arena("capacity_bytes", "Total size of the arena's blocks"),
		blocks:      arena("blocks", "Number of blocks held by the arena"),
		utilization: arena("utilization_ratio", "Bytes in use divided by capacity"),
		live:        alloc("live_bytes", "Bytes handed out and not yet freed"),
		allocs:      alloc("allocations_total", "Fresh allocations"),
		frees:       alloc("frees_total", "Frees"),
	}
}

// TrackArena adds an arena under name, replacing any previous one.
func (c *Collector) TrackArena(name string, a ArenaSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.arenas[name] = a
}

// TrackAllocator adds a counting allocator under name.
func (c *Collector) TrackAllocator(name string, a *memkit.CountingAllocator) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.allocators[name] = a
}

// Untrack removes the arena or allocator registered under name.
func (c *Collector) Untrack(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.arenas, name)
	delete(c.allocators, name)
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.inUse
	ch <- c.capacity
	ch <- c.blocks
	ch <- c.utilization
	ch <- c.live
	ch <- c.allocs
	ch <- c.frees
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for name, a := range c.arenas {
		m := a.Metrics()
		ch <- prometheus.MustNewConstMetric(c.inUse, prometheus.GaugeValue, float64(m.SizeInUse), name)
		ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(m.Capacity), name)
		ch <- prometheus.MustNewConstMetric(c.blocks, prometheus.GaugeValue, float64(m.NumBlocks), name)
		ch <- prometheus.MustNewConstMetric(c.utilization, prometheus.GaugeValue, m.Utilization, name)
	}
	for name, a := range c.allocators {
		s := a.Stats()
		ch <- prometheus.MustNewConstMetric(c.live, prometheus.GaugeValue, float64(s.LiveBytes), name)
		ch <- prometheus.MustNewConstMetric(c.allocs, prometheus.CounterValue, float64(s.Allocations), name)
		ch <- prometheus.MustNewConstMetric(c.frees, prometheus.CounterValue, float64(s.Frees), name)
	}
}

// NewRegistry returns a private registry holding c. With runtime set, the
// process and Go runtime collectors are registered as well.
func NewRegistry(c *Collector, runtime bool) *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(c)
	if runtime {
		registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		registry.MustRegister(collectors.NewGoCollector())
	}
	return registry
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
}
