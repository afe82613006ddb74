package metrics

import (
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
)

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by application
	Sys          uint64 // total bytes obtained from OS
	NumGC        uint32 // number of completed GC cycles
	TotalAlloc   uint64 // cumulative bytes allocated
	HeapObjects  uint64 // number of allocated heap objects
	PauseTotalNs uint64 // cumulative GC pause time
}

// MemoryCollector reads runtime memory statistics. It also implements
// prometheus.Collector so the readings land in the metrics textfile.
type MemoryCollector struct {
	heapAlloc *prometheus.Desc
	sys       *prometheus.Desc
	numGC     *prometheus.Desc
}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{
		heapAlloc: prometheus.NewDesc(namespace+"_heap_alloc_bytes", "Bytes of allocated heap objects", nil, nil),
		sys:       prometheus.NewDesc(namespace+"_sys_bytes", "Total bytes obtained from the OS", nil, nil),
		numGC:     prometheus.NewDesc(namespace+"_gc_cycles_total", "Completed GC cycles", nil, nil),
	}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		TotalAlloc:   m.TotalAlloc,
		HeapObjects:  m.HeapObjects,
		PauseTotalNs: m.PauseTotalNs,
	}
}

// Describe implements prometheus.Collector.
func (mc *MemoryCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- mc.heapAlloc
	ch <- mc.sys
	ch <- mc.numGC
}

// Collect implements prometheus.Collector.
func (mc *MemoryCollector) Collect(ch chan<- prometheus.Metric) {
	s := mc.Snapshot()
	ch <- prometheus.MustNewConstMetric(mc.heapAlloc, prometheus.GaugeValue, float64(s.HeapAlloc))
	ch <- prometheus.MustNewConstMetric(mc.sys, prometheus.GaugeValue, float64(s.Sys))
	ch <- prometheus.MustNewConstMetric(mc.numGC, prometheus.CounterValue, float64(s.NumGC))
}

// Delta returns the bytes allocated between two snapshots.
func Delta(before, after MemorySnapshot) uint64 {
	if after.TotalAlloc < before.TotalAlloc {
		return 0
	}
	return after.TotalAlloc - before.TotalAlloc
}
