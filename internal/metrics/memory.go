package metrics

import (
	"runtime"
	"time"
)

// MemorySnapshot is a reading of the Go runtime's heap and GC counters.
type MemorySnapshot struct {
	HeapAlloc    uint64
	TotalAlloc   uint64
	Sys          uint64
	NumGC        uint32
	GCPause      time.Duration
	NumGoroutine int
}

// ReadMemory samples the runtime. It stops the world briefly, so callers
// sample before and after a reduction rather than from inside workers.
func ReadMemory() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		TotalAlloc:   m.TotalAlloc,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		GCPause:      time.Duration(m.PauseTotalNs),
		NumGoroutine: runtime.NumGoroutine(),
	}
}

// MemoryDelta is what happened to the heap between two snapshots.
type MemoryDelta struct {
	Allocated uint64
	GCCycles  uint32
	GCPause   time.Duration
}

// Since returns the cumulative counters accumulated since before. Gauges
// such as HeapAlloc are not differenced.
func (s MemorySnapshot) Since(before MemorySnapshot) MemoryDelta {
	var d MemoryDelta
	if s.TotalAlloc > before.TotalAlloc {
		d.Allocated = s.TotalAlloc - before.TotalAlloc
	}
	if s.NumGC > before.NumGC {
		d.GCCycles = s.NumGC - before.NumGC
	}
	if s.GCPause > before.GCPause {
		d.GCPause = s.GCPause - before.GCPause
	}
	return d
}
