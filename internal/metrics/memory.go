package metrics

import "runtime"

// MemorySnapshot holds a point-in-time reading of the runtime allocator.
type MemorySnapshot struct {
	HeapAlloc   uint64 // bytes of live heap
	Sys         uint64 // total bytes obtained from the OS
	Mallocs     uint64 // cumulative heap allocations
	TotalAlloc  uint64 // cumulative bytes allocated
	NumGC       uint32 // completed GC cycles
	HeapObjects uint64 // live heap objects
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:   m.HeapAlloc,
		Sys:         m.Sys,
		Mallocs:     m.Mallocs,
		TotalAlloc:  m.TotalAlloc,
		NumGC:       m.NumGC,
		HeapObjects: m.HeapObjects,
	}
}

// AllocDelta is the allocation activity between two snapshots.
type AllocDelta struct {
	Mallocs uint64
	Bytes   uint64
	GCs     uint32
}

// Since returns the allocations recorded between before and s.
func (s MemorySnapshot) Since(before MemorySnapshot) AllocDelta {
	return AllocDelta{
		Mallocs: s.Mallocs - before.Mallocs,
		Bytes:   s.TotalAlloc - before.TotalAlloc,
		GCs:     s.NumGC - before.NumGC,
	}
}
