package memarena

// Capacity returns the total size of the backing slab in bytes.
// Returns 0 after Release.
func (a *Arena) Capacity() int {
	if a.buf == nil {
		return 0
	}
	return len(a.buf)
}

// SizeInUse returns the number of bytes carved so far, including alignment
// padding. Freed regions still count: the arena never reclaims space.
func (a *Arena) SizeInUse() int {
	if a.buf == nil {
		return 0
	}
	return a.off
}

// LiveRegions returns the number of regions allocated and not yet freed or
// reallocated away.
func (a *Arena) LiveRegions() int {
	if a.buf == nil {
		return 0
	}
	return a.live
}

// Utilization returns the ratio of carved bytes to capacity (0.0 to 1.0).
// Returns 0.0 if the arena has no capacity.
func (a *Arena) Utilization() float64 {
	capacity := a.Capacity()
	if capacity == 0 {
		return 0
	}
	return float64(a.SizeInUse()) / float64(capacity)
}

// Metrics returns a snapshot of arena statistics.
func (a *Arena) Metrics() ArenaMetrics {
	return ArenaMetrics{
		Capacity:        a.Capacity(),
		SizeInUse:       a.SizeInUse(),
		LiveRegions:     a.LiveRegions(),
		AllocCalls:      a.allocCalls,
		FreeCalls:       a.freeCalls,
		ResizeCalls:     a.resizeCalls,
		ReallocateCalls: a.reallocCalls,
		Utilization:     a.Utilization(),
	}
}

// ArenaMetrics contains statistical information about an arena. Operation
// counters count completed operations; rejected calls (growth resizes,
// contract violations, out-of-memory) are not counted.
type ArenaMetrics struct {
	Capacity        int     // Backing slab size in bytes
	SizeInUse       int     // Bytes carved, including alignment padding
	LiveRegions     int     // Regions allocated and not yet invalidated
	AllocCalls      int     // Completed Allocate operations (including via Reallocate)
	FreeCalls       int     // Completed Free operations
	ResizeCalls     int     // Completed shrinks
	ReallocateCalls int     // Completed Reallocate operations
	Utilization     float64 // Ratio of carved bytes to capacity (0.0-1.0)
}
