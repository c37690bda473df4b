package metrics

import "time"

// ResourceUsage is the process-level CPU and memory footprint.
type ResourceUsage struct {
	UserTime   time.Duration
	SystemTime time.Duration
	MaxRSS     uint64 // bytes
	// Supported is false on platforms without getrusage.
	Supported bool
}

// CPUTime is user plus system time.
func (u ResourceUsage) CPUTime() time.Duration { return u.UserTime + u.SystemTime }
