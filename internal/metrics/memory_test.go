package metrics

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var sink []byte

func TestReadMemory(t *testing.T) {
	snap := ReadMemory()
	assert.NotZero(t, snap.HeapAlloc)
	assert.NotZero(t, snap.Sys)
	assert.GreaterOrEqual(t, snap.NumGoroutine, 1)
}

func TestMemorySnapshotSinceCountsAllocations(t *testing.T) {
	before := ReadMemory()
	sink = make([]byte, 1<<20)
	runtime.GC()
	d := ReadMemory().Since(before)

	assert.GreaterOrEqual(t, d.Allocated, uint64(1<<20))
	assert.GreaterOrEqual(t, d.GCCycles, uint32(1))
}

func TestMemorySnapshotSinceNeverUnderflows(t *testing.T) {
	later := MemorySnapshot{TotalAlloc: 100, NumGC: 5, GCPause: time.Second}
	earlier := MemorySnapshot{TotalAlloc: 40, NumGC: 2, GCPause: time.Millisecond}

	assert.Equal(t, MemoryDelta{Allocated: 60, GCCycles: 3, GCPause: time.Second - time.Millisecond}, later.Since(earlier))
	assert.Equal(t, MemoryDelta{}, earlier.Since(later))
}
