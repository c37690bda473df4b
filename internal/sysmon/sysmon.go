// Package sysmon samples system-wide CPU and memory usage for the dashboard
// and the --details report.
package sysmon

import (
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent  float64 // 0.0 .. 100.0
	MemPercent  float64 // 0.0 .. 100.0
	MemTotal    uint64  // bytes
	LogicalCPUs int
}

// Sample collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since last call). Fields that cannot be read
// are left at zero, except LogicalCPUs which falls back to runtime.NumCPU.
func Sample() Stats {
	var s Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
		s.MemTotal = vmem.Total
	}
	s.LogicalCPUs, err = cpu.Counts(true)
	if err != nil || s.LogicalCPUs == 0 {
		s.LogicalCPUs = runtime.NumCPU()
	}
	return s
}
