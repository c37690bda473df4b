//go:build linux || darwin || freebsd

package metrics

import (
	"runtime"
	"time"

	"golang.org/x/sys/unix"
)

// ReadResourceUsage returns the CPU time and peak resident set size of the
// current process.
func ReadResourceUsage() (ResourceUsage, error) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return ResourceUsage{}, err
	}
	maxRSS := uint64(ru.Maxrss)
	if runtime.GOOS != "darwin" {
		// Linux and FreeBSD report kilobytes, Darwin reports bytes.
		maxRSS *= 1024
	}
	return ResourceUsage{
		UserTime:   time.Duration(ru.Utime.Nano()),
		SystemTime: time.Duration(ru.Stime.Nano()),
		MaxRSS:     maxRSS,
		Supported:  true,
	}, nil
}
