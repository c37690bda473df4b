package app

import (
	"fmt"
	"io"
	"runtime"
)

// Build metadata, set with -ldflags "-X github.com/agbru/rangesum/internal/app.Version=...".
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// HasVersionFlag reports whether args ask for the version. Only arguments
// before a "--" terminator are considered.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--":
			return false
		case "--version", "-version", "-V":
			return true
		}
	}
	return false
}

// PrintVersion writes the build metadata.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "rangesum %s\n", Version)
	fmt.Fprintf(out, "  commit:  %s\n", Commit)
	fmt.Fprintf(out, "  built:   %s\n", BuildDate)
	fmt.Fprintf(out, "  go:      %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
