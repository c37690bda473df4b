//go:build !(linux || darwin || freebsd)

package metrics

// ReadResourceUsage is unsupported on this platform.
func ReadResourceUsage() (ResourceUsage, error) {
	return ResourceUsage{}, nil
}
