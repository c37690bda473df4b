// Package metrics collects runtime and reduction metrics: heap snapshots,
// process resource usage, and Prometheus series for chunks and reductions.
package metrics
