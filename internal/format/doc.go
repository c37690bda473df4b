// Package format holds pure formatting helpers shared by the CLI and TUI:
// durations, grouped numbers, byte sizes and progress bars with ETA.
package format
