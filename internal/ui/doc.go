// Package ui holds the color themes shared by the CLI output and the
// dashboard, and the accessors that read the active theme.
package ui
