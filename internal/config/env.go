// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the aliases of a flag were explicitly set.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride maps an env key (without the RANGESUM_ prefix) to the flag
// names it shadows and the function that applies its value. Unparsable
// values are ignored and the flag default stays in place.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

func uint64Override(dst func(*AppConfig) *uint64) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			*dst(c) = parsed
		}
	}
}

func intOverride(dst func(*AppConfig) *int) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			*dst(c) = parsed
		}
	}
}

func boolOverride(dst func(*AppConfig) *bool) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		p := dst(c)
		*p = parseBoolEnv(v, *p)
	}
}

var envOverrides = []envOverride{
	// Numeric overrides
	{"N", []string{"n"}, uint64Override(func(c *AppConfig) *uint64 { return &c.N })},
	{"START", []string{"start"}, uint64Override(func(c *AppConfig) *uint64 { return &c.Start })},
	{"END", []string{"end"}, uint64Override(func(c *AppConfig) *uint64 { return &c.End })},
	{"WORKERS", []string{"workers", "w"}, intOverride(func(c *AppConfig) *int { return &c.Workers })},
	{"CHUNK_SIZE", []string{"chunk-size"}, uint64Override(func(c *AppConfig) *uint64 { return &c.ChunkSize })},
	{"MAX_PARALLEL", []string{"max-parallel"}, intOverride(func(c *AppConfig) *int { return &c.MaxParallel })},

	// Duration overrides
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
	}},

	// String overrides
	{"ALGO", []string{"algo"}, func(c *AppConfig, v string) { c.Algo = v }},
	{"OUTPUT", []string{"output", "o"}, func(c *AppConfig, v string) { c.OutputFile = v }},
	{"FORMAT", []string{"format"}, func(c *AppConfig, v string) { c.Format = v }},
	{"METRICS_FILE", []string{"metrics-file"}, func(c *AppConfig, v string) { c.MetricsFile = v }},
	{"LOG_LEVEL", []string{"log-level"}, func(c *AppConfig, v string) { c.LogLevel = v }},

	// Boolean overrides
	{"VERBOSE", []string{"verbose", "v"}, boolOverride(func(c *AppConfig) *bool { return &c.Verbose })},
	{"DETAILS", []string{"details", "d"}, boolOverride(func(c *AppConfig) *bool { return &c.Details })},
	{"QUIET", []string{"quiet", "q"}, boolOverride(func(c *AppConfig) *bool { return &c.Quiet })},
	{"VERIFY", []string{"verify"}, boolOverride(func(c *AppConfig) *bool { return &c.Verify })},
	{"NO_COLOR", []string{"no-color"}, boolOverride(func(c *AppConfig) *bool { return &c.NoColor })},
	{"TUI", []string{"tui"}, boolOverride(func(c *AppConfig) *bool { return &c.TUI })},
}

// parseBoolEnv accepts "true", "1", "yes" as true and "false", "0", "no" as
// false (case-insensitive). Anything else returns defaultVal.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies environment variable values to every setting
// whose flag was not given on the command line.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
