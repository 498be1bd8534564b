package config

import (
	"os"
	"time"
)

// Timeouts bounds every host operation performed by a provisioning step.
// A step that exceeds its budget is treated like any other failure: the
// user gets the fallback command instead.
type Timeouts struct {
	Probe      time.Duration // Looking a tool up in PATH
	Install    time.Duration // Running a package install
	Filesystem time.Duration // Directory, file and symlink operations
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - WALNUT_TIMEOUT_PROBE (default: 10s)
//   - WALNUT_TIMEOUT_INSTALL (default: 10m)
//   - WALNUT_TIMEOUT_FILESYSTEM (default: 30s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		Probe:      parseDuration("WALNUT_TIMEOUT_PROBE", 10*time.Second),
		Install:    parseDuration("WALNUT_TIMEOUT_INSTALL", 10*time.Minute),
		Filesystem: parseDuration("WALNUT_TIMEOUT_FILESYSTEM", 30*time.Second),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set, not a duration, or not positive, the
// default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}

	return d
}
