// Package config defines the Configuration handed to the World provisioner.
//
// The [Configuration] struct is the complete description of a worldbuilder:
// who they are, what they work on, who matters to them, and where their
// World should live. It is produced by the interview layer (or written by
// hand as world.yaml) and is treated as immutable for the length of a run.
//
// Timeouts for host operations are read from the environment, see
// [LoadTimeouts].
package config
