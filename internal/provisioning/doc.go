// Package provisioning builds a World on the local machine.
//
// # Core Types
//
// Context carries the Configuration, the host Bridge, the Observer, the
// per-step timeouts and the run's clock, plus the run-scoped EventLog and
// Fallbacks. Step is a data record (phase, label, explanation, action,
// fallback command) and Pipeline interprets the ordered list of steps that
// BuildSteps derives from the Configuration.
//
// Every step goes through Executor.Execute, which turns any failure into a
// skip line plus a fallback command. A run therefore always reaches Done;
// the only visible effect of a failure is a longer list of commands the
// user has to paste by hand.
package provisioning
