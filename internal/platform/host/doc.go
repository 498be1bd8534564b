// Package host implements the provisioning bridge on the local machine
// with os and os/exec.
//
// Commands and tool probes search PATH extended by the usual install
// locations of Homebrew, cargo and user-local binaries, so a tool
// installed earlier in the same run is found even though the parent
// shell's PATH predates it.
package host
