//go:build windows

package runner

// checkDescriptorLimit is a no-op, Windows has no per-process descriptor rlimit.
func checkDescriptorLimit(int) {}
